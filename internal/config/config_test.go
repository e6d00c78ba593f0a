package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"kanto/pokedex/internal/config"
	"kanto/pokedex/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.Mode != config.ModeBuild {
		t.Errorf("unexpected mode: %s", cfg.App.Mode)
	}
	if cfg.App.CatalogueSize != 151 {
		t.Errorf("unexpected catalogue size: %d", cfg.App.CatalogueSize)
	}
	if cfg.App.RegenerationInterval != domain.RegenerationInterval || domain.RegenerationInterval != 24*time.Hour {
		t.Errorf("unexpected regeneration interval: %s", cfg.App.RegenerationInterval)
	}
	if cfg.PokeAPI.BaseURL != "https://pokeapi.co/api/v2/" {
		t.Errorf("unexpected base url: %s", cfg.PokeAPI.BaseURL)
	}
	if cfg.Redis.Enabled {
		t.Error("redis must be disabled by default")
	}
	if cfg.Server.Addr() != "localhost:8080" {
		t.Errorf("unexpected addr: %s", cfg.Server.Addr())
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := []byte("app:\n  max_workers: 3\n  output_dir: ./site\nserver:\n  port: 9000\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("APP_MODE", "serve")
	t.Setenv("APP_REGENERATION_INTERVAL", "1h")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.App.MaxWorkers != 3 {
		t.Errorf("unexpected max workers: %d", cfg.App.MaxWorkers)
	}
	if cfg.App.OutputDir != "./site" {
		t.Errorf("unexpected output dir: %s", cfg.App.OutputDir)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("unexpected port: %d", cfg.Server.Port)
	}
	if cfg.App.Mode != config.ModeServe {
		t.Errorf("unexpected mode: %s", cfg.App.Mode)
	}
	if cfg.App.RegenerationInterval != time.Hour {
		t.Errorf("unexpected regeneration interval: %s", cfg.App.RegenerationInterval)
	}
}

func TestLoad_RejectsUnknownMode(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_MODE", "deploy")

	if _, err := config.Load(); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
