package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"kanto/pokedex/internal/domain"
)

// Run modes.
const (
	ModeBuild = "build"
	ModeServe = "serve"
)

// Config holds all configuration for the application
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	PokeAPI PokeAPIConfig `mapstructure:"pokeapi"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
}

// AppConfig holds site generation settings
type AppConfig struct {
	Mode      string `mapstructure:"mode"`
	OutputDir string `mapstructure:"output_dir"`
	// CatalogueSize is the listing limit; the site is built for 151.
	CatalogueSize int `mapstructure:"catalogue_size"`
	MaxWorkers    int `mapstructure:"max_workers"`
	// RegenerationInterval is the age after which a page is rebuilt.
	RegenerationInterval time.Duration `mapstructure:"regeneration_interval"`
	// RegenerationCheckInterval is how often stale pages are looked for.
	RegenerationCheckInterval time.Duration `mapstructure:"regeneration_check_interval"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// PokeAPIConfig holds upstream API configuration
type PokeAPIConfig struct {
	BaseURL              string        `mapstructure:"base_url"`
	Timeout              time.Duration `mapstructure:"timeout"`
	MaxRequestsPerSecond int           `mapstructure:"max_requests_per_second"`
	UserAgent            string        `mapstructure:"user_agent"`
	Proxies              []string      `mapstructure:"proxies"`
}

// RedisConfig holds Redis connection details. Redis only stores
// regeneration bookkeeping; without it an in-memory state is used.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// LogConfig holds logrus settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load loads configuration from an optional config.yaml with .env and
// environment variable overrides
func Load() (*Config, error) {
	// A missing .env is fine; the environment may be set another way.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the values the rest of the program relies on.
func (c *Config) Validate() error {
	switch c.App.Mode {
	case ModeBuild, ModeServe:
	default:
		return fmt.Errorf("invalid app.mode %q: expected %q or %q", c.App.Mode, ModeBuild, ModeServe)
	}
	if c.App.OutputDir == "" {
		return fmt.Errorf("app.output_dir is required")
	}
	if c.App.CatalogueSize <= 0 {
		return fmt.Errorf("app.catalogue_size must be positive, got %d", c.App.CatalogueSize)
	}
	if c.App.MaxWorkers <= 0 {
		return fmt.Errorf("app.max_workers must be positive, got %d", c.App.MaxWorkers)
	}
	if c.App.RegenerationInterval <= 0 || c.App.RegenerationCheckInterval <= 0 {
		return fmt.Errorf("regeneration intervals must be positive")
	}
	if c.PokeAPI.BaseURL == "" {
		return fmt.Errorf("pokeapi.base_url is required")
	}
	if c.PokeAPI.MaxRequestsPerSecond <= 0 {
		return fmt.Errorf("pokeapi.max_requests_per_second must be positive, got %d", c.PokeAPI.MaxRequestsPerSecond)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.mode", ModeBuild)
	v.SetDefault("app.output_dir", "./out")
	v.SetDefault("app.catalogue_size", domain.CatalogueSize)
	v.SetDefault("app.max_workers", 8)
	v.SetDefault("app.regeneration_interval", domain.RegenerationInterval)
	v.SetDefault("app.regeneration_check_interval", 10*time.Minute)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")

	v.SetDefault("pokeapi.base_url", "https://pokeapi.co/api/v2/")
	v.SetDefault("pokeapi.timeout", 30*time.Second)
	v.SetDefault("pokeapi.max_requests_per_second", 10)
	v.SetDefault("pokeapi.user_agent", "kanto-pokedex/1.0")
	v.SetDefault("pokeapi.proxies", []string{})

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
