package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"kanto/pokedex/internal/catalogue"
	"kanto/pokedex/internal/client"
	"kanto/pokedex/internal/config"
	"kanto/pokedex/internal/domain"
	"kanto/pokedex/internal/loader"
	"kanto/pokedex/internal/render"
	"kanto/pokedex/internal/state"

	"github.com/google/renameio/v2"
	log "github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"
)

const (
	IndexRoute = "/"

	indexFile = "index.html"
	lockTTL   = 5 * time.Minute
)

// DetailRoute is the public path of a detail page.
func DetailRoute(name string) string {
	return "/pokemon/" + name
}

type Service struct {
	client       client.PokeAPIClient
	renderer     *render.Renderer
	stateManager state.StateManager

	outputDir     string
	catalogueSize int
	maxWorkers    int
	interval      time.Duration
	checkInterval time.Duration

	now func() time.Time

	snapshot atomic.Pointer[[]domain.CatalogueItem]
	known    atomic.Pointer[knownSet]
}

type knownSet struct {
	names []string
	index map[string]struct{}
}

func NewService(
	client client.PokeAPIClient,
	renderer *render.Renderer,
	stateManager state.StateManager,
	cfg config.AppConfig,
) *Service {
	return &Service{
		client:        client,
		renderer:      renderer,
		stateManager:  stateManager,
		outputDir:     cfg.OutputDir,
		catalogueSize: cfg.CatalogueSize,
		maxWorkers:    cfg.MaxWorkers,
		interval:      cfg.RegenerationInterval,
		checkInterval: cfg.RegenerationCheckInterval,
		now:           time.Now,
	}
}

// Catalogue returns the items of the last successful index build.
func (s *Service) Catalogue() ([]domain.CatalogueItem, bool) {
	items := s.snapshot.Load()
	if items == nil {
		return nil, false
	}
	return *items, true
}

// IsKnown reports whether a detail page is generated for name.
func (s *Service) IsKnown(name string) bool {
	known := s.known.Load()
	if known == nil {
		return false
	}
	_, ok := known.index[name]
	return ok
}

// KnownNames returns the detail names fixed at build time.
func (s *Service) KnownNames() []string {
	known := s.known.Load()
	if known == nil {
		return nil
	}
	return known.names
}

func (s *Service) IndexPath() string {
	return filepath.Join(s.outputDir, indexFile)
}

func (s *Service) DetailPath(name string) string {
	return filepath.Join(s.outputDir, "pokemon", name, indexFile)
}

// LoadKnownPaths fixes the set of detail pages to generate.
func (s *Service) LoadKnownPaths(ctx context.Context) ([]string, error) {
	names, err := loader.KnownPaths(ctx, s.client, s.catalogueSize)
	if err != nil {
		return nil, err
	}

	index := make(map[string]struct{}, len(names))
	for _, name := range names {
		index[name] = struct{}{}
	}
	s.known.Store(&knownSet{names: names, index: index})

	log.Infof("🗺️ %d detail routes known", len(names))
	return names, nil
}

func (s *Service) BuildIndex(ctx context.Context) error {
	items, err := loader.LoadCatalogue(ctx, s.client, s.catalogueSize)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderIndex(&buf, items, catalogue.ViewState{Mode: catalogue.ViewCard}); err != nil {
		return err
	}

	if err := writeFileAtomic(s.IndexPath(), buf.Bytes()); err != nil {
		return err
	}

	s.snapshot.Store(&items)
	s.markGenerated(ctx, IndexRoute)

	log.Infof("✅ Index built with %d entries", len(items))
	return nil
}

func (s *Service) BuildDetail(ctx context.Context, name string) error {
	if !s.IsKnown(name) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownPokemon, name)
	}

	record, err := loader.LoadDetail(ctx, s.client, name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := s.renderer.RenderDetail(&buf, record); err != nil {
		return err
	}

	if err := writeFileAtomic(s.DetailPath(name), buf.Bytes()); err != nil {
		return err
	}

	s.markGenerated(ctx, DetailRoute(name))

	log.Debugf("✅ Built %s", DetailRoute(name))
	return nil
}

// BuildAll generates the index and every known detail page. The first
// failure aborts the build.
func (s *Service) BuildAll(ctx context.Context) error {
	start := s.now()

	names, err := s.LoadKnownPaths(ctx)
	if err != nil {
		return err
	}

	if err := s.BuildIndex(ctx); err != nil {
		return err
	}

	log.Infof("🔄 Building %d detail pages with %d workers", len(names), s.maxWorkers)

	errGroup, groupCtx := errgroup.WithContext(ctx)
	errGroup.SetLimit(s.maxWorkers)

	for _, name := range names {
		errGroup.Go(func() error {
			if err := s.BuildDetail(groupCtx, name); err != nil {
				log.Errorf("❌ Failed to build %s: %v", DetailRoute(name), err)
				return err
			}
			return nil
		})
	}

	if err := errGroup.Wait(); err != nil {
		return err
	}

	log.Infof("✅ Site built in %s", s.now().Sub(start).Round(time.Millisecond))
	return nil
}

// Regenerate rebuilds every route older than the regeneration interval.
// A failed route keeps its previous page and is retried on the next call.
func (s *Service) Regenerate(ctx context.Context) error {
	routes := make([]string, 0, len(s.KnownNames())+1)
	routes = append(routes, IndexRoute)
	for _, name := range s.KnownNames() {
		routes = append(routes, DetailRoute(name))
	}

	p := pool.New().WithMaxGoroutines(s.maxWorkers).WithErrors()

	for _, route := range routes {
		p.Go(func() error {
			return s.regenerateRoute(ctx, route)
		})
	}

	return p.Wait()
}

func (s *Service) regenerateRoute(ctx context.Context, route string) error {
	last, err := s.stateManager.LastGenerated(ctx, route)
	if err != nil {
		return err
	}
	if !last.IsZero() && s.now().Sub(last) < s.interval {
		return nil
	}

	token, locked, err := s.stateManager.TryLock(ctx, route, lockTTL)
	if err != nil {
		return err
	}
	if !locked {
		log.Debugf("🔒 %s is being regenerated elsewhere, skipping", route)
		return nil
	}
	defer func() {
		if err := s.stateManager.Unlock(ctx, route, token); err != nil {
			log.Warnf("Failed to unlock %s: %v", route, err)
		}
	}()

	log.Infof("🔄 Regenerating %s", route)

	if route == IndexRoute {
		err = s.BuildIndex(ctx)
	} else {
		err = s.BuildDetail(ctx, strings.TrimPrefix(route, DetailRoute("")))
	}
	if err != nil {
		log.Errorf("❌ Regeneration of %s failed, keeping previous page: %v", route, err)
		return fmt.Errorf("regenerate %s: %w", route, err)
	}

	return nil
}

// RunRegeneration checks for stale pages until ctx is done.
func (s *Service) RunRegeneration(ctx context.Context) error {
	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	log.Infof("🚀 Regeneration loop started, checking every %s", s.checkInterval)

	for {
		select {
		case <-ctx.Done():
			log.Info("🛑 Regeneration loop stopping")
			return nil
		case <-ticker.C:
			if err := s.Regenerate(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Errorf("❌ Regeneration finished with errors: %v", err)
			}
		}
	}
}

func (s *Service) markGenerated(ctx context.Context, route string) {
	if err := s.stateManager.MarkGenerated(ctx, route, s.now()); err != nil {
		log.Warnf("Failed to record generation of %s: %v", route, err)
	}
}

// writeFileAtomic replaces path in one step, so readers see either the
// previous page or the new one.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
