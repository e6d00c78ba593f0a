package container

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"kanto/pokedex/internal/client"
	"kanto/pokedex/internal/config"
	"kanto/pokedex/internal/proxy"
	"kanto/pokedex/internal/render"
	"kanto/pokedex/internal/server"
	"kanto/pokedex/internal/service"
	"kanto/pokedex/internal/state"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config       *config.Config
	Client       client.PokeAPIClient
	StateManager state.StateManager
	Renderer     *render.Renderer

	Service *service.Service
	Server  *server.Server

	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	// Parse templates before opening any connection
	renderer, err := render.New()
	if err != nil {
		return nil, err
	}
	container.Renderer = renderer

	// Initialize ProxySupplier
	proxySupplier := proxy.NewProxySupplier(ctx, cfg.PokeAPI.Proxies, cfg.PokeAPI.BaseURL)

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.Database,
		})

		// Test connection
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}

		log.Info("✅ Connected to Redis successfully")

		container.redis = rdb
		container.StateManager = state.NewRedisStateManager(rdb)
	} else {
		log.Info("Redis disabled, keeping regeneration state in memory")
		container.StateManager = state.NewMemoryStateManager()
	}

	container.Client = client.NewPokeAPIClient(cfg.PokeAPI, proxySupplier)

	container.Service = service.NewService(
		container.Client,
		renderer,
		container.StateManager,
		cfg.App,
	)

	container.Server = server.NewServer(
		cfg.Server.Addr(),
		server.NewHandler(container.Service, renderer),
	)

	return container, nil
}

// Run builds the whole site. In serve mode it then serves it and keeps it
// fresh until ctx is done.
func (c *Container) Run(ctx context.Context) error {
	if err := c.Service.BuildAll(ctx); err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if c.Config.App.Mode == config.ModeBuild {
		return c.Service.VerifyLinks(ctx)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.Server.Run(ctx)
	})

	g.Go(func() error {
		return c.Service.RunRegeneration(ctx)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return err
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
