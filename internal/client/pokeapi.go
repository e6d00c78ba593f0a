package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"kanto/pokedex/internal/config"
	"kanto/pokedex/internal/domain"
	"kanto/pokedex/internal/httpclient"
	"kanto/pokedex/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

type PokeAPIClient interface {
	ListPokemon(ctx context.Context, limit int) (*domain.ListResponse, error)
	GetPokemon(ctx context.Context, name string) (*domain.PokemonResponse, error)
}

type pokeAPIClient struct {
	rl         ratelimit.Limiter
	baseURL    string
	httpClient *httpclient.Client
}

func NewPokeAPIClient(cfg config.PokeAPIConfig, proxySupplier proxy.ProxySupplier) PokeAPIClient {
	opts := httpclient.Options{
		Timeout: cfg.Timeout,
		Headers: map[string]string{
			"User-Agent": cfg.UserAgent,
			"Accept":     "application/json",
		},
	}

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			opts.Proxy = proxyURL
			log.Infof("🔗 Using proxy: %s", proxyURL)
		}
	}

	return &pokeAPIClient{
		rl:         ratelimit.New(cfg.MaxRequestsPerSecond),
		baseURL:    withTrailingSlash(cfg.BaseURL),
		httpClient: httpclient.NewClient(opts),
	}
}

func (c *pokeAPIClient) ListPokemon(ctx context.Context, limit int) (*domain.ListResponse, error) {
	c.rl.Take()

	resp, err := httpclient.Get[domain.ListResponse](ctx, c.httpClient, "pokemon", httpclient.RequestConfig{
		BaseURL: c.baseURL,
		Params:  httpclient.Params{"limit": limit},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon list: %w", err)
	}

	log.Debugf("Fetched pokemon list with %d entries", len(resp.Data.Results))
	return &resp.Data, nil
}

func (c *pokeAPIClient) GetPokemon(ctx context.Context, name string) (*domain.PokemonResponse, error) {
	c.rl.Take()

	resp, err := httpclient.Get[domain.PokemonResponse](ctx, c.httpClient, "pokemon/"+url.PathEscape(name), httpclient.RequestConfig{
		BaseURL: c.baseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pokemon %s: %w", name, err)
	}

	log.Debugf("Fetched details for %s (#%d)", resp.Data.Name, resp.Data.ID)
	return &resp.Data, nil
}

// withTrailingSlash keeps the last base path segment when resolving
// relative references against it.
func withTrailingSlash(baseURL string) string {
	if strings.HasSuffix(baseURL, "/") {
		return baseURL
	}
	return baseURL + "/"
}
