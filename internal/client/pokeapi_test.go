package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kanto/pokedex/internal/client"
	"kanto/pokedex/internal/config"
	"kanto/pokedex/internal/httpclient"
)

func newTestClient(baseURL string) client.PokeAPIClient {
	return client.NewPokeAPIClient(config.PokeAPIConfig{
		BaseURL:              baseURL,
		Timeout:              5 * time.Second,
		MaxRequestsPerSecond: 1000,
		UserAgent:            "pokedex-test",
	}, nil)
}

func TestListPokemon_SendsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/pokemon" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "151" {
			t.Errorf("unexpected limit: %s", r.URL.RawQuery)
		}
		if r.Header.Get("User-Agent") != "pokedex-test" {
			t.Errorf("unexpected user agent: %s", r.Header.Get("User-Agent"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":1302,"results":[{"name":"bulbasaur","url":"https://pokeapi.co/api/v2/pokemon/1/"}]}`))
	}))
	defer srv.Close()

	// No trailing slash: the client must still keep the /api/v2 prefix.
	c := newTestClient(srv.URL + "/api/v2")

	list, err := c.ListPokemon(context.Background(), 151)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Results) != 1 || list.Results[0].Name != "bulbasaur" {
		t.Errorf("unexpected results: %+v", list.Results)
	}
}

func TestGetPokemon_DecodesSprites(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/pokemon/mr-mime" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"id": 122, "name": "mr-mime", "height": 13, "weight": 545,
			"types": [{"slot": 2, "type": {"name": "fairy"}}, {"slot": 1, "type": {"name": "psychic"}}],
			"abilities": [{"ability": {"name": "soundproof"}}],
			"stats": [{"base_stat": 40, "stat": {"name": "hp"}}],
			"sprites": {"front_default": null, "other": {"official-artwork": {"front_default": "https://img/122.png"}}}
		}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL + "/api/v2/")

	p, err := c.GetPokemon(context.Background(), "mr-mime")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID != 122 || p.Height != 13 || p.Weight != 545 {
		t.Errorf("unexpected record: %+v", p)
	}
	if p.Sprites.FrontDefault != nil {
		t.Errorf("expected nil default sprite, got %q", *p.Sprites.FrontDefault)
	}
	if art := p.Sprites.OfficialArtwork(); art == nil || *art != "https://img/122.png" {
		t.Errorf("unexpected artwork: %v", art)
	}
}

func TestGetPokemon_PropagatesRequestError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL + "/api/v2/")

	_, err := c.GetPokemon(context.Background(), "missingno")
	var reqErr *httpclient.RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected *RequestError, got %T (%v)", err, err)
	}
	if reqErr.StatusCode != http.StatusNotFound {
		t.Errorf("unexpected status: %d", reqErr.StatusCode)
	}
}
