package httpclient_test

import (
	"errors"
	"net/url"
	"testing"

	"kanto/pokedex/internal/httpclient"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		cfg  httpclient.RequestConfig
		want string
	}{
		{
			name: "absolute without base",
			url:  "https://pokeapi.co/api/v2/pokemon",
			want: "https://pokeapi.co/api/v2/pokemon",
		},
		{
			name: "relative against base",
			url:  "pokemon/pikachu",
			cfg:  httpclient.RequestConfig{BaseURL: "https://pokeapi.co/api/v2/"},
			want: "https://pokeapi.co/api/v2/pokemon/pikachu",
		},
		{
			name: "rooted path replaces base path",
			url:  "/other",
			cfg:  httpclient.RequestConfig{BaseURL: "https://pokeapi.co/api/v2/"},
			want: "https://pokeapi.co/other",
		},
		{
			name: "absolute url ignores base",
			url:  "https://example.com/x",
			cfg:  httpclient.RequestConfig{BaseURL: "https://pokeapi.co/api/v2/"},
			want: "https://example.com/x",
		},
		{
			name: "param overwrites existing query value",
			url:  "https://pokeapi.co/api/v2/pokemon?limit=20",
			cfg:  httpclient.RequestConfig{Params: httpclient.Params{"limit": 151}},
			want: "https://pokeapi.co/api/v2/pokemon?limit=151",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := httpclient.ResolveURL(tt.url, tt.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveURL_ParamsCoercionAndSkips(t *testing.T) {
	limit := 10
	var missing *int

	got, err := httpclient.ResolveURL("https://pokeapi.co/api/v2/pokemon", httpclient.RequestConfig{
		Params: httpclient.Params{
			"name":    "mew",
			"limit":   &limit,
			"ratio":   1.5,
			"shiny":   true,
			"count":   uint8(3),
			"skipped": nil,
			"absent":  missing,
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("unparsable result %q: %v", got, err)
	}
	query := u.Query()

	want := map[string]string{
		"name":  "mew",
		"limit": "10",
		"ratio": "1.5",
		"shiny": "true",
		"count": "3",
	}
	if len(query) != len(want) {
		t.Errorf("expected %d keys, got %d (%s)", len(want), len(query), u.RawQuery)
	}
	for key, value := range want {
		if values := query[key]; len(values) != 1 || values[0] != value {
			t.Errorf("%s: got %v, want [%s]", key, values, value)
		}
	}
	for _, key := range []string{"skipped", "absent"} {
		if _, ok := query[key]; ok {
			t.Errorf("%s must be absent", key)
		}
	}
}

func TestResolveURL_NamedScalarTypes(t *testing.T) {
	type sort string

	got, err := httpclient.ResolveURL("https://pokeapi.co/", httpclient.RequestConfig{
		Params: httpclient.Params{"sort": sort("asc")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "https://pokeapi.co/?sort=asc" {
		t.Errorf("unexpected url: %s", got)
	}
}

func TestResolveURL_RejectsNonScalarParams(t *testing.T) {
	_, err := httpclient.ResolveURL("https://pokeapi.co/", httpclient.RequestConfig{
		Params: httpclient.Params{"ids": []int{1, 2}},
	})
	if !errors.Is(err, httpclient.ErrInvalidParam) {
		t.Fatalf("expected ErrInvalidParam, got %v", err)
	}
}

func TestResolveURL_RelativeWithoutBaseFails(t *testing.T) {
	for _, raw := range []string{"pokemon", "/api/v2/pokemon", "pokeapi.co/api/v2/pokemon", ""} {
		_, err := httpclient.ResolveURL(raw, httpclient.RequestConfig{})
		if !errors.Is(err, httpclient.ErrRelativeURL) {
			t.Errorf("%q: expected ErrRelativeURL, got %v", raw, err)
		}
	}
}

func TestResolveURL_RelativeBaseFails(t *testing.T) {
	_, err := httpclient.ResolveURL("pokemon", httpclient.RequestConfig{BaseURL: "/api/v2/"})
	if !errors.Is(err, httpclient.ErrRelativeURL) {
		t.Fatalf("expected ErrRelativeURL, got %v", err)
	}
}

func TestResolveURL_UnparsableTargetIsTransportError(t *testing.T) {
	_, err := httpclient.ResolveURL("http://[::1", httpclient.RequestConfig{})
	var transportErr *httpclient.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected *TransportError, got %T (%v)", err, err)
	}
}
