// Package loader turns upstream API responses into the records pages are
// rendered from. Every loader performs at most one listing call and one
// detail call and keeps no state between invocations.
package loader

import (
	"context"
	"fmt"

	"kanto/pokedex/internal/client"
	"kanto/pokedex/internal/domain"
)

// LoadCatalogue fetches the first size Pokémon and numbers them by position.
func LoadCatalogue(ctx context.Context, api client.PokeAPIClient, size int) ([]domain.CatalogueItem, error) {
	list, err := api.ListPokemon(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue: %w", err)
	}

	return CatalogueFromList(list), nil
}

// CatalogueFromList assigns ids from list position, ignoring the id embedded
// in each entry URL.
func CatalogueFromList(list *domain.ListResponse) []domain.CatalogueItem {
	items := make([]domain.CatalogueItem, len(list.Results))
	for i, entry := range list.Results {
		id := i + 1
		items[i] = domain.CatalogueItem{
			ID:       id,
			Name:     entry.Name,
			ImageURL: domain.OfficialArtworkURL(id),
		}
	}
	return items
}

// KnownPaths lists every name a detail page is generated for. Any other name
// is a routing miss.
func KnownPaths(ctx context.Context, api client.PokeAPIClient, size int) ([]string, error) {
	list, err := api.ListPokemon(ctx, size)
	if err != nil {
		return nil, fmt.Errorf("failed to load known paths: %w", err)
	}

	names := make([]string, len(list.Results))
	for i, entry := range list.Results {
		names[i] = entry.Name
	}
	return names, nil
}
