package loader

import (
	"context"
	"fmt"
	"slices"

	"kanto/pokedex/internal/client"
	"kanto/pokedex/internal/domain"
)

// LoadDetail fetches one Pokémon and normalizes it for display.
func LoadDetail(ctx context.Context, api client.PokeAPIClient, name string) (*domain.DetailRecord, error) {
	raw, err := api.GetPokemon(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load detail for %s: %w", name, err)
	}

	record := NormalizeDetail(raw)
	return &record, nil
}

// NormalizeDetail converts a raw record into display units. It does not
// modify raw.
func NormalizeDetail(raw *domain.PokemonResponse) domain.DetailRecord {
	types := slices.Clone(raw.Types)
	slices.SortStableFunc(types, func(a, b domain.TypeSlot) int {
		return a.Slot - b.Slot
	})

	typeNames := make([]string, len(types))
	for i, t := range types {
		typeNames[i] = t.Type.Name
	}

	abilities := make([]string, len(raw.Abilities))
	for i, a := range raw.Abilities {
		abilities[i] = a.Ability.Name
	}

	stats := make([]domain.Stat, len(raw.Stats))
	for i, s := range raw.Stats {
		stats[i] = domain.Stat{Name: s.Stat.Name, Value: s.BaseStat}
	}

	return domain.DetailRecord{
		ID:              raw.ID,
		Name:            raw.Name,
		ImageURL:        ResolveImage(raw.Sprites, raw.ID),
		HeightMeters:    float64(raw.Height) / 10,
		WeightKilograms: float64(raw.Weight) / 10,
		Types:           typeNames,
		Abilities:       abilities,
		Stats:           stats,
	}
}

// ResolveImage picks the official artwork, then the default sprite, then the
// sprite URL built from id. The first non-null candidate wins, even when it
// is an empty string.
func ResolveImage(sprites domain.Sprites, id int) string {
	for _, candidate := range []*string{sprites.OfficialArtwork(), sprites.FrontDefault} {
		if candidate != nil {
			return *candidate
		}
	}
	return domain.DefaultSpriteURL(id)
}
