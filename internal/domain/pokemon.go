package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	// CatalogueSize is the number of Pokémon listed: the Kanto dex.
	CatalogueSize = 151

	// RegenerationInterval is how long a generated page stays fresh.
	RegenerationInterval = 24 * time.Hour
)

const (
	spritesBaseURL       = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon"
	officialArtworkPath  = spritesBaseURL + "/other/official-artwork"
	officialArtworkField = "official-artwork"
)

// ErrUnknownPokemon is returned when a name is not in the generated route set.
var ErrUnknownPokemon = errors.New("unknown pokemon")

// CatalogueItem is one entry of the listing page.
// ID is the 1-based position in the upstream listing.
type CatalogueItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// Stat is a single base stat of a Pokémon.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DetailRecord is the display-ready representation of one Pokémon.
type DetailRecord struct {
	ID              int      `json:"id"`
	Name            string   `json:"name"`
	ImageURL        string   `json:"image_url"`
	HeightMeters    float64  `json:"height_meters"`
	WeightKilograms float64  `json:"weight_kilograms"`
	Types           []string `json:"types"`     // ordered by slot
	Abilities       []string `json:"abilities"` // source order
	Stats           []Stat   `json:"stats"`     // source order
}

// OfficialArtworkURL is the catalogue thumbnail for the given dex number.
func OfficialArtworkURL(id int) string {
	return fmt.Sprintf("%s/%d.png", officialArtworkPath, id)
}

// DefaultSpriteURL is the last-resort image for a detail page.
func DefaultSpriteURL(id int) string {
	return fmt.Sprintf("%s/%d.png", spritesBaseURL, id)
}
