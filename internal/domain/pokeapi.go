package domain

// NamedResource is a name/url pair as returned by the upstream API.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListResponse is the body of GET /pokemon?limit=N.
type ListResponse struct {
	Count   int             `json:"count"`
	Results []NamedResource `json:"results"`
}

// PokemonResponse is the subset of GET /pokemon/{name} used by the site.
type PokemonResponse struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Height    int           `json:"height"` // decimeters
	Weight    int           `json:"weight"` // hectograms
	Abilities []AbilitySlot `json:"abilities"`
	Types     []TypeSlot    `json:"types"`
	Stats     []BaseStat    `json:"stats"`
	Sprites   Sprites       `json:"sprites"`
}

type AbilitySlot struct {
	Ability NamedResource `json:"ability"`
}

type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

type BaseStat struct {
	BaseStat int           `json:"base_stat"`
	Stat     NamedResource `json:"stat"`
}

// Sprites keeps only the fields the image fallback chain reads. Every field
// may be null upstream.
type Sprites struct {
	FrontDefault *string                   `json:"front_default"`
	Other        map[string]*SpriteVariant `json:"other,omitempty"`
}

type SpriteVariant struct {
	FrontDefault *string `json:"front_default"`
}

// OfficialArtwork returns the official artwork URL, or nil when absent.
func (s Sprites) OfficialArtwork() *string {
	variant := s.Other[officialArtworkField]
	if variant == nil {
		return nil
	}
	return variant.FrontDefault
}
