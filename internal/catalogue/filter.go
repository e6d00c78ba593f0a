// Package catalogue holds the listing page's view logic: the name filter and
// the layout toggle. Both are plain values owned by whoever renders the page.
package catalogue

import (
	"strings"

	"kanto/pokedex/internal/domain"
)

// ViewMode selects how the listing is laid out. It never changes which items
// are shown.
type ViewMode string

const (
	ViewCard ViewMode = "card"
	ViewList ViewMode = "list"
)

// ViewModes is the toggle order shown on the page.
var ViewModes = []ViewMode{ViewCard, ViewList}

// Label is the toggle button text.
func (m ViewMode) Label() string {
	switch m {
	case ViewList:
		return "Lista"
	default:
		return "Tarjetas"
	}
}

// ParseViewMode falls back to the card layout for anything unrecognised.
func ParseViewMode(raw string) ViewMode {
	switch ViewMode(strings.ToLower(strings.TrimSpace(raw))) {
	case ViewList:
		return ViewList
	default:
		return ViewCard
	}
}

// Filter returns the items whose name contains query, ignoring case. A blank
// query returns items unchanged. Relative order is preserved.
func Filter(items []domain.CatalogueItem, query string) []domain.CatalogueItem {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return items
	}

	filtered := make([]domain.CatalogueItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), normalized) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// ViewState is the listing page state: search text and layout.
type ViewState struct {
	Query string
	Mode  ViewMode
}

// Visible is recomputed from scratch on every call.
func (s ViewState) Visible(items []domain.CatalogueItem) []domain.CatalogueItem {
	return Filter(items, s.Query)
}
