package catalogue_test

import (
	"reflect"
	"testing"

	"kanto/pokedex/internal/catalogue"
	"kanto/pokedex/internal/domain"
)

func starters() []domain.CatalogueItem {
	return []domain.CatalogueItem{
		{ID: 1, Name: "bulbasaur"},
		{ID: 4, Name: "charmander"},
		{ID: 7, Name: "squirtle"},
	}
}

func names(items []domain.CatalogueItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{query: "AR", want: []string{"charmander"}},
		{query: "", want: []string{"bulbasaur", "charmander", "squirtle"}},
		{query: "   ", want: []string{"bulbasaur", "charmander", "squirtle"}},
		{query: "  saur ", want: []string{"bulbasaur"}},
		{query: "r", want: []string{"bulbasaur", "charmander", "squirtle"}},
		{query: "mewtwo", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := names(catalogue.Filter(starters(), tt.query))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("query %q: got %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFilter_DoesNotModifyInput(t *testing.T) {
	items := starters()
	_ = catalogue.Filter(items, "squirtle")

	if !reflect.DeepEqual(items, starters()) {
		t.Errorf("input modified: %v", items)
	}
}

func TestViewState_ModeDoesNotAffectVisibleItems(t *testing.T) {
	card := catalogue.ViewState{Query: "a", Mode: catalogue.ViewCard}
	list := catalogue.ViewState{Query: "a", Mode: catalogue.ViewList}

	if !reflect.DeepEqual(card.Visible(starters()), list.Visible(starters())) {
		t.Error("view mode changed the visible set")
	}
}

func TestParseViewMode(t *testing.T) {
	tests := map[string]catalogue.ViewMode{
		"list":  catalogue.ViewList,
		"LIST ": catalogue.ViewList,
		"card":  catalogue.ViewCard,
		"":      catalogue.ViewCard,
		"grid":  catalogue.ViewCard,
	}
	for raw, want := range tests {
		if got := catalogue.ParseViewMode(raw); got != want {
			t.Errorf("%q: got %s, want %s", raw, got, want)
		}
	}
}
