// Package render turns catalogue and detail records into HTML pages.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"unicode"
	"unicode/utf8"

	"kanto/pokedex/internal/catalogue"
	"kanto/pokedex/internal/domain"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

type Renderer struct {
	index  *template.Template
	detail *template.Template
}

// IndexItem is a catalogue entry plus whether the current query matches it.
// Hidden entries are still rendered so the in-page filter can reveal them.
type IndexItem struct {
	domain.CatalogueItem
	Visible bool
}

type indexPage struct {
	Items      []IndexItem
	Total      int
	State      catalogue.ViewState
	ViewModes  []catalogue.ViewMode
	HasResults bool
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"capitalize": Capitalize,
		"dex":        DexNumber,
		"metric":     Metric,
	}

	index, err := template.New("index").Funcs(funcs).ParseFS(templatesFS, "templates/base.html.tmpl", "templates/index.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	detail, err := template.New("detail").Funcs(funcs).ParseFS(templatesFS, "templates/base.html.tmpl", "templates/detail.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse detail template: %w", err)
	}

	return &Renderer{index: index, detail: detail}, nil
}

// RenderIndex writes the listing page for all items under the given state.
func (r *Renderer) RenderIndex(w io.Writer, all []domain.CatalogueItem, state catalogue.ViewState) error {
	if state.Mode == "" {
		state.Mode = catalogue.ViewCard
	}

	visible := make(map[int]bool, len(all))
	for _, item := range state.Visible(all) {
		visible[item.ID] = true
	}

	items := make([]IndexItem, len(all))
	for i, item := range all {
		items[i] = IndexItem{CatalogueItem: item, Visible: visible[item.ID]}
	}

	page := indexPage{
		Items:      items,
		Total:      len(all),
		State:      state,
		ViewModes:  catalogue.ViewModes,
		HasResults: len(visible) > 0,
	}

	if err := r.index.ExecuteTemplate(w, "index.html.tmpl", page); err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}
	return nil
}

// RenderDetail writes the page for one Pokémon.
func (r *Renderer) RenderDetail(w io.Writer, record *domain.DetailRecord) error {
	if err := r.detail.ExecuteTemplate(w, "detail.html.tmpl", record); err != nil {
		return fmt.Errorf("failed to render detail for %s: %w", record.Name, err)
	}
	return nil
}

// Capitalize upper-cases the first letter only: "mr-mime" -> "Mr-mime".
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// DexNumber pads an id to three digits.
func DexNumber(id int) string {
	return fmt.Sprintf("%03d", id)
}

// Metric formats a height or weight with one decimal.
func Metric(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
