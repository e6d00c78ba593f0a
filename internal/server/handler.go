package server

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"kanto/pokedex/internal/catalogue"
	"kanto/pokedex/internal/domain"
	"kanto/pokedex/internal/render"
)

// Site is the generated site as seen by the handlers.
type Site interface {
	Catalogue() ([]domain.CatalogueItem, bool)
	IsKnown(name string) bool
	DetailPath(name string) string
}

type Handler struct {
	site     Site
	renderer *render.Renderer
}

func NewHandler(site Site, renderer *render.Renderer) *Handler {
	return &Handler{site: site, renderer: renderer}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/", h.Index)
	e.GET("/pokemon/:name", h.Detail)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Index renders the listing for ?q and ?view from the last built catalogue.
func (h *Handler) Index(c echo.Context) error {
	items, ok := h.site.Catalogue()
	if !ok {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "catalogue not built yet")
	}

	state := catalogue.ViewState{
		Query: c.QueryParam("q"),
		Mode:  catalogue.ParseViewMode(c.QueryParam("view")),
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderIndex(&buf, items, state); err != nil {
		log.Errorf("❌ Failed to render index (request %v): %v", c.Get("request_id"), err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// Detail serves a generated page. Names outside the known set are never
// built on demand.
func (h *Handler) Detail(c echo.Context) error {
	name := c.Param("name")
	if !h.site.IsKnown(name) {
		return echo.NewHTTPError(http.StatusNotFound, "pokemon not found")
	}

	return c.File(h.site.DetailPath(name))
}
