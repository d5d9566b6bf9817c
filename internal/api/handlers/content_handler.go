package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/goparaty/internal/domain/entities"
)

// ContentService defines the home page content operations used by the handler.
type ContentService interface {
	FeaturedEvent(ctx context.Context) (*entities.FeaturedEventResult, error)
	SiteSettings(ctx context.Context) (*entities.SiteSettings, error)
	Categories(ctx context.Context) ([]*entities.CategoryItem, error)
}

// ContentHandler serves the featured event, site settings and categories.
type ContentHandler struct {
	service ContentService
}

// NewContentHandler creates a new content handler.
func NewContentHandler(service ContentService) *ContentHandler {
	return &ContentHandler{service: service}
}

// FeaturedEvent handles GET /api/events/featured
func (h *ContentHandler) FeaturedEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.FeaturedEvent(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, event)
}

// SiteSettings handles GET /api/settings
func (h *ContentHandler) SiteSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.SiteSettings(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

// ListCategories handles GET /api/categories
func (h *ContentHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"total":      len(categories),
	})
}
