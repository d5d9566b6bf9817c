package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/goparaty/internal/domain/entities"
)

// CatalogService defines the catalog maintenance operations used by the handler.
type CatalogService interface {
	Invalidate(ctx context.Context) error
	Refresh(ctx context.Context) (*entities.CatalogSnapshot, error)
}

// CatalogHandler lets editors publish catalog changes without waiting for the cache TTL.
type CatalogHandler struct {
	service CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Refresh handles POST /api/catalog/refresh
func (h *CatalogHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Invalidate(r.Context()); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	snapshot, err := h.service.Refresh(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "refreshed",
		"businesses": len(snapshot.Businesses),
		"totems":     len(snapshot.Totems),
		"loaded_at":  snapshot.LoadedAt,
	})
}
