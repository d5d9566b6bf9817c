package handlers

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/zatekoja/goparaty/internal/application/services"
	"github.com/zatekoja/goparaty/internal/domain/entities"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
)

// ListingService defines the listing operations used by the handler.
type ListingService interface {
	Query(ctx context.Context, q services.ListingQuery) (*services.ListingResponse, error)
	Get(ctx context.Context, id string, user *entities.UserLocation) (*entities.ListingResult, error)
	NearestTotems(ctx context.Context, user *entities.UserLocation) (*services.TotemResponse, error)
}

// ListingHandler serves the directory listing, business detail and totem finder.
type ListingHandler struct {
	service ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(service ListingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// ListBusinesses handles GET /api/businesses
func (h *ListingHandler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	user, err := parseUserLocation(r)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	state := entities.DefaultFilterState()
	if category := strings.TrimSpace(q.Get("category")); category != "" {
		state.SelectedCategory = category
	}
	state.SearchQuery = strings.TrimSpace(q.Get("q"))
	state.ViewScope = entities.ParseViewScope(q.Get("view"))

	if open := q.Get("open"); open != "" {
		state.ShowOpenOnly, err = strconv.ParseBool(open)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "open must be a boolean")
			return
		}
	}

	resp, err := h.service.Query(r.Context(), services.ListingQuery{Filter: state, UserLocation: user})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// GetBusiness handles GET /api/businesses/{id}
func (h *ListingHandler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "business ID is required")
		return
	}

	user, err := parseUserLocation(r)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	result, err := h.service.Get(r.Context(), id, user)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// ListTotems handles GET /api/totems
func (h *ListingHandler) ListTotems(w http.ResponseWriter, r *http.Request) {
	user, err := parseUserLocation(r)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	resp, err := h.service.NearestTotems(r.Context(), user)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// parseUserLocation reads the optional lat/lng pair. Both or neither must be present.
func parseUserLocation(r *http.Request) (*entities.UserLocation, error) {
	latRaw := strings.TrimSpace(r.URL.Query().Get("lat"))
	lngRaw := strings.TrimSpace(r.URL.Query().Get("lng"))

	if latRaw == "" && lngRaw == "" {
		return nil, nil
	}
	if latRaw == "" || lngRaw == "" {
		return nil, apperrors.NewValidationError("lat and lng must be provided together")
	}

	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return nil, apperrors.NewValidationError("lat must be a number")
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return nil, apperrors.NewValidationError("lng must be a number")
	}

	return &entities.UserLocation{Latitude: lat, Longitude: lng}, nil
}
