package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/goparaty/internal/api/handlers"
	"github.com/zatekoja/goparaty/internal/domain/entities"
)

type stubCatalogService struct {
	invalidated int
	refreshErr  error
}

func (s *stubCatalogService) Invalidate(context.Context) error {
	s.invalidated++
	return nil
}

func (s *stubCatalogService) Refresh(context.Context) (*entities.CatalogSnapshot, error) {
	if s.refreshErr != nil {
		return nil, s.refreshErr
	}
	return &entities.CatalogSnapshot{
		Businesses: []*entities.Business{{ID: "b1"}, {ID: "b2"}},
		Totems:     []*entities.Totem{{ID: "t1"}},
		LoadedAt:   time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC),
	}, nil
}

func TestCatalogHandler_Refresh(t *testing.T) {
	svc := &stubCatalogService{}
	handler := handlers.NewCatalogHandler(svc)

	w := httptest.NewRecorder()
	handler.Refresh(w, httptest.NewRequest(http.MethodPost, "/api/catalog/refresh", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.invalidated)
	assert.Contains(t, w.Body.String(), `"businesses":2`)
	assert.Contains(t, w.Body.String(), `"totems":1`)
}

func TestCatalogHandler_RefreshFailure(t *testing.T) {
	handler := handlers.NewCatalogHandler(&stubCatalogService{refreshErr: errors.New("db down")})

	w := httptest.NewRecorder()
	handler.Refresh(w, httptest.NewRequest(http.MethodPost, "/api/catalog/refresh", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}
