package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/goparaty/internal/api/handlers"
	"github.com/zatekoja/goparaty/internal/api/routes"
	"github.com/zatekoja/goparaty/internal/application/services"
	"github.com/zatekoja/goparaty/internal/domain/entities"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
)

type memoryStore struct {
	mu         sync.Mutex
	businesses []*entities.Business
	totems     []*entities.Totem
	leads      []*entities.Lead
	reviews    []*entities.Review
	event      *entities.FeaturedEvent
	categories []*entities.CategoryItem
}

func (m *memoryStore) List(context.Context) ([]*entities.Business, error) {
	return m.businesses, nil
}

func (m *memoryStore) GetByID(_ context.Context, id string) (*entities.Business, error) {
	for _, b := range m.businesses {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperrors.NewNotFoundError("business not found")
}

type totemStore struct{ *memoryStore }

func (t totemStore) List(context.Context) ([]*entities.Totem, error) {
	return t.totems, nil
}

type contentStore struct{ *memoryStore }

func (c contentStore) GetFeatured(context.Context) (*entities.FeaturedEvent, error) {
	if c.event == nil {
		return nil, apperrors.NewNotFoundError("no active event")
	}
	return c.event, nil
}

func (c contentStore) GetLatest(context.Context) (*entities.SiteSettings, error) {
	return nil, apperrors.NewNotFoundError("site settings not found")
}

func (c contentStore) List(context.Context) ([]*entities.CategoryItem, error) {
	return c.categories, nil
}

type leadStore struct{ *memoryStore }

func (l leadStore) Create(_ context.Context, lead *entities.Lead) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.leads = append(l.leads, lead)
	return nil
}

type reviewStore struct{ *memoryStore }

func (r reviewStore) Create(_ context.Context, review *entities.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviews = append(r.reviews, review)
	return nil
}

func (r reviewStore) ListByBusiness(_ context.Context, businessID string, limit int) ([]*entities.Review, error) {
	var out []*entities.Review
	for _, rv := range r.reviews {
		if rv.BusinessID == businessID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *memoryStore) {
	t.Helper()
	return newTestServerAt(t, func() time.Time { return time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC) })
}

func newTestServerAt(t *testing.T, clock func() time.Time) (*httptest.Server, *memoryStore) {
	t.Helper()

	store := &memoryStore{
		businesses: []*entities.Business{
			{
				ID:           "casa",
				Name:         "Casa da Cultura",
				Category:     "História",
				Location:     entities.Location{Latitude: -23.2178, Longitude: -44.7131},
				OpeningHours: map[string]string{"monday-sunday": "24h"},
				Status:       entities.BusinessStatusPublished,
			},
			{
				ID:       "rascunho",
				Name:     "Rascunho",
				Category: "Gastronomia",
				Status:   entities.BusinessStatusPendingApproval,
			},
		},
		totems: []*entities.Totem{
			{ID: "t1", Name: "Matriz", Location: entities.Location{Latitude: -23.2190, Longitude: -44.7150}},
		},
	}

	catalog := services.NewCatalogService(store, totemStore{store}, nil, time.Minute, nil)

	router := routes.NewRouter(
		handlers.NewListingHandler(services.NewListingService(catalog, clock, nil)),
		handlers.NewReviewHandler(services.NewReviewService(reviewStore{store}, store)),
		handlers.NewLeadHandler(services.NewLeadService(leadStore{store}, nil), nil, nil),
		handlers.NewCatalogHandler(catalog),
		handlers.NewContentHandler(services.NewContentService(contentStore{store}, contentStore{store}, contentStore{store}, clock)),
		[]string{"*"},
		nil,
	)

	server := httptest.NewServer(router.SetupRoutes())
	t.Cleanup(server.Close)
	return server, store
}

func TestRouter_Health(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_ListBusinessesOnlyPublished(t *testing.T) {
	server, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/businesses?view=history", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://guiaparaty.com.br")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get("ETag"))

	var body struct {
		Results []struct {
			ID     string `json:"id"`
			IsOpen bool   `json:"is_open"`
		} `json:"results"`
		Total int `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "casa", body.Results[0].ID)
	assert.True(t, body.Results[0].IsOpen)
}

func TestRouter_UnpublishedBusinessIsNotFound(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/businesses/rascunho")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_TotemsAndReviews(t *testing.T) {
	server, store := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/totems?lat=-23.2178&lng=-44.7131")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(server.URL+"/api/businesses/casa/reviews", "application/json",
		strings.NewReader(`{"user_name":"Bia","rating":5,"comment":"Lindo acervo"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, store.reviews, 1)

	resp, err = http.Get(server.URL + "/api/businesses/casa/reviews")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_Leads(t *testing.T) {
	server, store := newTestServer(t)

	payload := `{"name":"Ana","business_name":"Pousada Azul","email":"ana@pousadaazul.com.br","phone":"+55 24 99999-0000","message":"Quero anunciar"}`
	resp, err := http.Post(server.URL+"/api/leads", "application/json", strings.NewReader(payload))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))
	assert.Len(t, store.leads, 1)
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/totems", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestRouter_CatalogRefresh(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Post(server.URL+"/api/catalog/refresh", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["businesses"])
	assert.Equal(t, float64(1), body["totems"])
}

func TestRouter_ListBusinessesRevalidates(t *testing.T) {
	var tick atomic.Int64
	base := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	server, _ := newTestServerAt(t, func() time.Time {
		return base.Add(time.Duration(tick.Add(1)) * time.Second)
	})

	resp, err := http.Get(server.URL + "/api/businesses")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/businesses", nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
}

func TestRouter_HomePageContent(t *testing.T) {
	server, store := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/events/featured")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	store.event = &entities.FeaturedEvent{ID: "e1", Title: "Paraty em Foco", IsActive: true}
	resp, err = http.Get(server.URL + "/api/events/featured")
	require.NoError(t, err)
	var event struct {
		Title       string `json:"title"`
		ButtonText  string `json:"button_text"`
		CalendarURL string `json:"calendar_url"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&event))
	resp.Body.Close()
	assert.Equal(t, "Paraty em Foco", event.Title)
	assert.Equal(t, "Quero Ir", event.ButtonText)
	assert.True(t, strings.HasPrefix(event.CalendarURL, "https://www.google.com/calendar/render?"))
	assert.Equal(t, "public, max-age=300, must-revalidate", resp.Header.Get("Cache-Control"))

	resp, err = http.Get(server.URL + "/api/settings")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/categories")
	require.NoError(t, err)
	var categories struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
	resp.Body.Close()
	assert.Equal(t, 5, categories.Total)
}
