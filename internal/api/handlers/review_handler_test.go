package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/goparaty/internal/api/handlers"
	"github.com/zatekoja/goparaty/internal/domain/entities"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
)

type mockReviewService struct {
	mock.Mock
}

func (m *mockReviewService) Create(ctx context.Context, review *entities.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewService) ListByBusiness(ctx context.Context, businessID string, limit int) ([]*entities.Review, error) {
	args := m.Called(ctx, businessID, limit)
	reviews, _ := args.Get(0).([]*entities.Review)
	return reviews, args.Error(1)
}

func TestReviewHandler_ListReviews(t *testing.T) {
	svc := new(mockReviewService)
	handler := handlers.NewReviewHandler(svc)

	svc.On("ListByBusiness", mock.Anything, "b1", 10).
		Return([]*entities.Review{{ID: "r1", BusinessID: "b1", UserName: "Bia", Rating: 5}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/businesses/b1/reviews?limit=10", nil)
	w := serve("GET /api/businesses/{id}/reviews", handler.ListReviews, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)
	assert.Contains(t, w.Body.String(), `"user_name":"Bia"`)
}

func TestReviewHandler_ListReviews_BadLimit(t *testing.T) {
	handler := handlers.NewReviewHandler(new(mockReviewService))

	req := httptest.NewRequest(http.MethodGet, "/api/businesses/b1/reviews?limit=-1", nil)
	w := serve("GET /api/businesses/{id}/reviews", handler.ListReviews, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewHandler_CreateReview(t *testing.T) {
	svc := new(mockReviewService)
	handler := handlers.NewReviewHandler(svc)

	svc.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool {
		return r.BusinessID == "b1" && r.UserName == "Bia" && r.Rating == 5
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.Review).ID = "r-new"
	}).Return(nil)

	body := `{"user_name":"Bia","rating":5,"comment":"Maravilhoso"}`
	req := httptest.NewRequest(http.MethodPost, "/api/businesses/b1/reviews", strings.NewReader(body))
	w := serve("POST /api/businesses/{id}/reviews", handler.CreateReview, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"r-new"`)
	svc.AssertExpectations(t)
}

func TestReviewHandler_CreateReview_Errors(t *testing.T) {
	svc := new(mockReviewService)
	handler := handlers.NewReviewHandler(svc)

	svc.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool { return r.BusinessID == "ghost" })).
		Return(apperrors.NewNotFoundError("business with id ghost not found"))
	svc.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool { return r.BusinessID == "b1" })).
		Return(apperrors.NewValidationError("rating must be between 1 and 5"))

	req := httptest.NewRequest(http.MethodPost, "/api/businesses/ghost/reviews", strings.NewReader(`{"user_name":"x","rating":5,"comment":"y"}`))
	w := serve("POST /api/businesses/{id}/reviews", handler.CreateReview, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/businesses/b1/reviews", strings.NewReader(`{"user_name":"x","rating":9,"comment":"y"}`))
	w = serve("POST /api/businesses/{id}/reviews", handler.CreateReview, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/businesses/b1/reviews", strings.NewReader(`not json`))
	w = serve("POST /api/businesses/{id}/reviews", handler.CreateReview, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
