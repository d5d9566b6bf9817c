package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/goparaty/internal/application/services"
	"github.com/zatekoja/goparaty/internal/domain/entities"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
)

func TestReviewService_Create(t *testing.T) {
	repo := new(mockReviewRepository)
	businessRepo := new(mockBusinessRepository)

	businessRepo.On("GetByID", mock.Anything, "b1").Return(&entities.Business{ID: "b1"}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool {
		return r.BusinessID == "b1" && r.Rating == 4 && r.ID != ""
	})).Return(nil)

	svc := services.NewReviewService(repo, businessRepo)
	review := &entities.Review{BusinessID: "b1", UserName: " Bia ", Rating: 4, Comment: "Ótimo atendimento"}

	require.NoError(t, svc.Create(context.Background(), review))
	assert.Equal(t, "Bia", review.UserName)
	assert.False(t, review.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestReviewService_CreateUnknownBusiness(t *testing.T) {
	repo := new(mockReviewRepository)
	businessRepo := new(mockBusinessRepository)
	businessRepo.On("GetByID", mock.Anything, "nope").Return(nil, apperrors.NewNotFoundError("business with id nope not found"))

	svc := services.NewReviewService(repo, businessRepo)
	err := svc.Create(context.Background(), &entities.Review{BusinessID: "nope", UserName: "Bia", Rating: 5, Comment: "ok"})

	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_CreateHiddenBusiness(t *testing.T) {
	for _, status := range []entities.BusinessStatus{
		entities.BusinessStatusPendingApproval,
		entities.BusinessStatusPendingDelete,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := new(mockReviewRepository)
			businessRepo := new(mockBusinessRepository)
			businessRepo.On("GetByID", mock.Anything, "b2").Return(&entities.Business{ID: "b2", Status: status}, nil)

			svc := services.NewReviewService(repo, businessRepo)
			err := svc.Create(context.Background(), &entities.Review{BusinessID: "b2", UserName: "Bia", Rating: 5, Comment: "ok"})

			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestReviewService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		review entities.Review
	}{
		{"rating too low", entities.Review{UserName: "Bia", Comment: "ok", Rating: 0}},
		{"rating too high", entities.Review{UserName: "Bia", Comment: "ok", Rating: 6}},
		{"missing name", entities.Review{Comment: "ok", Rating: 3}},
		{"missing comment", entities.Review{UserName: "Bia", Comment: "   ", Rating: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := services.NewReviewService(new(mockReviewRepository), new(mockBusinessRepository))
			review := tt.review
			review.BusinessID = "b1"

			err := svc.Create(context.Background(), &review)
			assert.True(t, apperrors.Is(err, apperrors.ErrorTypeValidation))
		})
	}
}

func TestReviewService_ListByBusinessClampsLimit(t *testing.T) {
	repo := new(mockReviewRepository)
	repo.On("ListByBusiness", mock.Anything, "b1", 50).Return([]*entities.Review{{ID: "r1"}}, nil).Twice()

	svc := services.NewReviewService(repo, new(mockBusinessRepository))

	reviews, err := svc.ListByBusiness(context.Background(), "b1", 0)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	_, err = svc.ListByBusiness(context.Background(), "b1", 500)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
