package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/domain/repositories"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
)

const (
	defaultReviewLimit = 50
	maxReviewLength    = 1000
)

// ReviewService handles visitor reviews.
type ReviewService struct {
	repo         repositories.ReviewRepository
	businessRepo repositories.BusinessRepository
}

// NewReviewService creates a new review service.
func NewReviewService(repo repositories.ReviewRepository, businessRepo repositories.BusinessRepository) *ReviewService {
	return &ReviewService{repo: repo, businessRepo: businessRepo}
}

// Create validates and stores a review for an existing business.
func (s *ReviewService) Create(ctx context.Context, review *entities.Review) error {
	review.UserName = strings.TrimSpace(review.UserName)
	review.Comment = strings.TrimSpace(review.Comment)

	switch {
	case review.UserName == "":
		return apperrors.NewValidationError("user_name is required")
	case review.Comment == "":
		return apperrors.NewValidationError("comment is required")
	case len(review.Comment) > maxReviewLength:
		return apperrors.NewValidationError("comment is too long")
	case review.Rating < 1 || review.Rating > 5:
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}

	business, err := s.businessRepo.GetByID(ctx, review.BusinessID)
	if err != nil {
		return err
	}
	// listings hidden from visitors do not take reviews either
	if !business.IsPublished() {
		return apperrors.NewNotFoundError(fmt.Sprintf("business with id %s not found", review.BusinessID))
	}

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}

	return s.repo.Create(ctx, review)
}

// ListByBusiness returns the newest reviews of a business.
func (s *ReviewService) ListByBusiness(ctx context.Context, businessID string, limit int) ([]*entities.Review, error) {
	if limit <= 0 || limit > defaultReviewLimit {
		limit = defaultReviewLimit
	}
	return s.repo.ListByBusiness(ctx, businessID, limit)
}
