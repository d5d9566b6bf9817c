package repositories

import (
	"context"

	"github.com/zatekoja/goparaty/internal/domain/entities"
)

// LeadRepository stores advertising enquiries
type LeadRepository interface {
	Create(ctx context.Context, lead *entities.Lead) error
}

// ReviewRepository stores and lists visitor reviews
type ReviewRepository interface {
	// Create stores a review
	Create(ctx context.Context, review *entities.Review) error

	// ListByBusiness retrieves the reviews of a business, newest first
	ListByBusiness(ctx context.Context, businessID string, limit int) ([]*entities.Review, error)
}
