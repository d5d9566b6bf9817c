package repositories

import (
	"context"

	"github.com/zatekoja/goparaty/internal/domain/entities"
)

// EventRepository defines read access to promoted events
type EventRepository interface {
	// GetFeatured returns the newest active event, or a NotFound error
	GetFeatured(ctx context.Context) (*entities.FeaturedEvent, error)
}

// SiteSettingsRepository defines read access to site settings
type SiteSettingsRepository interface {
	// GetLatest returns the most recently updated settings row, or a NotFound error
	GetLatest(ctx context.Context) (*entities.SiteSettings, error)
}

// CategoryRepository defines read access to listing categories
type CategoryRepository interface {
	List(ctx context.Context) ([]*entities.CategoryItem, error)
}
