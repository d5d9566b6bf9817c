package repositories

import (
	"context"

	"github.com/zatekoja/goparaty/internal/domain/entities"
)

// BusinessRepository defines read access to directory listings
type BusinessRepository interface {
	// List retrieves every business regardless of status
	List(ctx context.Context) ([]*entities.Business, error)

	// GetByID retrieves a business by ID
	GetByID(ctx context.Context, id string) (*entities.Business, error)
}

// TotemRepository defines read access to parking kiosks
type TotemRepository interface {
	List(ctx context.Context) ([]*entities.Totem, error)
}

// BusinessSearchRepository defines the interface for the business search index (e.g. Typesense)
type BusinessSearchRepository interface {
	// EnsureSchema creates the index collection when missing
	EnsureSchema(ctx context.Context) error

	// Index upserts a business document
	Index(ctx context.Context, business *entities.Business) error

	// Delete removes a business from index
	Delete(ctx context.Context, id string) error
}

// CatalogWriter loads listings and totems into the catalog tables
type CatalogWriter interface {
	UpsertBusiness(ctx context.Context, business *entities.Business) error
	UpsertTotem(ctx context.Context, totem *entities.Totem) error
}
