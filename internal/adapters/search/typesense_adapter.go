package search

import (
	"context"
	"fmt"

	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/domain/repositories"
	tsclient "github.com/zatekoja/goparaty/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/goparaty/pkg/textnorm"
)

// TypesenseAdapter indexes businesses into Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements BusinessSearchRepository
var _ repositories.BusinessSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// EnsureSchema ensures the collection exists
func (a *TypesenseAdapter) EnsureSchema(ctx context.Context) error {
	return a.client.InitSchema(ctx)
}

// Index upserts a business document
func (a *TypesenseAdapter) Index(ctx context.Context, business *entities.Business) error {
	_, err := a.client.Client().Collection(tsclient.BusinessesCollection).Documents().Upsert(ctx, buildDocument(business))
	if err != nil {
		return fmt.Errorf("failed to index business %s: %w", business.ID, err)
	}
	return nil
}

// Delete removes a business from index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.BusinessesCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete business from index: %w", err)
	}
	return nil
}

func buildDocument(business *entities.Business) map[string]interface{} {
	doc := map[string]interface{}{
		"id":                  business.ID,
		"name":                business.Name,
		"description":         business.Description,
		"category":            business.Category,
		"category_normalized": textnorm.Fold(business.Category),
		"location":            []float64{business.Location.Latitude, business.Location.Longitude},
		"rating":              business.Rating,
		"review_count":        business.ReviewCount,
		"price_level":         business.PriceLevel,
		"is_featured":         business.IsFeatured,
	}
	if business.Location.Address != "" {
		doc["address"] = business.Location.Address
	}
	if len(business.Amenities) > 0 {
		doc["amenities"] = business.Amenities
	}
	return doc
}
