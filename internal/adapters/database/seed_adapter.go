package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/domain/repositories"
	"github.com/zatekoja/goparaty/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
)

// CatalogWriterAdapter implements CatalogWriter. Rows are matched on id, so
// running a seed twice updates instead of duplicating.
type CatalogWriterAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ repositories.CatalogWriter = (*CatalogWriterAdapter)(nil)

// NewCatalogWriterAdapter creates a new catalog writer
func NewCatalogWriterAdapter(client *postgres.Client) *CatalogWriterAdapter {
	return &CatalogWriterAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// UpsertBusiness inserts or replaces a business
func (a *CatalogWriterAdapter) UpsertBusiness(ctx context.Context, b *entities.Business) error {
	location, err := json.Marshal(storedLocation{
		Lat:     b.Location.Latitude,
		Lng:     b.Location.Longitude,
		Address: b.Location.Address,
	})
	if err != nil {
		return apperrors.NewInternalError("failed to encode location", err)
	}

	hours := []byte("{}")
	if len(b.OpeningHours) > 0 {
		if hours, err = json.Marshal(b.OpeningHours); err != nil {
			return apperrors.NewInternalError("failed to encode opening hours", err)
		}
	}

	status := b.Status
	if status == "" {
		status = entities.BusinessStatusPublished
	}

	values := goqu.Record{
		"name":             b.Name,
		"category":         b.Category,
		"description":      b.Description,
		"long_description": b.LongDescription,
		"rating":           b.Rating,
		"review_count":     b.ReviewCount,
		"price_level":      b.PriceLevel,
		"image_url":        b.ImageURL,
		"gallery":          pq.Array(b.Gallery),
		"amenities":        pq.Array(b.Amenities),
		"location":         string(location),
		"opening_hours":    string(hours),
		"is_featured":      b.IsFeatured,
		"status":           string(status),
	}

	return a.upsert(ctx, "businesses", b.ID, values)
}

// UpsertTotem inserts or replaces a totem
func (a *CatalogWriterAdapter) UpsertTotem(ctx context.Context, t *entities.Totem) error {
	status := t.Status
	if status == "" {
		status = entities.TotemStatusOnline
	}
	updatedAt := t.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	values := goqu.Record{
		"name":       t.Name,
		"address":    t.Location.Address,
		"lat":        t.Location.Latitude,
		"lng":        t.Location.Longitude,
		"status":     string(status),
		"updated_at": updatedAt,
	}

	return a.upsert(ctx, "totems", t.ID, values)
}

func (a *CatalogWriterAdapter) upsert(ctx context.Context, table, id string, values goqu.Record) error {
	if id == "" {
		return apperrors.NewValidationError(table + " row requires an id")
	}

	row := goqu.Record{"id": id}
	for k, v := range values {
		row[k] = v
	}

	query, args, err := a.db.Insert(table).
		Prepared(true).
		Rows(row).
		OnConflict(goqu.DoUpdate("id", values)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert into "+table, err)
	}
	return nil
}
