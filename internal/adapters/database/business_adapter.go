package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/domain/repositories"
	"github.com/zatekoja/goparaty/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/goparaty/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
)

var businessColumns = []interface{}{
	"id", "name", "category", "description", "long_description",
	"rating", "review_count", "price_level", "image_url", "gallery",
	"amenities", "location", "opening_hours", "is_featured", "status",
}

// storedLocation is the JSON shape of the businesses.location column.
type storedLocation struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// BusinessAdapter implements BusinessRepository
type BusinessAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

// NewBusinessAdapter creates a new business adapter
func NewBusinessAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.BusinessRepository {
	return &BusinessAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

// List retrieves every business regardless of status
func (a *BusinessAdapter) List(ctx context.Context) ([]*entities.Business, error) {
	start := time.Now()
	defer func() { observability.RecordDBMetric(ctx, a.metrics, "list_businesses", time.Since(start)) }()

	query, args, err := a.db.Select(businessColumns...).
		From("businesses").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list businesses", err)
	}
	defer rows.Close()

	var businesses []*entities.Business
	for rows.Next() {
		business, err := scanBusiness(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan business", err)
		}
		businesses = append(businesses, business)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate businesses", err)
	}

	return businesses, nil
}

// GetByID retrieves a business by ID
func (a *BusinessAdapter) GetByID(ctx context.Context, id string) (*entities.Business, error) {
	start := time.Now()
	defer func() { observability.RecordDBMetric(ctx, a.metrics, "get_business", time.Since(start)) }()

	query, args, err := a.db.Select(businessColumns...).
		From("businesses").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	business, err := scanBusiness(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("business with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get business", err)
	}

	return business, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBusiness(row rowScanner) (*entities.Business, error) {
	business := &entities.Business{}
	var (
		category, description, longDescription sql.NullString
		imageURL, status                       sql.NullString
		rating                                 sql.NullFloat64
		reviewCount, priceLevel                sql.NullInt64
		isFeatured                             sql.NullBool
		gallery, amenities                     pq.StringArray
		location, openingHours                 []byte
	)

	err := row.Scan(
		&business.ID,
		&business.Name,
		&category,
		&description,
		&longDescription,
		&rating,
		&reviewCount,
		&priceLevel,
		&imageURL,
		&gallery,
		&amenities,
		&location,
		&openingHours,
		&isFeatured,
		&status,
	)
	if err != nil {
		return nil, err
	}

	business.Category = category.String
	business.Description = description.String
	business.LongDescription = longDescription.String
	business.Rating = rating.Float64
	business.ReviewCount = int(reviewCount.Int64)
	business.PriceLevel = int(priceLevel.Int64)
	business.ImageURL = imageURL.String
	business.Gallery = []string(gallery)
	business.Amenities = []string(amenities)
	business.IsFeatured = isFeatured.Bool
	business.Status = entities.BusinessStatus(status.String)

	if len(location) > 0 {
		var loc storedLocation
		if err := json.Unmarshal(location, &loc); err != nil {
			return nil, fmt.Errorf("business %s: location: %w", business.ID, err)
		}
		business.Location = entities.Location{Latitude: loc.Lat, Longitude: loc.Lng, Address: loc.Address}
	}

	// malformed hours leave OpeningHours nil, which never evaluates as open
	if len(openingHours) > 0 {
		hours := map[string]string{}
		if err := json.Unmarshal(openingHours, &hours); err == nil {
			business.OpeningHours = hours
		}
	}

	return business, nil
}
