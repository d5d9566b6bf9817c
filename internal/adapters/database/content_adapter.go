package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/domain/repositories"
	"github.com/zatekoja/goparaty/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/goparaty/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
)

// ContentAdapter reads the editor-managed site content: the featured
// event, site settings and the category list.
type ContentAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

var (
	_ repositories.EventRepository        = (*ContentAdapter)(nil)
	_ repositories.SiteSettingsRepository = (*ContentAdapter)(nil)
	_ repositories.CategoryRepository     = (*ContentAdapter)(nil)
)

// NewContentAdapter creates a new content adapter
func NewContentAdapter(client *postgres.Client, metrics *observability.Metrics) *ContentAdapter {
	return &ContentAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

// GetFeatured retrieves the newest active event
func (a *ContentAdapter) GetFeatured(ctx context.Context) (*entities.FeaturedEvent, error) {
	start := time.Now()
	defer func() { observability.RecordDBMetric(ctx, a.metrics, "get_featured_event", time.Since(start)) }()

	query, args, err := a.db.Select(
		"id", "title", "description", "image_url", "button_text", "button_link",
		"schedule", "location", "is_active", "starts_at", "ends_at", "created_at",
	).From("events").
		Where(goqu.Ex{"is_active": true}).
		Order(goqu.I("created_at").Desc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build event query", err)
	}

	event := &entities.FeaturedEvent{}
	var (
		description, imageURL, buttonText sql.NullString
		buttonLink, schedule, location    sql.NullString
		startsAt, endsAt                  sql.NullTime
	)

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&event.ID,
		&event.Title,
		&description,
		&imageURL,
		&buttonText,
		&buttonLink,
		&schedule,
		&location,
		&event.IsActive,
		&startsAt,
		&endsAt,
		&event.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("no active event")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get featured event", err)
	}

	event.Description = description.String
	event.ImageURL = imageURL.String
	event.ButtonText = buttonText.String
	event.ButtonLink = buttonLink.String
	event.Schedule = schedule.String
	event.Location = location.String
	if startsAt.Valid {
		event.StartsAt = &startsAt.Time
	}
	if endsAt.Valid {
		event.EndsAt = &endsAt.Time
	}

	return event, nil
}

// GetLatest retrieves the most recently saved site settings
func (a *ContentAdapter) GetLatest(ctx context.Context) (*entities.SiteSettings, error) {
	query, args, err := a.db.Select("id", "hero_background_url", "updated_at").
		From("site_settings").
		Order(goqu.I("updated_at").Desc()).
		Limit(1).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build settings query", err)
	}

	settings := &entities.SiteSettings{}
	var heroURL sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&settings.ID, &heroURL, &settings.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("site settings not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get site settings", err)
	}

	settings.HeroBackgroundURL = heroURL.String
	return settings, nil
}

// List retrieves all categories by name
func (a *ContentAdapter) List(ctx context.Context) ([]*entities.CategoryItem, error) {
	start := time.Now()
	defer func() { observability.RecordDBMetric(ctx, a.metrics, "list_categories", time.Since(start)) }()

	query, args, err := a.db.Select("id", "name", "slug", "created_at").
		From("categories").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list categories", err)
	}
	defer rows.Close()

	categories := []*entities.CategoryItem{}
	for rows.Next() {
		c := &entities.CategoryItem{}
		var slug sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &slug, &c.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan category", err)
		}
		c.Slug = slug.String
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate categories", err)
	}

	return categories, nil
}
