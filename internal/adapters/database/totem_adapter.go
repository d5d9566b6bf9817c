package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/domain/repositories"
	"github.com/zatekoja/goparaty/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/goparaty/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
)

// TotemAdapter implements TotemRepository
type TotemAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

// NewTotemAdapter creates a new totem adapter
func NewTotemAdapter(client *postgres.Client, metrics *observability.Metrics) repositories.TotemRepository {
	return &TotemAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

// List retrieves all totems
func (a *TotemAdapter) List(ctx context.Context) ([]*entities.Totem, error) {
	start := time.Now()
	defer func() { observability.RecordDBMetric(ctx, a.metrics, "list_totems", time.Since(start)) }()

	query, args, err := a.db.Select(
		"id", "name", "address", "lat", "lng", "status", "updated_at",
	).From("totems").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list totems", err)
	}
	defer rows.Close()

	var totems []*entities.Totem
	for rows.Next() {
		totem := &entities.Totem{}
		var (
			address, status sql.NullString
			lat, lng        sql.NullFloat64
			updatedAt       sql.NullTime
		)

		if err := rows.Scan(&totem.ID, &totem.Name, &address, &lat, &lng, &status, &updatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan totem", err)
		}

		totem.Location = entities.Location{Latitude: lat.Float64, Longitude: lng.Float64, Address: address.String}
		totem.Status = entities.TotemStatus(status.String)
		if totem.Status == "" {
			totem.Status = entities.TotemStatusOnline
		}
		totem.UpdatedAt = updatedAt.Time

		totems = append(totems, totem)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate totems", err)
	}

	return totems, nil
}
