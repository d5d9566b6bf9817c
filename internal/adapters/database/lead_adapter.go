package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/domain/repositories"
	"github.com/zatekoja/goparaty/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
)

// LeadAdapter implements LeadRepository
type LeadAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLeadAdapter creates a new lead adapter
func NewLeadAdapter(client *postgres.Client) repositories.LeadRepository {
	return &LeadAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create stores a lead
func (a *LeadAdapter) Create(ctx context.Context, lead *entities.Lead) error {
	record := goqu.Record{
		"id":            lead.ID,
		"name":          lead.Name,
		"business_name": lead.BusinessName,
		"email":         lead.Email,
		"phone":         lead.Phone,
		"message":       lead.Message,
		"created_at":    lead.CreatedAt,
	}

	query, args, err := a.db.Insert("leads").Prepared(true).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create lead", err)
	}

	return nil
}
