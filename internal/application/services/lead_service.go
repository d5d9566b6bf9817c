package services

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/domain/providers"
	"github.com/zatekoja/goparaty/internal/domain/repositories"
	"github.com/zatekoja/goparaty/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
)

const maxLeadMessageLength = 2000

// LeadService handles "advertise with us" submissions.
type LeadService struct {
	repo     repositories.LeadRepository
	notifier providers.LeadNotifier
}

// NewLeadService creates a new lead service. notifier may be nil.
func NewLeadService(repo repositories.LeadRepository, notifier providers.LeadNotifier) *LeadService {
	return &LeadService{repo: repo, notifier: notifier}
}

// Create validates and stores a lead.
func (s *LeadService) Create(ctx context.Context, lead *entities.Lead) error {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.BusinessName = strings.TrimSpace(lead.BusinessName)
	lead.Email = strings.TrimSpace(lead.Email)
	lead.Phone = strings.TrimSpace(lead.Phone)
	lead.Message = strings.TrimSpace(lead.Message)

	switch {
	case lead.Name == "":
		return apperrors.NewValidationError("name is required")
	case lead.BusinessName == "":
		return apperrors.NewValidationError("business_name is required")
	case lead.Email == "":
		return apperrors.NewValidationError("email is required")
	case lead.Phone == "":
		return apperrors.NewValidationError("phone is required")
	case len(lead.Message) > maxLeadMessageLength:
		return apperrors.NewValidationError("message is too long")
	}
	if _, err := mail.ParseAddress(lead.Email); err != nil {
		return apperrors.NewValidationError("email is invalid")
	}

	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}

	if err := s.repo.Create(ctx, lead); err != nil {
		return err
	}

	logger := observability.LoggerFromContext(ctx)
	logger.Info().
		Str("lead_id", lead.ID).
		Str("business_name", lead.BusinessName).
		Msg("lead received")

	// the lead is already stored; a failed alert must not fail the request
	if s.notifier != nil {
		if err := s.notifier.NotifyLead(ctx, lead); err != nil {
			logger.Warn().Err(err).Str("lead_id", lead.ID).Msg("failed to send lead alert")
		}
	}
	return nil
}
