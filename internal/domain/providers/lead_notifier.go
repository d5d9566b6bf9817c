package providers

import (
	"context"

	"github.com/zatekoja/goparaty/internal/domain/entities"
)

// LeadNotifier alerts the sales team about a new advertising enquiry
type LeadNotifier interface {
	NotifyLead(ctx context.Context, lead *entities.Lead) error
}
