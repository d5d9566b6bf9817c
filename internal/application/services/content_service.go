package services

import (
	"context"
	"strings"
	"time"

	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/domain/repositories"
	"github.com/zatekoja/goparaty/internal/infrastructure/observability"
	"github.com/zatekoja/goparaty/pkg/calendar"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
	"github.com/zatekoja/goparaty/pkg/textnorm"
)

const defaultEventButtonText = "Quero Ir"

// defaultCategories is served until editors create their own list.
var defaultCategories = []string{"Gastronomia", "História", "Aventura", "Hospedagem", "Comércio"}

// ContentService serves the editor-managed parts of the home page
type ContentService struct {
	events     repositories.EventRepository
	settings   repositories.SiteSettingsRepository
	categories repositories.CategoryRepository
	now        func() time.Time
}

// NewContentService creates a new content service
func NewContentService(
	events repositories.EventRepository,
	settings repositories.SiteSettingsRepository,
	categories repositories.CategoryRepository,
	now func() time.Time,
) *ContentService {
	if now == nil {
		now = time.Now
	}
	return &ContentService{
		events:     events,
		settings:   settings,
		categories: categories,
		now:        now,
	}
}

// FeaturedEvent returns the active event with its add-to-calendar link.
// Without an active event the error is NotFound.
func (s *ContentService) FeaturedEvent(ctx context.Context) (*entities.FeaturedEventResult, error) {
	event, err := s.events.GetFeatured(ctx)
	if err != nil {
		return nil, err
	}

	if event.ButtonText == "" {
		event.ButtonText = defaultEventButtonText
	}

	return &entities.FeaturedEventResult{
		FeaturedEvent: event,
		CalendarURL: calendar.GoogleCalendarURL(calendar.Event{
			Title:       event.Title,
			Description: event.Description,
			Location:    event.Location,
			Start:       event.StartsAt,
			End:         event.EndsAt,
		}, s.now()),
	}, nil
}

// SiteSettings returns the latest settings. A site that was never
// configured gets empty settings rather than an error.
func (s *ContentService) SiteSettings(ctx context.Context) (*entities.SiteSettings, error) {
	settings, err := s.settings.GetLatest(ctx)
	if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
		return &entities.SiteSettings{}, nil
	}
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// Categories lists the listing categories, filling in missing slugs.
func (s *ContentService) Categories(ctx context.Context) ([]*entities.CategoryItem, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(categories) == 0 {
		observability.LoggerFromContext(ctx).Debug().Msg("no categories stored, serving defaults")
		categories = make([]*entities.CategoryItem, 0, len(defaultCategories))
		for _, name := range defaultCategories {
			categories = append(categories, &entities.CategoryItem{ID: Slugify(name), Name: name})
		}
	}

	for _, c := range categories {
		if c.Slug == "" {
			c.Slug = Slugify(c.Name)
		}
	}
	return categories, nil
}

// Slugify folds a category name into a URL-safe slug: "Vida Noturna" →
// "vida-noturna", "Comércio" → "comercio".
func Slugify(name string) string {
	folded := textnorm.Fold(name)

	var b strings.Builder
	dash := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
