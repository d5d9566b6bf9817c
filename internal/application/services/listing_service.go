package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/infrastructure/observability"
	"github.com/zatekoja/goparaty/internal/query"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
	"github.com/zatekoja/goparaty/pkg/geo"
	"github.com/zatekoja/goparaty/pkg/hours"
	"go.opentelemetry.io/otel/attribute"
)

// ListingQuery is one visitor listing request
type ListingQuery struct {
	Filter       entities.FilterState
	UserLocation *entities.UserLocation
}

// ListingResponse is the ranked, decorated result of a listing query.
// EvaluatedAt is kept at minute precision, the resolution of opening hours,
// so identical queries within a minute produce identical bodies.
type ListingResponse struct {
	Results     []*entities.ListingResult `json:"results"`
	Total       int                       `json:"total"`
	EvaluatedAt time.Time                 `json:"evaluated_at"`
}

// TotemResponse lists totems by distance from the visitor
type TotemResponse struct {
	Totems []*entities.TotemResult `json:"totems"`
	Total  int                     `json:"total"`
}

// ListingService answers listing, detail and totem finder queries from the catalog snapshot
type ListingService struct {
	catalog SnapshotSource
	engine  *query.Engine
	metrics *observability.Metrics
}

// NewListingService creates a listing service. clock should return the
// current time in the directory's time zone; opening hours are wall-clock.
func NewListingService(catalog SnapshotSource, clock func() time.Time, metrics *observability.Metrics) *ListingService {
	return &ListingService{
		catalog: catalog,
		engine:  query.NewEngine(clock),
		metrics: metrics,
	}
}

// Query runs the listing engine over the current snapshot
func (s *ListingService) Query(ctx context.Context, q ListingQuery) (*ListingResponse, error) {
	ctx, span := observability.StartSpan(ctx, "ListingService.Query")
	defer span.End()

	if err := validateLocation(q.UserLocation); err != nil {
		return nil, err
	}

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, apperrors.NewInternalError("failed to load catalog", err)
	}

	now := s.engine.Now()
	result := s.engine.RunAt(snapshot.Businesses, q.Filter, q.UserLocation, now)

	results := make([]*entities.ListingResult, 0, len(result.Businesses))
	for _, b := range result.Businesses {
		results = append(results, s.decorate(ctx, b, q.UserLocation, now))
	}

	observability.SetSpanAttributes(span,
		attribute.String("listing.view", q.Filter.ViewScope.String()),
		attribute.String("listing.category", q.Filter.SelectedCategory),
		attribute.Bool("listing.open_only", q.Filter.ShowOpenOnly),
		attribute.Bool("listing.has_location", q.UserLocation != nil),
		attribute.Int("listing.total", result.Total),
	)
	observability.RecordListingResult(ctx, s.metrics, q.Filter.ViewScope.String(), result.Total)

	return &ListingResponse{
		Results:     results,
		Total:       result.Total,
		EvaluatedAt: now.Truncate(time.Minute),
	}, nil
}

// Get returns one published business decorated for display
func (s *ListingService) Get(ctx context.Context, id string, user *entities.UserLocation) (*entities.ListingResult, error) {
	if err := validateLocation(user); err != nil {
		return nil, err
	}

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load catalog", err)
	}

	for _, b := range snapshot.Businesses {
		if b.ID == id {
			return s.decorate(ctx, b, user, s.engine.Now()), nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("business with id %s not found", id))
}

// NearestTotems lists totems ordered by distance, flagging the closest one
func (s *ListingService) NearestTotems(ctx context.Context, user *entities.UserLocation) (*TotemResponse, error) {
	if err := validateLocation(user); err != nil {
		return nil, err
	}

	snapshot, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load catalog", err)
	}

	ordered := s.engine.NearestTotems(snapshot.Totems, user)
	results := make([]*entities.TotemResult, 0, len(ordered))
	for i, t := range ordered {
		r := &entities.TotemResult{
			Totem:         t,
			DirectionsURL: geo.DirectionsURL(t.Location.Latitude, t.Location.Longitude),
		}
		if user != nil {
			d := geo.DistanceKm(user.Latitude, user.Longitude, t.Location.Latitude, t.Location.Longitude)
			r.DistanceKm = &d
			r.DistanceLabel = geo.FormatDistance(d)
			r.IsNearest = i == 0
		}
		results = append(results, r)
	}

	return &TotemResponse{Totems: results, Total: len(results)}, nil
}

func (s *ListingService) decorate(ctx context.Context, b *entities.Business, user *entities.UserLocation, now time.Time) *entities.ListingResult {
	open, err := hours.Evaluate(b.OpeningHours, now)
	if err != nil {
		observability.LoggerFromContext(ctx).Debug().
			Err(err).
			Str("business_id", b.ID).
			Msg("unparseable opening hours")
	}

	r := &entities.ListingResult{
		Business:   b,
		IsOpen:     open,
		PriceLabel: geo.FormatPriceLevel(b.PriceLevel),
	}
	if b.Location.HasCoordinates() {
		r.PlusCode = geo.PlusCode(b.Location.Latitude, b.Location.Longitude)
		r.DirectionsURL = geo.DirectionsURL(b.Location.Latitude, b.Location.Longitude)
	}
	if user != nil {
		d := geo.DistanceKm(user.Latitude, user.Longitude, b.Location.Latitude, b.Location.Longitude)
		r.DistanceKm = &d
		r.DistanceLabel = geo.FormatDistance(d)
	}
	return r
}

func validateLocation(user *entities.UserLocation) error {
	if user == nil {
		return nil
	}
	if user.Latitude < -90 || user.Latitude > 90 {
		return apperrors.NewValidationError("latitude must be between -90 and 90")
	}
	if user.Longitude < -180 || user.Longitude > 180 {
		return apperrors.NewValidationError("longitude must be between -180 and 180")
	}
	return nil
}
