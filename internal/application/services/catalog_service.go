package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/domain/providers"
	"github.com/zatekoja/goparaty/internal/domain/repositories"
	"github.com/zatekoja/goparaty/internal/infrastructure/observability"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// CatalogSnapshotKey is the cache key of the serialized catalog
const CatalogSnapshotKey = "catalog:snapshot"

// catalogLoadTimeout bounds a shared load, which no longer follows any
// single caller's context.
const catalogLoadTimeout = 30 * time.Second

// SnapshotSource provides the catalog a listing query runs against
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*entities.CatalogSnapshot, error)
}

// CatalogService loads the visitor-facing catalog and keeps it cached
type CatalogService struct {
	businessRepo repositories.BusinessRepository
	totemRepo    repositories.TotemRepository
	cache        providers.CacheProvider
	ttl          time.Duration
	metrics      *observability.Metrics
	now          func() time.Time
	loads        singleflight.Group
}

// NewCatalogService creates a new catalog service. cache may be nil, in
// which case every snapshot is read from the repositories.
func NewCatalogService(
	businessRepo repositories.BusinessRepository,
	totemRepo repositories.TotemRepository,
	cache providers.CacheProvider,
	ttl time.Duration,
	metrics *observability.Metrics,
) *CatalogService {
	return &CatalogService{
		businessRepo: businessRepo,
		totemRepo:    totemRepo,
		cache:        cache,
		ttl:          ttl,
		metrics:      metrics,
		now:          time.Now,
	}
}

// Snapshot returns the cached catalog, loading it on a miss. Concurrent
// misses share a single load.
func (s *CatalogService) Snapshot(ctx context.Context) (*entities.CatalogSnapshot, error) {
	if snapshot, ok := s.cached(ctx); ok {
		return snapshot, nil
	}

	// The load is shared, so one caller going away must not cancel it for
	// the others. Each caller still stops waiting when its own ctx ends.
	ch := s.loads.DoChan(CatalogSnapshotKey, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), catalogLoadTimeout)
		defer cancel()
		return s.Refresh(loadCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entities.CatalogSnapshot), nil
	}
}

// Refresh loads the catalog from the repositories and replaces the cached copy.
func (s *CatalogService) Refresh(ctx context.Context) (*entities.CatalogSnapshot, error) {
	ctx, span := observability.StartSpan(ctx, "CatalogService.Refresh")
	defer span.End()

	snapshot, err := s.load(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	s.store(ctx, snapshot)
	return snapshot, nil
}

// Invalidate drops the cached catalog so the next Snapshot reloads it.
func (s *CatalogService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, CatalogSnapshotKey); err != nil {
		return fmt.Errorf("failed to invalidate catalog: %w", err)
	}
	observability.LoggerFromContext(ctx).Info().Msg("catalog cache invalidated")
	return nil
}

func (s *CatalogService) cached(ctx context.Context) (*entities.CatalogSnapshot, bool) {
	if s.cache == nil {
		return nil, false
	}
	logger := observability.LoggerFromContext(ctx)

	data, err := s.cache.Get(ctx, CatalogSnapshotKey)
	if err != nil {
		if !errors.Is(err, providers.ErrCacheMiss) {
			logger.Warn().Err(err).Msg("catalog cache read failed")
		}
		observability.RecordCacheMiss(ctx, s.metrics, CatalogSnapshotKey)
		return nil, false
	}

	var snapshot entities.CatalogSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		logger.Warn().Err(err).Msg("discarding undecodable catalog cache entry")
		observability.RecordCacheMiss(ctx, s.metrics, CatalogSnapshotKey)
		return nil, false
	}

	observability.RecordCacheHit(ctx, s.metrics, CatalogSnapshotKey)
	return &snapshot, true
}

func (s *CatalogService) load(ctx context.Context) (*entities.CatalogSnapshot, error) {
	var (
		businesses []*entities.Business
		totems     []*entities.Totem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		businesses, err = s.businessRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to load businesses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totems, err = s.totemRepo.List(gctx)
		if err != nil {
			return fmt.Errorf("failed to load totems: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &entities.CatalogSnapshot{
		Businesses: make([]*entities.Business, 0, len(businesses)),
		Totems:     make([]*entities.Totem, 0, len(totems)),
		LoadedAt:   s.now().UTC(),
	}
	for _, b := range businesses {
		if b != nil && b.IsPublished() {
			snapshot.Businesses = append(snapshot.Businesses, b)
		}
	}
	for _, t := range totems {
		if t != nil && t.Location.HasCoordinates() {
			snapshot.Totems = append(snapshot.Totems, t)
		}
	}

	observability.LoggerFromContext(ctx).Debug().
		Int("businesses", len(snapshot.Businesses)).
		Int("hidden", len(businesses)-len(snapshot.Businesses)).
		Int("totems", len(snapshot.Totems)).
		Msg("catalog loaded")

	return snapshot, nil
}

func (s *CatalogService) store(ctx context.Context, snapshot *entities.CatalogSnapshot) {
	if s.cache == nil {
		return
	}
	logger := observability.LoggerFromContext(ctx)

	data, err := json.Marshal(snapshot)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to encode catalog for cache")
		return
	}
	if err := s.cache.Set(ctx, CatalogSnapshotKey, data, s.ttl); err != nil {
		logger.Warn().Err(err).Msg("failed to cache catalog")
	}
}
