package services

import (
	"context"
	"time"

	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/infrastructure/observability"
)

// catalogRefresher is the part of CatalogService the warmer needs
type catalogRefresher interface {
	Refresh(ctx context.Context) (*entities.CatalogSnapshot, error)
}

// CacheWarmingService refreshes the catalog cache on an interval
type CacheWarmingService struct {
	catalog catalogRefresher
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(catalog catalogRefresher) *CacheWarmingService {
	return &CacheWarmingService{catalog: catalog}
}

// WarmCache reloads the catalog into the cache once
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	start := time.Now()

	snapshot, err := s.catalog.Refresh(ctx)
	if err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info().
		Int("businesses", len(snapshot.Businesses)).
		Int("totems", len(snapshot.Totems)).
		Dur("took", time.Since(start)).
		Msg("catalog cache warmed")
	return nil
}

// StartPeriodicWarming warms immediately and then on every interval until ctx is done
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	logger := observability.LoggerFromContext(ctx)

	if err := s.WarmCache(ctx); err != nil {
		logger.Error().Err(err).Msg("initial cache warming failed")
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("cache warming stopped")
			return
		case <-ticker.C:
			if err := s.WarmCache(ctx); err != nil {
				logger.Error().Err(err).Msg("periodic cache warming failed")
			}
		}
	}
}
