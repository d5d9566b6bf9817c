package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/goparaty/internal/adapters/cache"
	"github.com/zatekoja/goparaty/internal/adapters/database"
	"github.com/zatekoja/goparaty/internal/api/handlers"
	"github.com/zatekoja/goparaty/internal/api/routes"
	"github.com/zatekoja/goparaty/internal/application/services"
	"github.com/zatekoja/goparaty/internal/domain/providers"
	"github.com/zatekoja/goparaty/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/goparaty/internal/infrastructure/clients/redis"
	"github.com/zatekoja/goparaty/internal/infrastructure/notifications"
	"github.com/zatekoja/goparaty/internal/infrastructure/observability"
	"github.com/zatekoja/goparaty/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.App.Env, cfg.App.LogLevel)
	logger := observability.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// The directory keeps serving without Redis; snapshots are then read
	// from Postgres on every request and lead limits are tracked in process.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, running without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	businessAdapter := database.NewBusinessAdapter(pgClient, metrics)
	totemAdapter := database.NewTotemAdapter(pgClient, metrics)
	leadAdapter := database.NewLeadAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)
	contentAdapter := database.NewContentAdapter(pgClient, metrics)

	location := cfg.App.Location()
	clock := func() time.Time { return time.Now().In(location) }

	catalogService := services.NewCatalogService(businessAdapter, totemAdapter, cacheProvider, cfg.Catalog.CacheTTL, metrics)
	listingService := services.NewListingService(catalogService, clock, metrics)
	var leadNotifier providers.LeadNotifier
	if cfg.WhatsApp.Enabled() {
		sender, err := notifications.NewWhatsAppCloudSender(&cfg.WhatsApp)
		if err != nil {
			logger.Warn().Err(err).Msg("lead alerts disabled")
		} else {
			leadNotifier = sender
		}
	}

	leadService := services.NewLeadService(leadAdapter, leadNotifier)
	reviewService := services.NewReviewService(reviewAdapter, businessAdapter)
	contentService := services.NewContentService(contentAdapter, contentAdapter, contentAdapter, clock)

	warmingService := services.NewCacheWarmingService(catalogService)
	go warmingService.StartPeriodicWarming(ctx, cfg.Catalog.RefreshInterval)

	router := routes.NewRouter(
		handlers.NewListingHandler(listingService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewLeadHandler(leadService, cacheProvider, metrics),
		handlers.NewCatalogHandler(catalogService),
		handlers.NewContentHandler(contentService),
		cfg.CORS.AllowedOrigins,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Str("timezone", location.String()).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server stopped")
}
