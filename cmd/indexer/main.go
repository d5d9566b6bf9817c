package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/goparaty/internal/adapters/database"
	"github.com/zatekoja/goparaty/internal/adapters/search"
	"github.com/zatekoja/goparaty/internal/domain/repositories"
	"github.com/zatekoja/goparaty/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/goparaty/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/goparaty/internal/infrastructure/observability"
	"github.com/zatekoja/goparaty/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	observability.InitLogger("goparaty-indexer", cfg.App.Env, cfg.App.LogLevel)
	logger := observability.GetLogger()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil || interval <= 0 {
			logger.Fatal().Str("interval", intervalValue).Msg("interval must be a positive duration")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize Typesense client")
	}

	businessRepo := database.NewBusinessAdapter(pgClient, nil)
	index := search.NewTypesenseAdapter(tsClient)

	for {
		if reset || os.Getenv("RESET_TYPESENSE") == "true" {
			logger.Warn().Str("collection", typesense.BusinessesCollection).Msg("deleting collection before reindex")
			if _, err := tsClient.Client().Collection(typesense.BusinessesCollection).Delete(ctx); err != nil {
				logger.Warn().Err(err).Msg("failed to delete collection")
			}
		}

		if err := indexOnce(ctx, businessRepo, index); err != nil {
			logger.Error().Err(err).Msg("reindex failed")
		}

		if interval <= 0 {
			return
		}

		reset = false
		logger.Info().Dur("next_run_in", interval).Msg("reindex complete")

		select {
		case <-ctx.Done():
			logger.Info().Msg("reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

// indexOnce upserts every published business and removes the rest from the index.
func indexOnce(ctx context.Context, repo repositories.BusinessRepository, index repositories.BusinessSearchRepository) error {
	logger := observability.LoggerFromContext(ctx)

	if err := index.EnsureSchema(ctx); err != nil {
		return err
	}

	businesses, err := repo.List(ctx)
	if err != nil {
		return err
	}

	var indexed, removed, failed int
	for _, b := range businesses {
		if b == nil {
			continue
		}

		if !b.IsPublished() || !b.Location.HasCoordinates() {
			if err := index.Delete(ctx, b.ID); err == nil {
				removed++
			}
			continue
		}

		if err := index.Index(ctx, b); err != nil {
			failed++
			logger.Warn().Err(err).Str("business_id", b.ID).Msg("failed to index business")
			continue
		}
		indexed++
		logger.Debug().Str("business_id", b.ID).Str("name", b.Name).Msg("indexed")
	}

	logger.Info().
		Int("total", len(businesses)).
		Int("indexed", indexed).
		Int("removed", removed).
		Int("failed", failed).
		Msg("indexing complete")
	return nil
}
