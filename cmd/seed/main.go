package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/goparaty/internal/adapters/cache"
	"github.com/zatekoja/goparaty/internal/adapters/database"
	"github.com/zatekoja/goparaty/internal/application/services"
	"github.com/zatekoja/goparaty/internal/domain/entities"
	"github.com/zatekoja/goparaty/internal/domain/repositories"
	"github.com/zatekoja/goparaty/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/goparaty/internal/infrastructure/clients/redis"
	"github.com/zatekoja/goparaty/internal/infrastructure/observability"
	"github.com/zatekoja/goparaty/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger("goparaty-seed", cfg.App.Env, cfg.App.LogLevel)
	logger := observability.GetLogger()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pgClient.Close()

	ctx := context.Background()

	if err := database.EnsureSchema(ctx, pgClient); err != nil {
		logger.Fatal().Err(err).Msg("failed to create schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		logger.Warn().Msg("RESET_DB=true detected, truncating catalog tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE reviews, businesses, totems CASCADE`)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to reset tables")
		}
	}

	writer := database.NewCatalogWriterAdapter(pgClient)
	if failed := seed(ctx, writer, sampleBusinesses(), sampleTotems()); failed > 0 {
		logger.Warn().Int("failed", failed).Msg("some rows were not seeded")
	}

	// Drop the cached snapshot so the API serves the new rows right away.
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Info().Msg("redis unavailable, skipping catalog cache invalidation")
		return
	}
	defer redisClient.Close()

	catalog := services.NewCatalogService(nil, nil, cache.NewRedisAdapter(redisClient), cfg.Catalog.CacheTTL, nil)
	if err := catalog.Invalidate(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}

// seed writes every row and returns how many failed.
func seed(ctx context.Context, writer repositories.CatalogWriter, businesses []*entities.Business, totems []*entities.Totem) int {
	logger := observability.LoggerFromContext(ctx)
	failed := 0

	for _, b := range businesses {
		if err := writer.UpsertBusiness(ctx, b); err != nil {
			failed++
			logger.Error().Err(err).Str("business", b.Name).Msg("failed to seed business")
			continue
		}
		logger.Info().Str("business", b.Name).Msg("seeded business")
	}

	for _, t := range totems {
		if err := writer.UpsertTotem(ctx, t); err != nil {
			failed++
			logger.Error().Err(err).Str("totem", t.Name).Msg("failed to seed totem")
			continue
		}
		logger.Info().Str("totem", t.Name).Msg("seeded totem")
	}

	return failed
}

func sampleBusinesses() []*entities.Business {
	return []*entities.Business{
		{
			ID:              "1",
			Name:            "Restaurante do Porto",
			Category:        "Gastronomia",
			Description:     "Culinária caiçara tradicional com frutos do mar frescos e vista para o cais.",
			LongDescription: "Num edifício colonial do século XVIII no Centro Histórico, cozinha costeira brasileira com ambiente rústico e confortável.",
			Rating:          4.8,
			ReviewCount:     120,
			PriceLevel:      3,
			Location:        entities.Location{Latitude: -23.2201, Longitude: -44.7135, Address: "Rua do Comércio, 12 - Centro Histórico"},
			Amenities:       []string{"Wi-Fi Grátis", "Ar Condicionado", "Mesas Externas", "Pet Friendly", "Música ao Vivo"},
			OpeningHours: map[string]string{
				"Seg - Qui": "12:00 - 22:00",
				"Sex - Sáb": "12:00 - 23:30",
				"Dom":       "12:00 - 22:00",
			},
			IsFeatured: true,
		},
		{
			ID:              "2",
			Name:            "Igreja Santa Rita",
			Category:        "História",
			Description:     "O cartão postal de Paraty, construída em 1722 por pardos libertos.",
			LongDescription: "Igreja barroco-rococó que abriga o Museu de Arte Sacra.",
			Rating:          4.9,
			ReviewCount:     450,
			PriceLevel:      1,
			Location:        entities.Location{Latitude: -23.2198, Longitude: -44.7118, Address: "Largo de Santa Rita - Centro Histórico"},
			IsFeatured:      true,
		},
		{
			ID:              "3",
			Name:            "Caminho do Ouro",
			Category:        "Aventura",
			Description:     "Trilha histórica pavimentada por escravos no século XVIII.",
			LongDescription: "Trilha preservada que ligava Paraty a Minas Gerais, atravessando a Mata Atlântica.",
			Rating:          4.7,
			ReviewCount:     85,
			PriceLevel:      2,
			Location:        entities.Location{Latitude: -23.2355, Longitude: -44.8021, Address: "Estrada Paraty-Cunha, km 10"},
		},
		{
			ID:           "4",
			Name:         "Pousada Literária",
			Category:     "Hospedagem",
			Description:  "Luxo e cultura no coração do Centro Histórico.",
			Rating:       4.9,
			ReviewCount:  320,
			PriceLevel:   4,
			Location:     entities.Location{Latitude: -23.2215, Longitude: -44.7145, Address: "Rua do Comércio, 362"},
			OpeningHours: map[string]string{"Seg - Dom": "24h"},
		},
		{
			ID:          "5",
			Name:        "Armazém Paraty",
			Category:    "Comércio",
			Description: "Artesanato local, cerâmicas e souvenirs feitos por artistas da região.",
			Rating:      4.6,
			ReviewCount: 64,
			PriceLevel:  2,
			Location:    entities.Location{Latitude: -23.2192, Longitude: -44.7138, Address: "Rua da Lapa, 15"},
			OpeningHours: map[string]string{
				"Seg - Sex": "09:00 - 18:00",
				"Sáb":       "09:00 - 14:00",
				"Dom":       "Fecha",
			},
		},
		{
			ID:          "6",
			Name:        "Forte Defensor Perpétuo",
			Category:    "História",
			Description: "Museu e antigo forte com vista panorâmica da baía.",
			Rating:      4.8,
			ReviewCount: 215,
			PriceLevel:  1,
			Location:    entities.Location{Latitude: -23.2136, Longitude: -44.7126, Address: "Morro da Vila Velha"},
		},
	}
}

func sampleTotems() []*entities.Totem {
	return []*entities.Totem{
		{ID: "t1", Name: "Totem Praça da Matriz", Status: entities.TotemStatusOnline,
			Location: entities.Location{Latitude: -23.2212, Longitude: -44.7128, Address: "Praça da Matriz, S/N - Centro"}},
		{ID: "t2", Name: "Totem Cais do Porto", Status: entities.TotemStatusOnline,
			Location: entities.Location{Latitude: -23.2205, Longitude: -44.7115, Address: "Rua Beira Rio, Próximo ao Cais"}},
		{ID: "t3", Name: "Totem Rodoviária", Status: entities.TotemStatusOnline,
			Location: entities.Location{Latitude: -23.2185, Longitude: -44.7192, Address: "Rua Jabaquara - Entrada Rodoviária"}},
		{ID: "t4", Name: "Totem Estacionamento Jabaquara", Status: entities.TotemStatusOffline,
			Location: entities.Location{Latitude: -23.2105, Longitude: -44.7155, Address: "Av. Jabaquara, Orla"}},
	}
}
