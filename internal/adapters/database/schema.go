package database

import (
	"context"
	"fmt"

	"github.com/zatekoja/goparaty/internal/infrastructure/clients/postgres"
)

var schemaStatements = []struct {
	name string
	sql  string
}{
	{"businesses", `
		CREATE TABLE IF NOT EXISTS businesses (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			long_description TEXT,
			rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			review_count INTEGER NOT NULL DEFAULT 0,
			price_level INTEGER NOT NULL DEFAULT 1,
			image_url TEXT,
			gallery TEXT[],
			amenities TEXT[],
			location JSONB NOT NULL,
			opening_hours JSONB NOT NULL DEFAULT '{}',
			is_featured BOOLEAN NOT NULL DEFAULT FALSE,
			status TEXT NOT NULL DEFAULT 'published'
		)`},
	{"totems", `
		CREATE TABLE IF NOT EXISTS totems (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT,
			lat DOUBLE PRECISION,
			lng DOUBLE PRECISION,
			status TEXT NOT NULL DEFAULT 'online',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`},
	{"reviews", `
		CREATE TABLE IF NOT EXISTS reviews (
			id TEXT PRIMARY KEY,
			business_id TEXT NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
			user_name TEXT NOT NULL,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`},
	{"reviews index", `CREATE INDEX IF NOT EXISTS idx_reviews_business_created ON reviews (business_id, created_at DESC)`},
	{"leads", `
		CREATE TABLE IF NOT EXISTS leads (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			business_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL,
			message TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`},
	{"events", `
		CREATE TABLE IF NOT EXISTS events (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT,
			image_url TEXT,
			button_text TEXT,
			button_link TEXT,
			schedule TEXT,
			location TEXT,
			is_active BOOLEAN NOT NULL DEFAULT FALSE,
			starts_at TIMESTAMPTZ,
			ends_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`},
	{"site_settings", `
		CREATE TABLE IF NOT EXISTS site_settings (
			id TEXT PRIMARY KEY,
			hero_background_url TEXT,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`},
	{"categories", `
		CREATE TABLE IF NOT EXISTS categories (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			slug TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`},
}

// EnsureSchema creates the directory tables when they do not exist yet.
func EnsureSchema(ctx context.Context, client *postgres.Client) error {
	for _, stmt := range schemaStatements {
		if _, err := client.DB().ExecContext(ctx, stmt.sql); err != nil {
			return fmt.Errorf("failed to create %s: %w", stmt.name, err)
		}
	}
	return nil
}
