package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/zatekoja/goparaty/pkg/errors"
)

var eventColumns = []string{
	"id", "title", "description", "image_url", "button_text", "button_link",
	"schedule", "location", "is_active", "starts_at", "ends_at", "created_at",
}

func TestContentAdapter_GetFeatured(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewContentAdapter(client, nil)

	created := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	starts := time.Date(2026, time.August, 20, 22, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(eventColumns).
		AddRow("e1", "FLIP 2026", "Festa Literária", "https://img/flip.jpg", nil, "https://flip.org.br",
			"20 a 24 de agosto", nil, true, starts, nil, created)

	mock.ExpectQuery(`SELECT .+ FROM "events" WHERE \("is_active" IS TRUE\) ORDER BY "created_at" DESC LIMIT \$1`).
		WillReturnRows(rows)

	event, err := adapter.GetFeatured(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "FLIP 2026", event.Title)
	assert.Empty(t, event.ButtonText)
	assert.Empty(t, event.Location)
	require.NotNil(t, event.StartsAt)
	assert.Equal(t, starts, *event.StartsAt)
	assert.Nil(t, event.EndsAt)
	assert.True(t, event.IsActive)
}

func TestContentAdapter_GetFeatured_NoneActive(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewContentAdapter(client, nil)

	mock.ExpectQuery(`FROM "events"`).WillReturnRows(sqlmock.NewRows(eventColumns))

	_, err := adapter.GetFeatured(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
}

func TestContentAdapter_GetLatestSettings(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewContentAdapter(client, nil)

	updated := time.Date(2026, time.September, 3, 18, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT "id", "hero_background_url", "updated_at" FROM "site_settings" ORDER BY "updated_at" DESC LIMIT \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hero_background_url", "updated_at"}).
			AddRow("s1", "https://img/hero.jpg", updated))

	settings, err := adapter.GetLatest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://img/hero.jpg", settings.HeroBackgroundURL)
	assert.Equal(t, updated, settings.UpdatedAt)
}

func TestContentAdapter_GetLatestSettings_Error(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewContentAdapter(client, nil)

	mock.ExpectQuery(`FROM "site_settings"`).WillReturnError(errors.New("connection reset"))

	_, err := adapter.GetLatest(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeInternal))
}

func TestContentAdapter_ListCategories(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := NewContentAdapter(client, nil)

	created := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT "id", "name", "slug", "created_at" FROM "categories" ORDER BY "name" ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "created_at"}).
			AddRow("c1", "Aventura", "aventura", created).
			AddRow("c2", "História", nil, created))

	categories, err := adapter.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "aventura", categories[0].Slug)
	assert.Empty(t, categories[1].Slug)
}
