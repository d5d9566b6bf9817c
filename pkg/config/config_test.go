package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TYPESENSE_URL", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("CATALOG_CACHE_TTL", "")
	t.Setenv("APP_TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8108", cfg.Typesense.URL)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, "America/Sao_Paulo", cfg.App.TimeZone)
	assert.Equal(t, "America/Sao_Paulo", cfg.App.Location().String())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CATALOG_CACHE_TTL", "90s")
	t.Setenv("ALLOWED_ORIGINS", "https://goparaty.com.br, https://admin.goparaty.com.br ,")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.Catalog.CacheTTL)
	assert.Equal(t, []string{"https://goparaty.com.br", "https://admin.goparaty.com.br"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.OTEL.Enabled)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.RefreshInterval)
}

func TestLoad_InvalidTimeZone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Mars/Olympus_Mons")

	_, err := Load()
	assert.Error(t, err)
}

func TestDSNAndAddr(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "goparaty", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=goparaty sslmode=disable", db.DatabaseDSN())

	r := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", r.RedisAddr())
}

func TestLoad_WhatsApp(t *testing.T) {
	t.Setenv("WHATSAPP_ACCESS_TOKEN", "token")
	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "")
	t.Setenv("WHATSAPP_LEAD_RECIPIENT", "5524999999999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.WhatsApp.Enabled())
	assert.Equal(t, "https://graph.facebook.com/v18.0", cfg.WhatsApp.BaseURL)

	t.Setenv("WHATSAPP_PHONE_NUMBER_ID", "123")
	cfg, err = Load()
	require.NoError(t, err)
	assert.True(t, cfg.WhatsApp.Enabled())
}
