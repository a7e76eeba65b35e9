package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/resqalert")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 150*time.Millisecond, cfg.GeocodeDelay)
	assert.Equal(t, 4, cfg.GeocodeConcurrency)
	assert.Equal(t, "@every 30s", cfg.NewReportScanSpec)
	assert.Empty(t, cfg.APIKeys)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/resqalert")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("API_KEYS", " key-1 , key-2")
	t.Setenv("GEOCODE_DELAY", "1s")
	t.Setenv("GEOCODE_CONCURRENCY", "0")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, []string{"key-1", "key-2"}, cfg.APIKeys)
	assert.Equal(t, time.Second, cfg.GeocodeDelay)
	assert.Equal(t, 1, cfg.GeocodeConcurrency)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/resqalert")
	t.Setenv("JWT_SECRET", "")

	_, err = LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}
