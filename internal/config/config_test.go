package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NASA_API_KEY", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := Load()
	assert.Error(t, err, "missing API key is surfaced as a warning")

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, "DEMO_KEY", cfg.NasaAPIKey)
	assert.Equal(t, "https://api.nasa.gov/neo/rest/v1", cfg.NasaBaseURL)
	assert.Equal(t, 900*time.Second, cfg.CacheTTL)
	assert.Equal(t, 15*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "*", cfg.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("NASA_API_KEY", "real-key")
	t.Setenv("NASA_API_BASE_URL", "http://localhost:9999/neo/rest/v1")
	t.Setenv("CACHE_TTL_SECONDS", "60")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "5")
	t.Setenv("ALLOWED_ORIGINS", "https://dashboard.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "real-key", cfg.NasaAPIKey)
	assert.Equal(t, "http://localhost:9999/neo/rest/v1", cfg.NasaBaseURL)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, "https://dashboard.example.com", cfg.AllowedOrigins)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("NASA_API_KEY", "real-key")
	t.Setenv("CACHE_TTL_SECONDS", "fifteen minutes")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 900*time.Second, cfg.CacheTTL, "malformed values fall back to the default")
}
