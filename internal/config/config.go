package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env             string
	ListenAddr      string
	NasaAPIKey      string
	NasaBaseURL     string
	CacheTTL        time.Duration
	UpstreamTimeout time.Duration
	AllowedOrigins  string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		if _, err := fmt.Sscanf(v, "%d", &out); err == nil {
			return out
		}
	}
	return def
}

// Load reads configuration from the environment, consulting an optional .env
// file first. A missing API key is not fatal here; NeoWs accepts DEMO_KEY
// with tight rate limits, so callers get a warning-style error value and can
// decide.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:             getenv("APP_ENV", "development"),
		ListenAddr:      getenv("LISTEN_ADDR", ":3000"),
		NasaAPIKey:      getenv("NASA_API_KEY", "DEMO_KEY"),
		NasaBaseURL:     getenv("NASA_API_BASE_URL", "https://api.nasa.gov/neo/rest/v1"),
		CacheTTL:        time.Duration(getenvInt("CACHE_TTL_SECONDS", 900)) * time.Second,
		UpstreamTimeout: time.Duration(getenvInt("UPSTREAM_TIMEOUT_SECONDS", 15)) * time.Second,
		AllowedOrigins:  getenv("ALLOWED_ORIGINS", "*"),
	}
	if os.Getenv("NASA_API_KEY") == "" {
		return cfg, fmt.Errorf("NASA_API_KEY not set, falling back to DEMO_KEY")
	}
	return cfg, nil
}
