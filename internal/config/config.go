package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// DefaultListingURL is the month filter of the official gazette's
// cassation section.
const DefaultListingURL = "https://diariooficial.elperuano.pe/Casaciones/Filtro?Length=0"

type Config struct {
	Port string

	// Bulletin storage
	DataDir string

	// Gazette download
	ListingURL    string
	FetchTimeout  time.Duration
	MaxFetchBytes int64

	// Pathstore record sink; disabled when PathstoreURL is empty.
	PathstoreURL    string
	PathstoreAPIKey string

	// Auth
	CasgestAPIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Extraction
	BodyStartLine float64

	// Job state
	JobTTL time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		DataDir: envOr("DATA_DIR", "./data"),

		ListingURL:    envOr("LISTING_URL", DefaultListingURL),
		FetchTimeout:  envDuration("FETCH_TIMEOUT", 2*time.Minute),
		MaxFetchBytes: envInt64("MAX_FETCH_BYTES", 104857600), // 100MB

		PathstoreURL:    os.Getenv("PATHSTORE_URL"),
		PathstoreAPIKey: os.Getenv("PATHSTORE_API_KEY"),

		CasgestAPIKey: os.Getenv("CASGEST_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		BodyStartLine: envFloat("BODY_START_LINE", 710),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),
	}

	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 2 * time.Minute
	}
	if cfg.MaxFetchBytes <= 0 {
		cfg.MaxFetchBytes = 104857600
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.BodyStartLine <= 0 {
		cfg.BodyStartLine = 710
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

// Validate checks the settings the HTTP server needs.
func (c Config) Validate() error {
	if c.CasgestAPIKey == "" {
		return fmt.Errorf("CASGEST_API_KEY is required")
	}
	if c.PathstoreURL != "" && c.PathstoreAPIKey == "" {
		return fmt.Errorf("PATHSTORE_API_KEY is required when PATHSTORE_URL is set")
	}
	if _, err := url.ParseRequestURI(c.ListingURL); err != nil {
		return fmt.Errorf("invalid LISTING_URL: %w", err)
	}
	return nil
}

// PathstoreEnabled reports whether extracted records are published.
func (c Config) PathstoreEnabled() bool {
	return c.PathstoreURL != ""
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
