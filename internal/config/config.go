package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"linkedin-scraper/internal/models"
)

// DefaultConfig returns the default configuration for the scraper
func DefaultConfig() models.Config {
	return models.Config{
		ListenAddr:      ":8080",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,

		CacheDBPath:      "sessions.db",
		SessionTTL:       24 * time.Hour,
		MemorySessionTTL: 15 * time.Minute,

		BrowserHeadless: true,
		LoginTimeout:    90 * time.Second,

		RequestTimeout:    15 * time.Second,
		TransportAttempts: 3,

		FetchConcurrency: 6,
		ListingRetry:     models.RetryConfig{Attempts: 5, Wait: 10 * time.Second},
		ProfileRetry:     models.RetryConfig{Attempts: 10, Wait: 10 * time.Second},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment overrides, in that order. A missing config file is not an
// error; a malformed one is.
func Load(path string) (models.Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *models.Config) {
	if v := os.Getenv("SCRAPER_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("SCRAPER_API_KEYS"); v != "" {
		cfg.APIKeys = cfg.APIKeys[:0]
		for _, k := range strings.Split(v, ",") {
			if k = strings.TrimSpace(k); k != "" {
				cfg.APIKeys = append(cfg.APIKeys, k)
			}
		}
	}
	if v := os.Getenv("SCRAPER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SCRAPER_CACHE_DB"); v != "" {
		cfg.CacheDBPath = v
	}
	if v := os.Getenv("SCRAPER_CACHE_SECRET"); v != "" {
		cfg.CacheSecret = v
	}
	if v := os.Getenv("SCRAPER_HEADLESS"); v != "" {
		cfg.BrowserHeadless = v != "0" && !strings.EqualFold(v, "false")
	}
	if v := os.Getenv("SCRAPER_FETCH_CONCURRENCY"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.FetchConcurrency = n
		}
	}
}

func validate(cfg *models.Config) error {
	if cfg.CacheSecret == "" {
		return fmt.Errorf("config: cache_secret is required (SCRAPER_CACHE_SECRET)")
	}
	if len(cfg.APIKeys) == 0 {
		return fmt.Errorf("config: at least one API key is required (SCRAPER_API_KEYS)")
	}
	if cfg.FetchConcurrency < 1 {
		return fmt.Errorf("config: fetch_concurrency must be >= 1")
	}
	if cfg.TransportAttempts < 1 {
		return fmt.Errorf("config: transport_attempts must be >= 1")
	}
	if cfg.ListingRetry.Attempts < 1 || cfg.ProfileRetry.Attempts < 1 {
		return fmt.Errorf("config: retry attempts must be >= 1")
	}
	return nil
}
