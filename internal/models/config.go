package models

import "time"

// Config represents the application configuration
type Config struct {
	ListenAddr      string        `yaml:"listen_addr"`
	APIKeys         []string      `yaml:"api_keys"`
	LogLevel        string        `yaml:"log_level"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// Session cache
	CacheDBPath      string        `yaml:"cache_db_path"`
	CacheSecret      string        `yaml:"cache_secret"`
	SessionTTL       time.Duration `yaml:"session_ttl"`
	MemorySessionTTL time.Duration `yaml:"memory_session_ttl"`

	// Authenticator
	BrowserHeadless bool          `yaml:"browser_headless"`
	LoginTimeout    time.Duration `yaml:"login_timeout"`

	// Transport
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	TransportAttempts int           `yaml:"transport_attempts"`

	// Pipeline
	FetchConcurrency int64       `yaml:"fetch_concurrency"`
	ListingRetry     RetryConfig `yaml:"listing_retry"`
	ProfileRetry     RetryConfig `yaml:"profile_retry"`
}

// RetryConfig bounds one outer retry layer: total attempts and the fixed
// wait between them.
type RetryConfig struct {
	Attempts int           `yaml:"attempts"`
	Wait     time.Duration `yaml:"wait"`
}
