// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import "time"

// Config holds all application configuration loaded from defaults, an optional YAML
// file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Configuration Categories:
//
//  1. Server: HTTP listener, timeouts and environment mode
//  2. Catalog: Where the affinity, budget and feature files are read from
//  3. Estimator: Debounce window and result cache
//  4. Live: WebSocket session limits
//  5. Security: CORS and rate limiting
//  6. Logging: Level, format and caller information
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	server := http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)}
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Estimator EstimatorConfig `koanf:"estimator"`
	Live      LiveConfig      `koanf:"live"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production" (default: "development")
}

// CatalogConfig selects the catalog source.
type CatalogConfig struct {
	// Dir is a directory containing affinities.json, budgets.json and features.json.
	// Empty uses the catalog embedded in the binary.
	Dir string `koanf:"dir"`
}

// EstimatorConfig holds estimator engine settings.
//
// Environment Variables:
//   - DEBOUNCE_WINDOW: Quiet period before a live affinity recompute (default: 300ms)
//   - ESTIMATE_CACHE_ENABLED: Cache estimate results (default: true)
//   - ESTIMATE_CACHE_TTL: Cache entry lifetime (default: 10m)
//   - ESTIMATE_CACHE_MAX_ENTRIES: Cache capacity (default: 1024)
//   - ESTIMATE_CACHE_CLEANUP_INTERVAL: Expired entry sweep interval (default: 1m)
type EstimatorConfig struct {
	DebounceWindow       time.Duration `koanf:"debounce_window"`
	CacheEnabled         bool          `koanf:"cache_enabled"`
	CacheTTL             time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries      int           `koanf:"cache_max_entries"`
	CacheCleanupInterval time.Duration `koanf:"cache_cleanup_interval"`
}

// LiveConfig holds WebSocket live session settings.
type LiveConfig struct {
	Enabled bool `koanf:"enabled"`

	// MaxSessions caps concurrent live sessions. Connections beyond it are refused.
	MaxSessions int `koanf:"max_sessions"`

	// MessageRate and MessageBurst limit inbound messages per session.
	MessageRate  float64 `koanf:"message_rate"`
	MessageBurst int     `koanf:"message_burst"`

	MaxMessageSize int64         `koanf:"max_message_size"`
	PingInterval   time.Duration `koanf:"ping_interval"`
	PongTimeout    time.Duration `koanf:"pong_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads configuration from all sources. See LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
