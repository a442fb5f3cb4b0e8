// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths are the YAML files tried, in order, when CONFIG_PATH is unset
// or points at a missing file.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/marquee/config.yaml",
	"/etc/marquee/config.yml",
}

// ConfigPathEnvVar names an explicit config file.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig is the bottom layer of LoadWithKoanf.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8437,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Catalog: CatalogConfig{
			Dir: "", // embedded catalog
		},
		Estimator: EstimatorConfig{
			DebounceWindow:       300 * time.Millisecond,
			CacheEnabled:         true,
			CacheTTL:             10 * time.Minute,
			CacheMaxEntries:      1024,
			CacheCleanupInterval: time.Minute,
		},
		Live: LiveConfig{
			Enabled:        true,
			MaxSessions:    256,
			MessageRate:    20,
			MessageBurst:   40,
			MaxMessageSize: 4096,
			PingInterval:   54 * time.Second,
			PongTimeout:    60 * time.Second,
			WriteTimeout:   10 * time.Second,
		},
		Security: SecurityConfig{
			RateLimitReqs:     100,
			RateLimitWindow:   1 * time.Minute,
			RateLimitDisabled: false,
			CORSOrigins:       []string{"*"},
			TrustedProxies:    []string{},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf layers defaults, an optional YAML file and the environment
// (highest priority), then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := splitListSettings(k); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func findConfigFile() string {
	candidates := DefaultConfigPaths
	if explicit := os.Getenv(ConfigPathEnvVar); explicit != "" {
		candidates = append([]string{explicit}, DefaultConfigPaths...)
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// listSettings arrive from the environment as comma separated strings.
var listSettings = []string{
	"security.cors_origins",
	"security.trusted_proxies",
}

// splitListSettings rewrites string values of listSettings into slices. An
// empty string clears the list.
func splitListSettings(k *koanf.Koanf) error {
	for _, path := range listSettings {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		if err := k.Set(path, splitList(raw)); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// envMappings maps lower-cased environment variable names to koanf paths.
// Variables not listed here are ignored.
var envMappings = map[string]string{
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	"catalog_dir": "catalog.dir",

	"debounce_window":                 "estimator.debounce_window",
	"estimate_cache_enabled":          "estimator.cache_enabled",
	"estimate_cache_ttl":              "estimator.cache_ttl",
	"estimate_cache_max_entries":      "estimator.cache_max_entries",
	"estimate_cache_cleanup_interval": "estimator.cache_cleanup_interval",

	"live_enabled":          "live.enabled",
	"live_max_sessions":     "live.max_sessions",
	"live_message_rate":     "live.message_rate",
	"live_message_burst":    "live.message_burst",
	"live_max_message_size": "live.max_message_size",
	"live_ping_interval":    "live.ping_interval",
	"live_pong_timeout":     "live.pong_timeout",
	"live_write_timeout":    "live.write_timeout",

	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"trusted_proxies":     "security.trusted_proxies",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps LIVE_MAX_SESSIONS to live.max_sessions. Unknown
// variables map to "" and are dropped by the env provider.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
