// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package config provides centralized configuration management for Marquee.

Configuration is layered with Koanf v2: built-in defaults, then an optional YAML
file, then environment variables. The file is located through CONFIG_PATH or the
first existing entry of DefaultConfigPaths. Only the environment variables listed
below are read; anything else in the environment is ignored.

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8437)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - SHUTDOWN_TIMEOUT: Graceful shutdown limit (default: 10s)
  - ENVIRONMENT: development, staging or production (default: development)

Catalog:
  - CATALOG_DIR: Directory with affinities.json, budgets.json, features.json
    (default: embedded catalog)

Estimator:
  - DEBOUNCE_WINDOW: Live affinity debounce (default: 300ms)
  - ESTIMATE_CACHE_ENABLED, ESTIMATE_CACHE_TTL, ESTIMATE_CACHE_MAX_ENTRIES,
    ESTIMATE_CACHE_CLEANUP_INTERVAL

Live sessions:
  - LIVE_ENABLED, LIVE_MAX_SESSIONS, LIVE_MESSAGE_RATE, LIVE_MESSAGE_BURST,
    LIVE_MAX_MESSAGE_SIZE, LIVE_PING_INTERVAL, LIVE_PONG_TIMEOUT, LIVE_WRITE_TIMEOUT

Security:
  - CORS_ORIGINS: Comma-separated origins (default: *)
  - TRUSTED_PROXIES: Comma-separated proxy addresses
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include file:line (default: false)

# Example YAML

	server:
	  port: 8437
	  environment: production
	estimator:
	  debounce_window: 250ms
	security:
	  cors_origins:
	    - https://marquee.example.com
*/
package config
