// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee server.

Marquee estimates how well a film concept will land: it scores genre and theme
affinity against an audience rating, plans production and post-production
effort, and recommends feature sets within a budget tier. Results are served
over a REST API and pushed to live WebSocket sessions as the selection changes.

# Application Architecture

	RootSupervisor ("marquee")
	├── EngineSupervisor ("engine-layer")
	│   └── Cache janitor (if ESTIMATE_CACHE_ENABLED)
	├── LiveSupervisor ("live-layer")
	│   └── Live session hub (if LIVE_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTP server

Initialization order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Catalog: embedded or CATALOG_DIR; integrity violations are logged
 4. Estimator engine: debounce window and result cache
 5. Live hub
 6. HTTP router: chi with CORS, rate limiting and Prometheus metrics
 7. Supervisor tree: suture v4

# Configuration

	HTTP_PORT=8437
	HTTP_HOST=0.0.0.0
	ENVIRONMENT=development         # development or production
	CATALOG_DIR=                    # empty uses the embedded catalog
	DEBOUNCE_WINDOW=300ms
	ESTIMATE_CACHE_ENABLED=true
	ESTIMATE_CACHE_TTL=10m
	LIVE_ENABLED=true
	LIVE_MAX_SESSIONS=256
	RATE_LIMIT_REQUESTS=100
	RATE_LIMIT_WINDOW=1m
	CORS_ORIGINS=https://studio.example.com
	TRUSTED_PROXIES=10.0.0.0/8
	LOG_LEVEL=info
	LOG_FORMAT=json

A YAML file named by CONFIG_PATH, or config.yaml in the working directory, is
read before the environment.

# Signals

SIGINT and SIGTERM cancel the supervisor tree. The HTTP server drains for up
to SHUTDOWN_TIMEOUT and open live sessions receive a close frame.

# Build

	go build -ldflags "-X main.version=$(git describe --tags)" ./cmd/server
*/
package main
