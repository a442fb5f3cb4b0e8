// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/api"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/estimator"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
	"github.com/tomtom215/marquee/internal/middleware"
	"github.com/tomtom215/marquee/internal/supervisor"
	"github.com/tomtom215/marquee/internal/supervisor/services"
	ws "github.com/tomtom215/marquee/internal/websocket"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	perfWindow        = 1000
	slowRequest       = 500 * time.Millisecond
	serverIdleTimeout = 60 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Msg("Starting Marquee with supervisor tree")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Strs("cors_origins", cfg.Security.CORSOrigins).Msg("CORS allows any origin")
	}

	cat, err := loadCatalog(cfg.Catalog.Dir, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}

	engine, err := estimator.NewEngine(cat, estimatorConfig(cfg), logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create estimator engine")
	}

	var hub *ws.Hub
	if cfg.Live.Enabled {
		hub = ws.NewHub(engine, liveSessionConfig(cfg), logging.Logger())
	} else {
		logging.Info().Msg("Live sessions disabled (LIVE_ENABLED=false)")
	}

	perfMon := middleware.NewPerformanceMonitor(perfWindow, slowRequest)
	handler := api.NewHandler(engine, hub, cfg, perfMon, version)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		IdleTimeout:       serverIdleTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logging.Logger()), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Estimator.CacheEnabled {
		tree.AddEngineService(services.NewCacheJanitorService(engine, cfg.Estimator.CacheCleanupInterval, logging.Logger()))
	}
	if hub != nil {
		tree.AddLiveService(services.NewLiveHubService(hub))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logging.Logger()))

	metrics.RecordAppInfo(version)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// loadCatalog reads the catalog from dir, or the embedded copy when dir is empty.
// Integrity violations are logged and published but do not stop the server.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func loadCatalog(dir string, logger zerolog.Logger) (*catalog.Catalog, error) {
	var (
		cat        *catalog.Catalog
		violations []catalog.Violation
		err        error
	)
	source := dir
	if dir == "" {
		source = "embedded"
		cat, violations, err = catalog.Default()
	} else {
		cat, violations, err = catalog.LoadDir(dir)
	}
	if err != nil {
		return nil, err
	}

	for _, v := range violations {
		logger.Warn().
			Str("kind", string(v.Kind)).
			Str("subject", v.Subject).
			Str("detail", v.Detail).
			Msg("Catalog integrity violation")
	}

	stats := cat.Stats()
	metrics.RecordCatalog(map[string]int{
		"genres":       stats.Genres,
		"themes":       stats.Themes,
		"ratings":      stats.Ratings,
		"seasons":      stats.Seasons,
		"budget_tiers": stats.BudgetTiers,
		"feature_sets": stats.FeatureSets,
		"features":     stats.Features,
	}, len(violations))

	logger.Info().
		Str("source", source).
		Int("genres", stats.Genres).
		Int("features", stats.Features).
		Int("violations", len(violations)).
		Msg("Catalog loaded")
	return cat, nil
}

func estimatorConfig(cfg *config.Config) *estimator.Config {
	return &estimator.Config{
		DebounceWindow: cfg.Estimator.DebounceWindow,
		Cache: estimator.CacheConfig{
			Enabled:    cfg.Estimator.CacheEnabled,
			TTL:        cfg.Estimator.CacheTTL,
			MaxEntries: cfg.Estimator.CacheMaxEntries,
		},
	}
}

func liveSessionConfig(cfg *config.Config) ws.SessionConfig {
	return ws.SessionConfig{
		MaxSessions:    cfg.Live.MaxSessions,
		MessageRate:    cfg.Live.MessageRate,
		MessageBurst:   cfg.Live.MessageBurst,
		MaxMessageSize: cfg.Live.MaxMessageSize,
		PingInterval:   cfg.Live.PingInterval,
		PongTimeout:    cfg.Live.PongTimeout,
		WriteTimeout:   cfg.Live.WriteTimeout,
	}
}
