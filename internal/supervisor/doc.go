// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor runs the long-lived parts of the Marquee server under a
suture v4 supervisor tree.

# Overview

	RootSupervisor ("marquee")
	├── EngineSupervisor ("engine-layer")
	│   └── CacheJanitorService
	├── LiveSupervisor ("live-layer")
	│   └── LiveHubService (if LIVE_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Each layer restarts independently. A crashing hub stops live sessions for the
restart window while REST requests keep being served; the live endpoint
answers 503 until the hub is accepting again.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}

	tree.AddEngineService(services.NewCacheJanitorService(engine, cfg.Estimator.CacheCleanupInterval, logger))
	tree.AddLiveService(services.NewLiveHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

# Configuration

Zero TreeConfig fields take suture's defaults:
  - FailureThreshold: 5 failures
  - FailureDecay: 30 seconds
  - FailureBackoff: 15 seconds
  - ShutdownTimeout: 10 seconds

# Logging

Supervisor events (service panics, restarts, backoff) are emitted through
sutureslog to the slog logger passed to NewSupervisorTree. The server bridges
that logger onto zerolog with logging.NewSlogLogger.

# Shutdown

Canceling the context passed to Serve stops every layer. Services that miss
the shutdown timeout are listed by UnstoppedServiceReport.
*/
package supervisor
