// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package services adapts Marquee components to suture.Service.

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancel
  - LiveHubService: the live session hub's RunWithContext
  - CacheJanitorService: periodic eviction of expired estimate cache entries

Return values drive the supervisor:

	nil         -> stopped cleanly, not restarted
	error       -> crashed, restarted with backoff
	ctx.Err()   -> shutdown requested

Each service names itself through String for suture's event log.

The wrapped components are reached through small interfaces (HTTPServer,
ContextHub, CacheCleaner) so tests can substitute doubles.
*/
package services
