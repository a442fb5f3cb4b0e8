// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package middleware provides the HTTP middleware Marquee adds on top of chi's own.

Key Components:

  - RequestID: X-Request-ID propagation into the logging context
  - PrometheusMetrics: request count, latency and in-flight gauges labelled by route pattern
  - PerformanceMonitor: sliding-window latency percentiles for the health endpoint

All middleware uses the func(http.Handler) http.Handler shape so it can be passed to
chi's Use and With directly:

	r.Use(middleware.RequestID)
	r.Group(func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Use(perfMon.Middleware)
	    r.Post("/estimate", h.Estimate)
	})

Route labels come from chi's route context, so these middlewares report "unmatched"
when mounted outside a chi router.
*/
package middleware
