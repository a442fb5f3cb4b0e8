// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Computation outcomes used as label values.
const (
	OutcomeOK           = "ok"
	OutcomeNotReady     = "not_ready"
	OutcomeUnknownGenre = "unknown_genre"
	OutcomeError        = "error"
)

var (
	// Estimator Metrics
	EstimatorComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimator_computations_total",
			Help: "Total number of estimator computations by kind and outcome",
		},
		[]string{"computation", "outcome"}, // computation: affinity, production, resources, estimate
	)

	EstimatorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "estimator_computation_duration_seconds",
			Help:    "Duration of estimator computations in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"computation"},
	)

	EstimatorRecommendations = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "estimator_recommended_resources",
			Help:    "Number of extra resources recommended per list",
			Buckets: []float64{0, 1, 2, 5, 10, 15, 20, 30},
		},
		[]string{"list"}, // production, post_production
	)

	EstimatorBackfilled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "estimator_backfilled_resources_total",
			Help: "Total number of resources added by the minimum-count backfill",
		},
		[]string{"list"},
	)

	// Debounce Metrics
	DebounceTasks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "debounce_tasks_total",
			Help: "Total number of debounced affinity tasks by outcome",
		},
		[]string{"outcome"}, // delivered, superseded, cancelled
	)

	// Catalog Metrics
	CatalogEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_entries",
			Help: "Number of entries in the loaded catalog by kind",
		},
		[]string{"kind"},
	)

	CatalogViolations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_integrity_violations",
			Help: "Number of integrity violations found when the catalog was loaded",
		},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of entries removed by the cache janitor",
		},
		[]string{"cache_type"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of live estimator sessions",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_received_total",
			Help: "Total number of WebSocket messages received",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	appStart = time.Now()

	AppUptime = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
		func() float64 { return time.Since(appStart).Seconds() },
	)
)

// RecordAppInfo publishes the build version.
func RecordAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// RecordComputation records one estimator computation.
func RecordComputation(computation, outcome string, duration time.Duration) {
	EstimatorComputations.WithLabelValues(computation, outcome).Inc()
	EstimatorDuration.WithLabelValues(computation).Observe(duration.Seconds())
}

// RecordRecommendations records the size of a recommendation list and how many of its
// entries came from backfill.
func RecordRecommendations(list string, total, backfilled int) {
	EstimatorRecommendations.WithLabelValues(list).Observe(float64(total))
	if backfilled > 0 {
		EstimatorBackfilled.WithLabelValues(list).Add(float64(backfilled))
	}
}

// RecordDebounceOutcome records how a debounced task ended.
func RecordDebounceOutcome(outcome string) {
	DebounceTasks.WithLabelValues(outcome).Inc()
}

// RecordCatalog publishes catalog sizes and the violation count.
func RecordCatalog(entries map[string]int, violations int) {
	for kind, n := range entries {
		CatalogEntries.WithLabelValues(kind).Set(float64(n))
	}
	CatalogViolations.Set(float64(violations))
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordCacheCleanup records a janitor pass.
func RecordCacheCleanup(cacheType string, removed, size int) {
	CacheEvictions.WithLabelValues(cacheType).Add(float64(removed))
	CacheSize.WithLabelValues(cacheType).Set(float64(size))
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
