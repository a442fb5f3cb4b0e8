// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/marquee/internal/logging"
)

// DefaultSlowRequestThreshold is the latency above which a request is logged as slow.
// Estimates are in-memory computations, so anything near this is worth a look.
const DefaultSlowRequestThreshold = 250 * time.Millisecond

// RequestSample is one observed request.
type RequestSample struct {
	Route      string
	Method     string
	Duration   time.Duration
	StatusCode int
	Timestamp  time.Time
}

// EndpointStats aggregates the samples of one route over the monitor window.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int     `json:"request_count"`
	ErrorCount   int     `json:"error_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        float64 `json:"p50_ms"`
	P95MS        float64 `json:"p95_ms"`
	P99MS        float64 `json:"p99_ms"`
	MaxMS        float64 `json:"max_ms"`
}

// PerformanceMonitor keeps a sliding window of recent requests for the health
// endpoint's latency summary.
type PerformanceMonitor struct {
	mu            sync.RWMutex
	samples       []RequestSample
	next          int
	full          bool
	slowThreshold time.Duration
}

// NewPerformanceMonitor creates a monitor retaining the last window requests.
func NewPerformanceMonitor(window int, slowThreshold time.Duration) *PerformanceMonitor {
	if window <= 0 {
		window = 1000
	}
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowRequestThreshold
	}
	return &PerformanceMonitor{
		samples:       make([]RequestSample, window),
		slowThreshold: slowThreshold,
	}
}

// Record adds a sample, overwriting the oldest once the window is full.
func (pm *PerformanceMonitor) Record(s RequestSample) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.samples[pm.next] = s
	pm.next++
	if pm.next == len(pm.samples) {
		pm.next = 0
		pm.full = true
	}
}

// Len returns the number of samples currently retained.
func (pm *PerformanceMonitor) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	if pm.full {
		return len(pm.samples)
	}
	return pm.next
}

// Stats returns per-endpoint statistics, busiest endpoint first.
func (pm *PerformanceMonitor) Stats() []EndpointStats {
	pm.mu.RLock()
	n := pm.next
	if pm.full {
		n = len(pm.samples)
	}
	byEndpoint := make(map[string][]RequestSample)
	for _, s := range pm.samples[:n] {
		key := s.Method + " " + s.Route
		byEndpoint[key] = append(byEndpoint[key], s)
	}
	pm.mu.RUnlock()

	stats := make([]EndpointStats, 0, len(byEndpoint))
	for endpoint, samples := range byEndpoint {
		stats = append(stats, summarize(endpoint, samples))
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})
	return stats
}

func summarize(endpoint string, samples []RequestSample) EndpointStats {
	durations := make([]time.Duration, len(samples))
	var total time.Duration
	errors := 0
	for i, s := range samples {
		durations[i] = s.Duration
		total += s.Duration
		if s.StatusCode >= http.StatusInternalServerError {
			errors++
		}
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	return EndpointStats{
		Endpoint:     endpoint,
		RequestCount: len(samples),
		ErrorCount:   errors,
		AvgMS:        ms(total / time.Duration(len(samples))),
		P50MS:        ms(percentile(durations, 0.50)),
		P95MS:        ms(percentile(durations, 0.95)),
		P99MS:        ms(percentile(durations, 0.99)),
		MaxMS:        ms(durations[len(durations)-1]),
	}
}

// Middleware records every request passing through it and logs slow ones.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		route := routePattern(r)
		pm.Record(RequestSample{
			Route:      route,
			Method:     r.Method,
			Duration:   elapsed,
			StatusCode: statusOf(ww),
			Timestamp:  start,
		})

		if elapsed > pm.slowThreshold {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Dur("duration", elapsed).
				Dur("threshold", pm.slowThreshold).
				Msg("Slow request detected")
		}
	})
}

// percentile picks the nearest-rank value from an ascending slice.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[int(float64(len(sorted)-1)*p)]
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
