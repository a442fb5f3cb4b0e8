// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/marquee/internal/logging"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestIDFromContext(r.Context())
	}))

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"generated when absent", "", false},
		{"upstream id reused", "edge-7f3a", true},
		{"control characters rejected", "bad\nid", false},
		{"overlong id rejected", strings.Repeat("a", maxRequestIDLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got == "" || got != seen {
				t.Fatalf("header %q and context %q should match and be set", got, seen)
			}
			if tt.keep != (got == tt.incoming) {
				t.Errorf("request id = %q, incoming %q, keep = %v", got, tt.incoming, tt.keep)
			}
		})
	}
}

func TestPrometheusMetrics_RoutePattern(t *testing.T) {
	t.Parallel()

	var pattern string
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/catalog/{kind}", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.With(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req)
			pattern = routePattern(req)
		})
	}).Get("/estimate/{part}", func(w http.ResponseWriter, req *http.Request) {})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/catalog/genres", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/estimate/affinity", nil))
	if pattern != "/estimate/{part}" {
		t.Errorf("routePattern = %q, want /estimate/{part}", pattern)
	}
}

func TestRoutePattern_Unmatched(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	if got := routePattern(req); got != unmatchedRoute {
		t.Errorf("routePattern = %q, want %q", got, unmatchedRoute)
	}
}

func TestPerformanceMonitor_Window(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(3, time.Second)
	for i := 1; i <= 5; i++ {
		pm.Record(RequestSample{Route: "/a", Method: http.MethodGet, Duration: time.Duration(i) * time.Millisecond, StatusCode: 200})
	}

	if pm.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", pm.Len())
	}
	stats := pm.Stats()
	if len(stats) != 1 {
		t.Fatalf("Stats() = %d endpoints, want 1", len(stats))
	}
	// Only samples 3..5 ms remain.
	if stats[0].RequestCount != 3 || stats[0].MaxMS != 5 || stats[0].P50MS != 4 || stats[0].AvgMS != 4 {
		t.Errorf("stats = %+v", stats[0])
	}
}

func TestPerformanceMonitor_Stats(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(100, time.Second)
	pm.Record(RequestSample{Route: "/b", Method: http.MethodPost, Duration: time.Millisecond, StatusCode: 500})
	pm.Record(RequestSample{Route: "/a", Method: http.MethodGet, Duration: time.Millisecond, StatusCode: 200})
	pm.Record(RequestSample{Route: "/a", Method: http.MethodGet, Duration: 3 * time.Millisecond, StatusCode: 200})

	stats := pm.Stats()
	if len(stats) != 2 {
		t.Fatalf("Stats() = %d endpoints, want 2", len(stats))
	}
	if stats[0].Endpoint != "GET /a" || stats[0].RequestCount != 2 {
		t.Errorf("busiest endpoint = %+v", stats[0])
	}
	if stats[1].Endpoint != "POST /b" || stats[1].ErrorCount != 1 {
		t.Errorf("second endpoint = %+v", stats[1])
	}
}

func TestPerformanceMonitor_Middleware(t *testing.T) {
	t.Parallel()

	pm := NewPerformanceMonitor(10, time.Nanosecond)
	r := chi.NewRouter()
	r.Use(pm.Middleware)
	r.Post("/estimate", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/estimate", nil))

	stats := pm.Stats()
	if len(stats) != 1 || stats[0].Endpoint != "POST /estimate" {
		t.Fatalf("Stats() = %+v", stats)
	}
}
