// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/estimator"
	"github.com/tomtom215/marquee/internal/middleware"
	ws "github.com/tomtom215/marquee/internal/websocket"
)

// HealthStatus is the data of GET /health.
type HealthStatus struct {
	Status        string                     `json:"status"`
	Version       string                     `json:"version"`
	UptimeSeconds float64                    `json:"uptime_seconds"`
	Catalog       catalog.Stats              `json:"catalog"`
	Engine        estimator.Metrics          `json:"engine"`
	Cache         cache.Stats                `json:"cache"`
	Live          LiveStatus                 `json:"live"`
	Endpoints     []middleware.EndpointStats `json:"endpoints,omitempty"`
}

// LiveStatus describes the live session hub. Accepting is false only while the hub is
// stopped; a full hub still counts as accepting.
type LiveStatus struct {
	Enabled     bool `json:"enabled"`
	Accepting   bool `json:"accepting"`
	Sessions    int  `json:"sessions"`
	MaxSessions int  `json:"max_sessions"`
}

// Health reports service status.
//
// The service is "degraded" when the loaded catalog has integrity violations or an
// enabled live hub is not accepting sessions.
//
// @Summary Get system health status
// @Tags Core
// @Produce json
// @Success 200 {object} APIResponse{data=HealthStatus} "Health status retrieved successfully"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats := h.engine.Catalog().Stats()

	health := HealthStatus{
		Status:        "healthy",
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Catalog:       stats,
		Engine:        h.engine.GetMetrics(),
		Cache:         h.engine.CacheStats(),
		Live:          h.liveStatus(),
	}
	if h.perfMon != nil {
		health.Endpoints = h.perfMon.Stats()
	}

	if stats.Violations > 0 || (health.Live.Enabled && !health.Live.Accepting) {
		health.Status = "degraded"
	}

	// Health must never be served from an intermediary cache.
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, r, http.StatusOK, &APIResponse{
		Status: "success",
		Data:   health,
		Metadata: Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

func (h *Handler) liveStatus() LiveStatus {
	if h.hub == nil {
		return LiveStatus{}
	}
	return LiveStatus{
		Enabled:     true,
		Accepting:   !errors.Is(h.hub.Admit(), ws.ErrHubStopped),
		Sessions:    h.hub.SessionCount(),
		MaxSessions: h.hub.Config().MaxSessions,
	}
}
