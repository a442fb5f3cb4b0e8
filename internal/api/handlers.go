// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/estimator"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/middleware"
	ws "github.com/tomtom215/marquee/internal/websocket"
)

// Handler serves the estimator API.
type Handler struct {
	engine    *estimator.Engine
	hub       *ws.Hub
	config    *config.Config
	perfMon   *middleware.PerformanceMonitor
	version   string
	startTime time.Time
}

// NewHandler creates a handler. hub may be nil when live sessions are disabled and
// perfMon may be nil when request sampling is off.
func NewHandler(
	engine *estimator.Engine,
	hub *ws.Hub,
	cfg *config.Config,
	perfMon *middleware.PerformanceMonitor,
	version string,
) *Handler {
	return &Handler{
		engine:    engine,
		hub:       hub,
		config:    cfg,
		perfMon:   perfMon,
		version:   version,
		startTime: time.Now(),
	}
}

// getUpgrader returns a WebSocket upgrader with origin validation.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin; an empty one would bypass CORS entirely.
	if origin == "" {
		logging.Ctx(r.Context()).Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Ctx(r.Context()).Warn().
		Str("origin", sanitizeLogValue(origin)).
		Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
