// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/marquee/internal/logging"
	ws "github.com/tomtom215/marquee/internal/websocket"
)

// Live upgrades the request to a WebSocket live estimator session and serves it
// until the client disconnects or the hub shuts down.
//
// @Summary Live estimator session
// @Description WebSocket endpoint. Send selection, clear and ping messages; receive production, resources and debounced affinity results.
// @Tags Live
// @Success 101 "Switching protocols"
// @Failure 503 {object} APIResponse "Live sessions unavailable or at capacity"
// @Router /live [get]
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "live sessions are disabled", nil)
		return
	}

	// Reject before upgrading so the client gets a plain HTTP status.
	if err := h.hub.Admit(); err != nil {
		message := "live sessions are not available"
		if errors.Is(err, ws.ErrHubFull) {
			w.Header().Set("Retry-After", "30")
			message = "live session limit reached"
		}
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message, nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		logging.Ctx(r.Context()).Debug().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	if err := h.hub.Serve(r.Context(), conn); err != nil {
		// Lost the race for the last slot after Admit.
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()),
			time.Now().Add(time.Second))
		_ = conn.Close()
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Live session rejected after upgrade")
	}
}
