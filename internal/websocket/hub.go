// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package websocket

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/estimator"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/metrics"
)

var (
	// ErrHubFull is returned when the session cap is reached.
	ErrHubFull = errors.New("live session limit reached")

	// ErrHubStopped is returned when the hub is not accepting sessions.
	ErrHubStopped = errors.New("live session hub is not running")
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline indicates the context deadline was exceeded.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// statsInterval is how often the hub logs its session count.
const statsInterval = time.Minute

// SessionConfig bounds live sessions.
type SessionConfig struct {
	MaxSessions    int
	MessageRate    float64
	MessageBurst   int
	MaxMessageSize int64
	PingInterval   time.Duration
	PongTimeout    time.Duration
	WriteTimeout   time.Duration
	SendBuffer     int
}

// DefaultSessionConfig returns the limits used when none are configured.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxSessions:    256,
		MessageRate:    20,
		MessageBurst:   40,
		MaxMessageSize: 4096,
		PingInterval:   54 * time.Second,
		PongTimeout:    60 * time.Second,
		WriteTimeout:   10 * time.Second,
		SendBuffer:     32,
	}
}

// withDefaults fills zero fields from DefaultSessionConfig.
func (c SessionConfig) withDefaults() SessionConfig {
	d := DefaultSessionConfig()
	if c.MaxSessions <= 0 {
		c.MaxSessions = d.MaxSessions
	}
	if c.MessageRate <= 0 {
		c.MessageRate = d.MessageRate
	}
	if c.MessageBurst <= 0 {
		c.MessageBurst = d.MessageBurst
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.PingInterval <= 0 {
		c.PingInterval = d.PingInterval
	}
	if c.PongTimeout <= 0 {
		c.PongTimeout = d.PongTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = d.SendBuffer
	}
	return c
}

// Hub tracks live sessions, enforces the session cap and closes every session when
// its supervised run loop stops.
type Hub struct {
	engine *estimator.Engine
	config SessionConfig
	logger zerolog.Logger

	mu       sync.RWMutex
	sessions map[*Session]struct{}
	running  bool
}

// NewHub creates a hub serving sessions against engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHub(engine *estimator.Engine, cfg SessionConfig, logger zerolog.Logger) *Hub {
	return &Hub{
		engine:   engine,
		config:   cfg.withDefaults(),
		logger:   logger.With().Str("component", "live").Logger(),
		sessions: make(map[*Session]struct{}),
	}
}

// Config returns the effective session limits.
func (h *Hub) Config() SessionConfig {
	return h.config
}

// RunWithContext accepts sessions until ctx is canceled, then closes every open
// session. It is meant to run under a supervisor and may be restarted.
func (h *Hub) RunWithContext(ctx context.Context) error {
	h.mu.Lock()
	h.running = true
	h.mu.Unlock()

	h.logger.Info().Int("max_sessions", h.config.MaxSessions).Msg("live session hub started")

	ticker := time.NewTicker(statsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		case <-ticker.C:
			h.logger.Debug().Int("sessions", h.SessionCount()).Msg("live session stats")
		}
	}
}

// Serve registers a session on an upgraded connection and blocks until it ends.
// It returns ErrHubFull or ErrHubStopped without touching conn when the session
// cannot be admitted; the caller then owns the connection.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn) error {
	id := logging.GenerateSessionID()
	s := newSession(logging.ContextWithSessionID(ctx, id), h, conn, id)
	if err := h.register(s); err != nil {
		s.cancel()
		return err
	}
	defer h.unregister(s)

	s.logger.Info().Int("sessions", h.SessionCount()).Msg("live session opened")
	s.run()
	s.logger.Info().Msg("live session closed")
	return nil
}

// Admit reports whether a new session would currently be accepted. Handlers call it
// before upgrading so a full hub can answer with a plain HTTP error.
func (h *Hub) Admit() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.admitLocked()
}

func (h *Hub) admitLocked() error {
	if !h.running {
		return ErrHubStopped
	}
	if len(h.sessions) >= h.config.MaxSessions {
		return ErrHubFull
	}
	return nil
}

func (h *Hub) register(s *Session) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.admitLocked(); err != nil {
		return err
	}
	h.sessions[s] = struct{}{}
	metrics.WSConnections.Set(float64(len(h.sessions)))
	return nil
}

func (h *Hub) unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.sessions, s)
	metrics.WSConnections.Set(float64(len(h.sessions)))
}

// SessionCount returns the number of open sessions.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// shutdown stops admitting sessions and closes the open ones in creation order.
func (h *Hub) shutdown(ctx context.Context) {
	h.mu.Lock()
	h.running = false
	sessions := make([]*Session, 0, len(h.sessions))
	for s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].order < sessions[j].order
	})
	for _, s := range sessions {
		s.close()
	}

	// ctx.Err() is expected here and is not logged as an error.
	h.logger.Info().
		Str("reason", string(getShutdownReason(ctx))).
		Int("sessions_closed", len(sessions)).
		Msg("live session hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}
