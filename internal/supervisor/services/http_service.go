// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	httpServiceName        = "http-server"
	defaultShutdownTimeout = 10 * time.Second
)

// HTTPServer is the lifecycle subset of *http.Server.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs the REST and live endpoints under supervision.
//
// Cancellation drains in-flight requests with Shutdown, bounded by the
// shutdown timeout, then returns ctx.Err(). A listener failure is returned
// wrapped and the api layer restarts the service.
type HTTPServerService struct {
	server  HTTPServer
	addr    string
	drainBy time.Duration
	logger  zerolog.Logger
}

// NewHTTPServerService wraps server. A non-positive shutdownTimeout means 10s.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration, logger zerolog.Logger) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	var addr string
	if hs, ok := server.(*http.Server); ok {
		addr = hs.Addr
	}
	return &HTTPServerService{
		server:  server,
		addr:    addr,
		drainBy: shutdownTimeout,
		logger:  logger.With().Str("service", httpServiceName).Logger(),
	}
}

// Serve implements suture.Service.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	listenErr := make(chan error, 1)
	go func() {
		err := h.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		listenErr <- err
	}()

	h.logger.Info().Str("addr", h.addr).Msg("http server listening")

	select {
	case err := <-listenErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	if err := h.drain(); err != nil {
		return err
	}
	<-listenErr
	return ctx.Err()
}

// drain shuts the server down on a fresh deadline since the serve context is
// already canceled.
func (h *HTTPServerService) drain() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.drainBy)
	defer cancel()

	start := time.Now()
	if err := h.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	h.logger.Info().Dur("drain", time.Since(start)).Msg("http server stopped")
	return nil
}

// String names the service in supervisor events.
func (h *HTTPServerService) String() string {
	return httpServiceName
}
