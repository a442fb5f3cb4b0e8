// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey int

const (
	requestIDKey contextKey = iota
	sessionIDKey
	loggerKey
)

// sessionIDLength keeps live session IDs short enough to scan in console logs.
const sessionIDLength = 8

// GenerateRequestID returns a random UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

// GenerateSessionID returns a short random ID for a live session.
func GenerateSessionID() string {
	return uuid.NewString()[:sessionIDLength]
}

// ContextWithRequestID attaches an HTTP request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

// ContextWithSessionID attaches a live session ID.
func ContextWithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromContext returns the live session ID, or "".
func SessionIDFromContext(ctx context.Context) string {
	return stringValue(ctx, sessionIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	s, _ := ctx.Value(key).(string)
	return s
}

// ContextWithLogger makes Ctx derive from logger instead of the global logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// Ctx returns a logger carrying the request and session IDs found in ctx.
//
//	logging.Ctx(r.Context()).Warn().Msg("Unknown budget tier")
//	// {"level":"warn","request_id":"…","message":"Unknown budget tier"}
func Ctx(ctx context.Context) *zerolog.Logger {
	base, ok := ctx.Value(loggerKey).(zerolog.Logger)
	if !ok {
		base = Logger()
	}

	lc := base.With()
	if id := RequestIDFromContext(ctx); id != "" {
		lc = lc.Str("request_id", id)
	}
	if id := SessionIDFromContext(ctx); id != "" {
		lc = lc.Str("session_id", id)
	}
	logger := lc.Logger()
	return &logger
}
