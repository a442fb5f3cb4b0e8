// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

// Package logging provides centralized zerolog-based structured logging for Marquee.
//
// The global logger is configured once at startup from the LOG_LEVEL,
// LOG_FORMAT and LOG_CALLER settings (see package config). Components derive
// child loggers with a "component" field; HTTP handlers and live sessions use
// Ctx to pick up request and session IDs stored in the context.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
//	logging.Info().Str("genre", "ACTION").Msg("Estimate computed")
//	logging.Ctx(r.Context()).Warn().Msg("Unknown budget tier")
//
// # slog Integration
//
// The supervisor tree logs through sutureslog, which requires *slog.Logger.
// NewSlogLogger bridges slog records into zerolog so every line shares one
// format:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger(logger)}
//
// Always terminate event chains with Msg or Send; an unterminated event is
// never written.
package logging
