// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/marquee/internal/estimator"
)

// Error codes for API responses.
const (
	ErrCodeInvalidRequest     = "INVALID_REQUEST"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeUnknownGenre       = "UNKNOWN_GENRE"
	ErrCodeUnknownBudgetTier  = "UNKNOWN_BUDGET_TIER"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited        = "RATE_LIMITED"
	ErrCodeTimeout            = "TIMEOUT"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// classifyError maps an engine error to an HTTP status and error code.
func classifyError(err error) (status int, code string) {
	switch {
	case errors.Is(err, estimator.ErrUnknownGenre):
		return http.StatusUnprocessableEntity, ErrCodeUnknownGenre
	case errors.Is(err, estimator.ErrUnknownBudgetTier):
		return http.StatusUnprocessableEntity, ErrCodeUnknownBudgetTier
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout
	case errors.Is(err, context.Canceled):
		// Client went away; the status is only seen in logs and metrics.
		return http.StatusServiceUnavailable, ErrCodeServiceUnavailable
	default:
		return http.StatusInternalServerError, ErrCodeInternal
	}
}
