// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package estimator

import "errors"

var (
	// ErrUnknownGenre is returned when the primary genre is not in the catalog.
	ErrUnknownGenre = errors.New("unknown genre")

	// ErrUnknownBudgetTier is returned when the budget tier is not in the catalog.
	ErrUnknownBudgetTier = errors.New("unknown budget tier")
)
