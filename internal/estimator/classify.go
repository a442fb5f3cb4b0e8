// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package estimator

import "math"

// ClassifyScore labels the headline affinity score.
// Thresholds: <1.5 bad, <2.5 medium, <3.5 good, otherwise great.
func ClassifyScore(score float64) Label {
	switch {
	case score < 1.5:
		return LabelBad
	case score < 2.5:
		return LabelMedium
	case score < 3.5:
		return LabelGood
	default:
		return LabelGreat
	}
}

// ClassifyRelative labels relative values: season multipliers and per-genre theme
// weights. Thresholds: <0.5 bad, <1.5 medium, <2.5 good, otherwise great.
// Not interchangeable with ClassifyScore.
func ClassifyRelative(value float64) Label {
	switch {
	case value < 0.5:
		return LabelBad
	case value < 1.5:
		return LabelMedium
	case value < 2.5:
		return LabelGood
	default:
		return LabelGreat
	}
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
