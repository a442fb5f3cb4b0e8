// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package estimator

import (
	"math"
	"strings"

	"github.com/tomtom215/marquee/internal/catalog"
)

// Allocation bounds. Each group of three values is scaled so it totals between
// groupMinTotal and groupMaxTotal, then every value is snapped to a multiple of
// allocationStep within [allocationMin, allocationMax].
const (
	groupMinTotal  = 85.0
	groupMaxTotal  = 100.0
	allocationStep = 5.0
	allocationMin  = 10.0
	allocationMax  = 100.0
)

// ComputeProductionPlan splits planning effort across the six categories for the
// selected genre(s). It returns nil when genre1 is empty or neither genre is in the
// catalog. An unknown genre2 is ignored; an unknown genre1 next to a known genre2
// contributes zeros to the average.
func ComputeProductionPlan(c *catalog.Catalog, genre1, genre2 string) *ProductionPlan {
	genre1 = strings.TrimSpace(genre1)
	if genre1 == "" {
		return nil
	}
	g1, hasG1 := c.GenreIndex(genre1)
	g2, hasG2 := secondaryIndex(c, strings.TrimSpace(genre2))
	if !hasG1 && !hasG2 {
		return nil
	}

	planning := c.Planning()
	raw := func(category string) float64 {
		switch {
		case !hasG1:
			return planning.Value(category, g2) / 2
		case hasG2:
			return (planning.Value(category, g1) + planning.Value(category, g2)) / 2
		default:
			return planning.Value(category, g1)
		}
	}

	pre := scaleGroup([]float64{raw(catalog.Writing), raw(catalog.Costume), raw(catalog.SetDesign)})
	post := scaleGroup([]float64{raw(catalog.SpecialEffect), raw(catalog.Sound), raw(catalog.Editing)})

	return &ProductionPlan{
		Production: Production{
			Writing:   roundClamp(pre[0]),
			Costume:   roundClamp(pre[1]),
			SetDesign: roundClamp(pre[2]),
		},
		PostProduction: PostProduction{
			SpecialEffect: roundClamp(post[0]),
			Sound:         roundClamp(post[1]),
			Editing:       roundClamp(post[2]),
		},
	}
}

// scaleGroup rescales a group proportionally when its total falls outside
// [groupMinTotal, groupMaxTotal]. A group with no positive total is returned as is.
func scaleGroup(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	if sum <= 0 {
		return out
	}

	var factor float64
	switch {
	case sum < groupMinTotal:
		factor = groupMinTotal / sum
	case sum > groupMaxTotal:
		factor = groupMaxTotal / sum
	default:
		return out
	}
	for i := range out {
		out[i] *= factor
	}
	return out
}

// roundClamp snaps v to the nearest multiple of allocationStep (a remainder of half a
// step or more rounds up) and clamps it to [allocationMin, allocationMax].
func roundClamp(v float64) int {
	remainder := math.Mod(v, allocationStep)
	if remainder >= allocationStep/2 {
		v = v - remainder + allocationStep
	} else {
		v -= remainder
	}
	v = math.Max(allocationMin, math.Min(allocationMax, v))
	return int(math.Round(v))
}

// allocationOf returns the allocation value for a planning category.
func allocationOf(prod *Production, post *PostProduction, category string) (int, bool) {
	switch category {
	case catalog.Writing:
		return prod.Writing, true
	case catalog.Costume:
		return prod.Costume, true
	case catalog.SetDesign:
		return prod.SetDesign, true
	case catalog.SpecialEffect:
		return post.SpecialEffect, true
	case catalog.Sound:
		return post.Sound, true
	case catalog.Editing:
		return post.Editing, true
	default:
		return 0, false
	}
}
