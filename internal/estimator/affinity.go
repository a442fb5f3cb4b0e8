// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package estimator

import (
	"fmt"
	"sort"

	"github.com/tomtom215/marquee/internal/catalog"
)

// ComputeAffinity scores a selection and ranks the release windows for it.
//
// An incomplete selection returns (nil, nil). An unknown primary genre returns
// ErrUnknownGenre and an unknown budget tier ErrUnknownBudgetTier. A secondary genre
// that is not in the catalog is ignored. Unknown themes, unknown ratings and missing
// matrix cells contribute zero.
func ComputeAffinity(c *catalog.Catalog, sel Selection) (*AffinityResult, error) {
	sel = sel.Normalize()
	if !sel.Complete() {
		return nil, nil
	}

	g1, ok := c.GenreIndex(sel.Genre1)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenre, sel.Genre1)
	}
	tier, ok := c.Tier(sel.Budget)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBudgetTier, sel.Budget)
	}
	g2, hasG2 := secondaryIndex(c, sel.Genre2)

	themes, ratings := c.Themes(), c.Ratings()
	themeScore := themes.Value(sel.Theme, g1)
	ratingScore := ratings.Value(sel.Rating, g1)
	synergy := 0.0
	if hasG2 {
		themeScore += themes.Value(sel.Theme, g2)
		ratingScore += ratings.Value(sel.Rating, g2)
		synergy = c.Synergy().Value(sel.Genre1, g2)
	}

	base := themeScore + ratingScore + synergy
	script := c.Script()
	final := (base*script.Multiplier + script.Offset) * tier.ScoreMultiplier

	return &AffinityResult{
		Score:     final,
		Label:     ClassifyScore(final),
		BaseScore: base,
		Seasons:   scoreSeasons(c.Seasons(), final, g1, g2, hasG2),
	}, nil
}

// secondaryIndex resolves the optional second genre. Empty or unknown genres are
// treated as absent.
func secondaryIndex(c *catalog.Catalog, genre2 string) (int, bool) {
	if genre2 == "" {
		return -1, false
	}
	return c.GenreIndex(genre2)
}

// scoreSeasons applies each window's multiplier to the final score and sorts the
// windows best first. Ties keep catalog order.
func scoreSeasons(seasons catalog.Matrix, final float64, g1, g2 int, hasG2 bool) []SeasonScore {
	keys := seasons.Keys()
	out := make([]SeasonScore, 0, len(keys))

	for _, season := range keys {
		multiplier := seasons.Value(season, g1)
		if hasG2 {
			multiplier = (multiplier + seasons.Value(season, g2)) / 2
		}
		out = append(out, SeasonScore{
			Season:     season,
			Score:      round2(final * multiplier),
			Multiplier: multiplier,
			Label:      ClassifyRelative(multiplier),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
