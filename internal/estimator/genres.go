// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package estimator

import (
	"sort"
	"strings"

	"github.com/tomtom215/marquee/internal/catalog"
)

// RankGenreOptions ranks the genres offered for the two genre slots.
//
// The primary slot is ranked by the theme's weight for each genre and excludes
// genre2. The secondary slot adds genre1's synergy with each candidate and excludes
// genre1; without a known genre1 it falls back to the theme weights. Without a known
// theme every genre is returned unranked, in catalog order, with a zero score and no
// label.
func RankGenreOptions(c *catalog.Catalog, theme, genre1, genre2 string) GenreOptions {
	theme = strings.TrimSpace(theme)
	genre1 = strings.TrimSpace(genre1)
	genre2 = strings.TrimSpace(genre2)

	genres := c.Genres()
	themes := c.Themes()

	if theme == "" || !themes.Has(theme) {
		primary := make([]GenreOption, 0, len(genres))
		for _, g := range genres {
			primary = append(primary, GenreOption{Genre: g})
		}
		secondary := make([]GenreOption, len(primary))
		copy(secondary, primary)
		return GenreOptions{Primary: primary, Secondary: secondary}
	}

	primary := make([]GenreOption, 0, len(genres))
	for i, g := range genres {
		if g == genre2 {
			continue
		}
		primary = append(primary, option(g, themes.Value(theme, i)))
	}
	rankOptions(primary)

	secondary := make([]GenreOption, 0, len(genres))
	if _, ok := c.GenreIndex(genre1); ok {
		synergy := c.Synergy()
		for i, g := range genres {
			if g == genre1 {
				continue
			}
			secondary = append(secondary, option(g, themes.Value(theme, i)+synergy.Value(genre1, i)))
		}
	} else {
		for i, g := range genres {
			secondary = append(secondary, option(g, themes.Value(theme, i)))
		}
	}
	rankOptions(secondary)

	return GenreOptions{Primary: primary, Secondary: secondary}
}

func option(genre string, score float64) GenreOption {
	return GenreOption{Genre: genre, Score: score, Label: ClassifyRelative(score)}
}

func rankOptions(opts []GenreOption) {
	sort.SliceStable(opts, func(i, j int) bool {
		return opts[i].Score > opts[j].Score
	})
}
