// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import "sort"

// Catalog is the immutable reference data shared by every estimator computation.
type Catalog struct {
	genres     []string
	genreIndex map[string]int

	themes   Matrix
	ratings  Matrix
	synergy  Matrix
	seasons  Matrix
	planning Matrix
	script   ScriptConfig

	tiers []BudgetTier

	sets    map[string]FeatureSet
	setIDs  []string
	records []FeatureRecord
	meta    FeatureMeta

	violations int
}

// Genres returns the genre ordering.
func (c *Catalog) Genres() []string {
	out := make([]string, len(c.genres))
	copy(out, c.genres)
	return out
}

// GenreIndex returns the column index of a genre.
func (c *Catalog) GenreIndex(genre string) (int, bool) {
	idx, ok := c.genreIndex[genre]
	return idx, ok
}

// Themes returns the theme to genre weight matrix.
func (c *Catalog) Themes() Matrix { return c.themes }

// Ratings returns the age rating to genre weight matrix.
func (c *Catalog) Ratings() Matrix { return c.ratings }

// Synergy returns the genre to genre weight matrix, keyed by the primary genre.
func (c *Catalog) Synergy() Matrix { return c.synergy }

// Seasons returns the release window to genre multiplier matrix.
func (c *Catalog) Seasons() Matrix { return c.seasons }

// Planning returns the planning category to genre base value matrix.
func (c *Catalog) Planning() Matrix { return c.planning }

// Script returns the script scalar configuration.
func (c *Catalog) Script() ScriptConfig { return c.script }

// Tiers returns the budget tiers in ascending scale.
func (c *Catalog) Tiers() []BudgetTier {
	out := make([]BudgetTier, len(c.tiers))
	copy(out, c.tiers)
	return out
}

// Tier looks up a budget tier by name or key, ignoring case.
func (c *Catalog) Tier(name string) (BudgetTier, bool) {
	for _, t := range c.tiers {
		if t.Matches(name) {
			return t, true
		}
	}
	return BudgetTier{}, false
}

// Set returns a feature set by id.
func (c *Catalog) Set(id string) (FeatureSet, bool) {
	s, ok := c.sets[id]
	return s, ok
}

// Sets returns all feature sets ordered by group then sort priority.
func (c *Catalog) Sets() []FeatureSet {
	out := make([]FeatureSet, 0, len(c.setIDs))
	for _, id := range c.setIDs {
		out = append(out, c.sets[id])
	}
	return out
}

// Records returns the feature records in catalog order (ascending id).
func (c *Catalog) Records() []FeatureRecord {
	out := make([]FeatureRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Meta returns the feature catalog presentation settings.
func (c *Catalog) Meta() FeatureMeta { return c.meta }

// Stats summarizes the catalog.
func (c *Catalog) Stats() Stats {
	return Stats{
		Genres:      len(c.genres),
		Themes:      c.themes.Len(),
		Ratings:     c.ratings.Len(),
		Seasons:     c.seasons.Len(),
		BudgetTiers: len(c.tiers),
		FeatureSets: len(c.sets),
		Features:    len(c.records),
		Violations:  c.violations,
	}
}

// sortedSetIDs orders sets pre-production first, then by sort priority and id.
func sortedSetIDs(sets map[string]FeatureSet) []string {
	ids := make([]string, 0, len(sets))
	for id := range sets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := sets[ids[i]], sets[ids[j]]
		if a.Category != b.Category {
			return a.Category == PreProduction
		}
		if a.SortPriority != b.SortPriority {
			return a.SortPriority < b.SortPriority
		}
		return ids[i] < ids[j]
	})
	return ids
}
