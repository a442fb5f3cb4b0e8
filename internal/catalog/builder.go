// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

// Builder assembles a Catalog in memory. Rows and records are validated by Build
// exactly like files loaded from disk.
//
// Budget tiers default to the standard ladder (Small, Moderate, Large, Blockbuster)
// with complexity limits 2, 3, 4 and 5 unless Tier or Complexity override them.
type Builder struct {
	raw rawCatalog
}

// NewBuilder starts a catalog with the given genre ordering and a neutral script
// configuration (multiplier 1, offset 0).
func NewBuilder(genres ...string) *Builder {
	b := &Builder{}
	b.raw.affinities = affinitiesFile{
		Genres:             append([]string(nil), genres...),
		GenreRelations:     matrixFile{Items: map[string][]float64{}},
		ThematicRelations:  matrixFile{Items: map[string][]float64{}},
		RatingImpact:       matrixFile{Items: map[string][]float64{}},
		SeasonalWindows:    matrixFile{Items: map[string][]float64{}},
		ProductionPlanning: matrixFile{Items: map[string][]float64{}},
		ScriptConfig:       ScriptConfig{Multiplier: 1, Offset: 0},
	}
	b.raw.budgets = budgetsFile{Tiers: []tierFile{
		{Name: "Small", Key: "small", ScoreMultiplier: 0.9, AllowedAffinityLevels: []int{3}, MinimumCount: 1},
		{Name: "Moderate", Key: "medium", ScoreMultiplier: 1.0, AllowedAffinityLevels: []int{2, 3}, MinimumCount: 5},
		{Name: "Large", Key: "large", ScoreMultiplier: 1.1, AllowedAffinityLevels: []int{2, 3}, MinimumCount: 10},
		{Name: "Blockbuster", Key: "blockbuster", ScoreMultiplier: 1.2, AllowedAffinityLevels: []int{1, 2, 3}, MinimumCount: 15},
	}}
	b.raw.features = featuresFile{Features: featuresBody{
		ComplexityReq: map[string]int{"small": 2, "medium": 3, "large": 4, "blockbuster": 5},
		Sets:          map[string]FeatureSet{},
		Records:       map[string]FeatureRecord{},
	}}
	return b
}

func addRow(mf *matrixFile, key string, values []float64) {
	if _, exists := mf.Items[key]; !exists {
		mf.Order = append(mf.Order, key)
	}
	mf.Items[key] = append([]float64(nil), values...)
}

// Theme adds a theme row, one weight per genre.
func (b *Builder) Theme(theme string, weights ...float64) *Builder {
	addRow(&b.raw.affinities.ThematicRelations, theme, weights)
	return b
}

// Rating adds an age rating row.
func (b *Builder) Rating(rating string, weights ...float64) *Builder {
	addRow(&b.raw.affinities.RatingImpact, rating, weights)
	return b
}

// Synergy adds the synergy row of a primary genre.
func (b *Builder) Synergy(genre string, weights ...float64) *Builder {
	addRow(&b.raw.affinities.GenreRelations, genre, weights)
	return b
}

// Season adds a release window row of per-genre multipliers.
func (b *Builder) Season(season string, multipliers ...float64) *Builder {
	addRow(&b.raw.affinities.SeasonalWindows, season, multipliers)
	return b
}

// Planning adds the base values of one planning category.
func (b *Builder) Planning(category string, values ...float64) *Builder {
	addRow(&b.raw.affinities.ProductionPlanning, category, values)
	return b
}

// Script sets the script scalar configuration.
func (b *Builder) Script(multiplier, offset float64) *Builder {
	b.raw.affinities.ScriptConfig = ScriptConfig{Multiplier: multiplier, Offset: offset}
	return b
}

// Tier replaces or adds a budget tier. MaxComplexity is written to the complexity
// requirement table under the tier key.
func (b *Builder) Tier(t BudgetTier) *Builder {
	tf := tierFile{
		Name:                  t.Name,
		Key:                   t.Key,
		ScoreMultiplier:       t.ScoreMultiplier,
		AllowedAffinityLevels: append([]int(nil), t.AllowedAffinityLevels...),
		MinimumCount:          t.MinimumCount,
	}
	b.raw.features.Features.ComplexityReq[t.Key] = t.MaxComplexity

	for i, existing := range b.raw.budgets.Tiers {
		if existing.Key == t.Key {
			b.raw.budgets.Tiers[i] = tf
			return b
		}
	}
	b.raw.budgets.Tiers = append(b.raw.budgets.Tiers, tf)
	return b
}

// Complexity sets the maximum feature complexity for a budget key.
func (b *Builder) Complexity(key string, limit int) *Builder {
	b.raw.features.Features.ComplexityReq[key] = limit
	return b
}

// Set adds a feature set.
func (b *Builder) Set(id, category string, sortPriority int) *Builder {
	b.raw.features.Features.Sets[id] = FeatureSet{
		NameKey:      "SET_" + id,
		SortPriority: sortPriority,
		Category:     category,
	}
	return b
}

// Record adds a feature record under id. An empty NameKey defaults to the id.
func (b *Builder) Record(id string, r FeatureRecord) *Builder {
	if r.NameKey == "" {
		r.NameKey = id
	}
	b.raw.features.Features.Records[id] = r
	return b
}

// Build validates the accumulated data and returns the Catalog.
func (b *Builder) Build() (*Catalog, []Violation, error) {
	return assemble(&b.raw)
}

// MustBuild is Build for fixtures; it panics on structural errors.
func (b *Builder) MustBuild() *Catalog {
	c, _, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
