// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import "strings"

// Production phase groups a feature set belongs to.
const (
	PreProduction  = "pre-production"
	PostProduction = "post-production"
)

// Planning categories, three per production phase.
const (
	Writing       = "writing"
	Costume       = "costume"
	SetDesign     = "setdesign"
	SpecialEffect = "specialeffect"
	Sound         = "sound"
	Editing       = "editing"
)

// PreProductionCategories lists the planning categories of the pre-production group in
// their canonical order.
var PreProductionCategories = []string{Writing, Costume, SetDesign}

// PostProductionCategories lists the planning categories of the post-production group.
var PostProductionCategories = []string{SpecialEffect, Sound, Editing}

// PlanningCategories returns all six planning categories, pre-production first.
func PlanningCategories() []string {
	out := make([]string, 0, len(PreProductionCategories)+len(PostProductionCategories))
	out = append(out, PreProductionCategories...)
	return append(out, PostProductionCategories...)
}

// CategoriesFor returns the planning categories of a production phase group, or nil for
// an unknown group.
func CategoriesFor(group string) []string {
	switch group {
	case PreProduction:
		return PreProductionCategories
	case PostProduction:
		return PostProductionCategories
	default:
		return nil
	}
}

// GroupOf returns the production phase a planning category belongs to, or "" if the
// category is unknown.
func GroupOf(category string) string {
	switch category {
	case Writing, Costume, SetDesign:
		return PreProduction
	case SpecialEffect, Sound, Editing:
		return PostProduction
	default:
		return ""
	}
}

// ScriptConfig holds the scalar adjustment applied to the raw affinity score before the
// budget multiplier.
type ScriptConfig struct {
	Multiplier float64 `json:"scriptAffinityModMult"`
	Offset     float64 `json:"scriptAffinityModOffset"`
}

// BudgetTier is one of the four production scales and the recommendation policy it
// implies.
type BudgetTier struct {
	// Name is the selection value (Small, Moderate, Large, Blockbuster).
	Name string `json:"name"`
	// Key is the internal identifier used by the feature catalog (small, medium, ...).
	Key                   string  `json:"key"`
	ScoreMultiplier       float64 `json:"scoreMultiplier"`
	MaxComplexity         int     `json:"maxComplexity"`
	AllowedAffinityLevels []int   `json:"allowedAffinityLevels"`
	MinimumCount          int     `json:"minimumCount"`
}

// AllowsLevel reports whether a theme affinity level passes the tier's filter.
func (t BudgetTier) AllowsLevel(level int) bool {
	for _, l := range t.AllowedAffinityLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Matches reports whether s names this tier by its name or key, ignoring case.
func (t BudgetTier) Matches(s string) bool {
	s = strings.TrimSpace(s)
	return strings.EqualFold(s, t.Name) || strings.EqualFold(s, t.Key)
}

// FeatureSet groups feature records and fixes their production phase and display order.
type FeatureSet struct {
	ID           string   `json:"id,omitempty"`
	NameKey      string   `json:"name-key" validate:"required"`
	IconKey      string   `json:"icon-key"`
	SortPriority int      `json:"sort-priority"`
	Category     string   `json:"category" validate:"oneof=pre-production post-production"`
	Exclusive    bool     `json:"exclusive"`
	TechReqs     []string `json:"tech-reqs"`
}

// FeatureRecord is a single recommendable extra resource.
type FeatureRecord struct {
	ID             string             `json:"id,omitempty"`
	NameKey        string             `json:"name-key" validate:"required"`
	SetID          string             `json:"set-id" validate:"required"`
	TechReqs       []string           `json:"tech-reqs"`
	Complexity     int                `json:"complexity" validate:"gte=0"`
	PlanningReqs   map[string]int     `json:"planning-reqs"`
	ScoreReqs      map[string]float64 `json:"score-reqs"`
	RatingAffinity map[string]int     `json:"rating-affinity"`
	ThemeAffinity  map[string]int     `json:"theme-affinity"`
	Cost           map[string]int     `json:"cost"`
}

// AffinityLevel returns the record's affinity level for a theme, 0 when absent.
func (r FeatureRecord) AffinityLevel(theme string) int {
	return r.ThemeAffinity[theme]
}

// FeatureMeta carries the feature catalog's presentation settings.
type FeatureMeta struct {
	LocPrefix       string         `json:"locPrefix"`
	IconPrefix      string         `json:"iconPrefix"`
	FeaturePoolBase int            `json:"featurePoolBase"`
	ScoreReqOffsets []float64      `json:"scoreReqOffsets"`
	ComplexityReq   map[string]int `json:"complexityReq"`
}

// Stats summarizes catalog contents for health and logging output.
type Stats struct {
	Genres      int `json:"genres"`
	Themes      int `json:"themes"`
	Ratings     int `json:"ratings"`
	Seasons     int `json:"seasons"`
	BudgetTiers int `json:"budget_tiers"`
	FeatureSets int `json:"feature_sets"`
	Features    int `json:"features"`
	Violations  int `json:"violations"`
}
