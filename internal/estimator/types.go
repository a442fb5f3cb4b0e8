// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package estimator

import "strings"

// Selection is the set of creative choices every computation starts from. Genre2 is
// optional; the remaining fields are required for an affinity score.
type Selection struct {
	Genre1 string `json:"genre1" validate:"omitempty,catalog_key"`
	Genre2 string `json:"genre2,omitempty" validate:"omitempty,catalog_key"`
	Theme  string `json:"theme" validate:"omitempty,catalog_key"`
	Rating string `json:"rating" validate:"omitempty,catalog_key"`
	Budget string `json:"budget" validate:"omitempty,catalog_key"`
}

// Normalize trims surrounding whitespace from every field.
func (s Selection) Normalize() Selection {
	return Selection{
		Genre1: strings.TrimSpace(s.Genre1),
		Genre2: strings.TrimSpace(s.Genre2),
		Theme:  strings.TrimSpace(s.Theme),
		Rating: strings.TrimSpace(s.Rating),
		Budget: strings.TrimSpace(s.Budget),
	}
}

// Complete reports whether every field required by the affinity scorer is set.
func (s Selection) Complete() bool {
	return s.Genre1 != "" && s.Theme != "" && s.Rating != "" && s.Budget != ""
}

// Label is a qualitative classification of a score.
type Label string

const (
	LabelBad    Label = "bad"
	LabelMedium Label = "medium"
	LabelGood   Label = "good"
	LabelGreat  Label = "great"
)

// SeasonScore is the affinity of a selection with one release window.
type SeasonScore struct {
	Season     string  `json:"season"`
	Score      float64 `json:"score"`
	Multiplier float64 `json:"multiplier"`
	Label      Label   `json:"label"`
}

// AffinityResult is the output of the affinity scorer.
type AffinityResult struct {
	Score     float64       `json:"score"`
	Label     Label         `json:"label"`
	BaseScore float64       `json:"base_score"`
	Seasons   []SeasonScore `json:"seasons"`
}

// Production holds the pre-production effort split.
type Production struct {
	Writing   int `json:"writing"`
	Costume   int `json:"costume"`
	SetDesign int `json:"setdesign"`
}

// PostProduction holds the post-production effort split.
type PostProduction struct {
	SpecialEffect int `json:"specialeffect"`
	Sound         int `json:"sound"`
	Editing       int `json:"editing"`
}

// ProductionPlan is the output of the production allocator.
type ProductionPlan struct {
	Production     Production     `json:"production"`
	PostProduction PostProduction `json:"postProduction"`
}

// ResourceDescriptor is one recommended extra resource.
type ResourceDescriptor struct {
	ID            string         `json:"id"`
	NameKey       string         `json:"nameKey"`
	SetID         string         `json:"setId"`
	Category      string         `json:"category"`
	Cost          map[string]int `json:"cost"`
	Complexity    int            `json:"complexity"`
	PlanningReqs  map[string]int `json:"planningReqs"`
	SortPriority  int            `json:"sortPriority"`
	AffinityLevel int            `json:"affinityLevel"`
	// Backfilled marks entries added to satisfy the budget tier's minimum count.
	Backfilled bool `json:"backfilled,omitempty"`
}

// ResourceRecommendations is the output of the resource recommender. Both lists are
// always non-nil.
type ResourceRecommendations struct {
	ProductionExtras     []ResourceDescriptor `json:"productionExtras"`
	PostProductionExtras []ResourceDescriptor `json:"postProductionExtras"`
}

func emptyRecommendations() ResourceRecommendations {
	return ResourceRecommendations{
		ProductionExtras:     []ResourceDescriptor{},
		PostProductionExtras: []ResourceDescriptor{},
	}
}

// GenreOption is a genre ranked for a selection slot.
type GenreOption struct {
	Genre string  `json:"genre"`
	Score float64 `json:"score"`
	Label Label   `json:"label,omitempty"`
}

// GenreOptions holds the ranked candidates for the primary and secondary genre slots.
type GenreOptions struct {
	Primary   []GenreOption `json:"primary"`
	Secondary []GenreOption `json:"secondary"`
}

// Estimate combines every computation for one selection. Affinity and Plan are nil
// until enough of the selection is present.
type Estimate struct {
	Selection Selection               `json:"selection"`
	Ready     bool                    `json:"ready"`
	Affinity  *AffinityResult         `json:"affinity"`
	Plan      *ProductionPlan         `json:"plan"`
	Resources ResourceRecommendations `json:"resources"`
}
