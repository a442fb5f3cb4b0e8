// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package estimator

import (
	"errors"
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/tomtom215/marquee/internal/catalog"
)

func affinityCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, violations, err := catalog.NewBuilder("Action", "Drama").
		Theme("war", 2, 1).
		Rating("PG-13", 1, 0).
		Synergy("Action", 0, 1).
		Synergy("Drama", 1, 0).
		Season("summer", 2, 1).
		Season("winter", 1, 3).
		Season("spring", 1, 1).
		Planning(catalog.Writing, 40, 30).
		Planning(catalog.Costume, 20, 30).
		Planning(catalog.SetDesign, 10, 30).
		Planning(catalog.SpecialEffect, 50, 10).
		Planning(catalog.Sound, 30, 40).
		Planning(catalog.Editing, 20, 50).
		Script(1, 0).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("Build() violations = %v", violations)
	}
	return c
}

func TestComputeAffinity_TwoGenres(t *testing.T) {
	t.Parallel()

	c := affinityCatalog(t)
	got, err := ComputeAffinity(c, Selection{
		Genre1: "Action",
		Genre2: "Drama",
		Theme:  "war",
		Rating: "PG-13",
		Budget: "Moderate",
	})
	if err != nil {
		t.Fatalf("ComputeAffinity() error = %v", err)
	}
	if got == nil {
		t.Fatal("ComputeAffinity() = nil for a complete selection")
	}
	if got.BaseScore != 5 {
		t.Errorf("BaseScore = %v, want 5", got.BaseScore)
	}
	if got.Score != 5.0 {
		t.Errorf("Score = %v, want 5.0", got.Score)
	}
	if got.Label != LabelGreat {
		t.Errorf("Label = %q, want %q", got.Label, LabelGreat)
	}
	if len(got.Seasons) != c.Seasons().Len() {
		t.Fatalf("len(Seasons) = %d, want %d", len(got.Seasons), c.Seasons().Len())
	}

	// Multipliers average both genres: summer 1.5, winter 2, spring 1.
	want := []SeasonScore{
		{Season: "winter", Score: 10, Multiplier: 2, Label: LabelGood},
		{Season: "summer", Score: 7.5, Multiplier: 1.5, Label: LabelGood},
		{Season: "spring", Score: 5, Multiplier: 1, Label: LabelMedium},
	}
	if !reflect.DeepEqual(got.Seasons, want) {
		t.Errorf("Seasons = %+v, want %+v", got.Seasons, want)
	}
}

func TestComputeAffinity_SingleGenre(t *testing.T) {
	t.Parallel()

	c := affinityCatalog(t)
	got, err := ComputeAffinity(c, Selection{Genre1: "Action", Theme: "war", Rating: "PG-13", Budget: "Small"})
	if err != nil {
		t.Fatalf("ComputeAffinity() error = %v", err)
	}

	// (2 + 1 + 0) * 1 + 0, scaled by the Small factor 0.9.
	if math.Abs(got.Score-2.7) > 1e-9 {
		t.Errorf("Score = %v, want 2.7", got.Score)
	}
	if got.Label != LabelGood {
		t.Errorf("Label = %q, want %q", got.Label, LabelGood)
	}
	if got.Seasons[0].Season != "summer" || got.Seasons[0].Score != 5.4 {
		t.Errorf("best season = %+v, want summer 5.4", got.Seasons[0])
	}
}

func TestComputeAffinity_StableSeasonTies(t *testing.T) {
	t.Parallel()

	c := catalog.NewBuilder("A").
		Theme("t", 1).
		Rating("r", 1).
		Season("first", 1).
		Season("second", 2).
		Season("third", 1).
		Season("fourth", 1).
		MustBuild()

	got, err := ComputeAffinity(c, Selection{Genre1: "A", Theme: "t", Rating: "r", Budget: "Moderate"})
	if err != nil {
		t.Fatalf("ComputeAffinity() error = %v", err)
	}

	var order []string
	for _, s := range got.Seasons {
		order = append(order, s.Season)
	}
	want := []string{"second", "first", "third", "fourth"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("season order = %v, want %v", order, want)
	}
}

func TestComputeAffinity_NotReady(t *testing.T) {
	t.Parallel()

	c := affinityCatalog(t)
	full := Selection{Genre1: "Action", Theme: "war", Rating: "PG-13", Budget: "Small"}

	tests := []struct {
		name   string
		mutate func(*Selection)
	}{
		{"no genre1", func(s *Selection) { s.Genre1 = "" }},
		{"no theme", func(s *Selection) { s.Theme = "" }},
		{"no rating", func(s *Selection) { s.Rating = "" }},
		{"no budget", func(s *Selection) { s.Budget = "" }},
		{"whitespace genre1", func(s *Selection) { s.Genre1 = "   " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sel := full
			tt.mutate(&sel)
			got, err := ComputeAffinity(c, sel)
			if err != nil || got != nil {
				t.Errorf("ComputeAffinity() = %v, %v; want nil, nil", got, err)
			}
		})
	}
}

func TestComputeAffinity_Errors(t *testing.T) {
	t.Parallel()

	c := affinityCatalog(t)

	_, err := ComputeAffinity(c, Selection{Genre1: "Western", Theme: "war", Rating: "PG-13", Budget: "Small"})
	if !errors.Is(err, ErrUnknownGenre) {
		t.Errorf("unknown genre1 error = %v, want ErrUnknownGenre", err)
	}

	_, err = ComputeAffinity(c, Selection{Genre1: "Action", Theme: "war", Rating: "PG-13", Budget: "Indie"})
	if !errors.Is(err, ErrUnknownBudgetTier) {
		t.Errorf("unknown budget error = %v, want ErrUnknownBudgetTier", err)
	}
}

func TestComputeAffinity_UnknownInputsContributeZero(t *testing.T) {
	t.Parallel()

	c := affinityCatalog(t)
	base := Selection{Genre1: "Action", Theme: "war", Rating: "PG-13", Budget: "Moderate"}

	want, err := ComputeAffinity(c, base)
	if err != nil {
		t.Fatalf("ComputeAffinity() error = %v", err)
	}

	withUnknownGenre2 := base
	withUnknownGenre2.Genre2 = "Western"
	got, err := ComputeAffinity(c, withUnknownGenre2)
	if err != nil {
		t.Fatalf("ComputeAffinity() error = %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unknown genre2 changed the result: %+v vs %+v", got, want)
	}

	unknownTheme := base
	unknownTheme.Theme = "romance"
	got, err = ComputeAffinity(c, unknownTheme)
	if err != nil {
		t.Fatalf("ComputeAffinity() error = %v", err)
	}
	if got.BaseScore != 1 {
		t.Errorf("BaseScore with unknown theme = %v, want 1", got.BaseScore)
	}
}

func TestComputeAffinity_Deterministic(t *testing.T) {
	t.Parallel()

	c, _, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	genres := c.Genres()
	themes := c.Themes().Keys()
	ratings := c.Ratings().Keys()

	for _, tier := range c.Tiers() {
		for i, g1 := range genres {
			sel := Selection{
				Genre1: g1,
				Genre2: genres[(i+3)%len(genres)],
				Theme:  themes[i%len(themes)],
				Rating: ratings[i%len(ratings)],
				Budget: tier.Name,
			}
			first, err := ComputeAffinity(c, sel)
			if err != nil {
				t.Fatalf("ComputeAffinity(%+v) error = %v", sel, err)
			}
			second, _ := ComputeAffinity(c, sel)
			if !reflect.DeepEqual(first, second) {
				t.Fatalf("ComputeAffinity(%+v) not deterministic", sel)
			}
			if len(first.Seasons) != c.Seasons().Len() {
				t.Errorf("len(Seasons) = %d, want %d", len(first.Seasons), c.Seasons().Len())
			}
			if !sort.SliceIsSorted(first.Seasons, func(a, b int) bool {
				return first.Seasons[a].Score > first.Seasons[b].Score
			}) {
				t.Errorf("seasons not sorted for %+v", sel)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    float64
		score    Label
		relative Label
	}{
		{0, LabelBad, LabelBad},
		{0.49, LabelBad, LabelBad},
		{0.5, LabelBad, LabelMedium},
		{1.49, LabelBad, LabelMedium},
		{1.5, LabelMedium, LabelGood},
		{2.49, LabelMedium, LabelGood},
		{2.5, LabelGood, LabelGreat},
		{3.49, LabelGood, LabelGreat},
		{3.5, LabelGreat, LabelGreat},
	}
	for _, tt := range tests {
		if got := ClassifyScore(tt.value); got != tt.score {
			t.Errorf("ClassifyScore(%v) = %q, want %q", tt.value, got, tt.score)
		}
		if got := ClassifyRelative(tt.value); got != tt.relative {
			t.Errorf("ClassifyRelative(%v) = %q, want %q", tt.value, got, tt.relative)
		}
	}
}
