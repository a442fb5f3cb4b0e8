// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"fmt"
	"sort"
)

// ViolationKind classifies a catalog integrity problem.
type ViolationKind string

const (
	// ViolationColumnCount marks a matrix row whose length differs from the genre list.
	ViolationColumnCount ViolationKind = "column_count"
	// ViolationUnorderedRow marks a matrix row missing from the matrix order list.
	ViolationUnorderedRow ViolationKind = "unordered_row"
	// ViolationUnknownRow marks an order entry with no matching row.
	ViolationUnknownRow ViolationKind = "unknown_row"
	// ViolationUnknownGenre marks a synergy row keyed by a genre outside the genre list.
	ViolationUnknownGenre ViolationKind = "unknown_genre"
	// ViolationPlanningCategory marks an unknown or missing planning matrix row.
	ViolationPlanningCategory ViolationKind = "planning_category"
	// ViolationMissingComplexity marks a budget tier without a complexity requirement.
	ViolationMissingComplexity ViolationKind = "missing_complexity"
	// ViolationMissingSet marks a feature record whose set does not exist.
	ViolationMissingSet ViolationKind = "missing_feature_set"
	// ViolationPlanningGroup marks a planning requirement outside the record's group.
	ViolationPlanningGroup ViolationKind = "planning_group"
	// ViolationAffinityRange marks a theme affinity level outside [0,3].
	ViolationAffinityRange ViolationKind = "affinity_range"
)

// MaxAffinityLevel is the highest theme affinity level a feature record may carry.
const MaxAffinityLevel = 3

// Violation describes one integrity problem found while assembling the catalog.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Subject string        `json:"subject"`
	Detail  string        `json:"detail"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s %s: %s", v.Kind, v.Subject, v.Detail)
}

type integrityChecker struct {
	violations []Violation
}

func (ic *integrityChecker) add(kind ViolationKind, subject, detail string) {
	ic.violations = append(ic.violations, Violation{Kind: kind, Subject: subject, Detail: detail})
}

// matrix builds a Matrix, fixing row order and flagging rows whose column count does not
// match the genre list. Short rows are kept; their missing cells read as zero.
func (ic *integrityChecker) matrix(name string, mf matrixFile, cols int) Matrix {
	rows := make(map[string][]float64, len(mf.Items))
	keys := make([]string, 0, len(mf.Items))
	seen := make(map[string]bool, len(mf.Items))

	for _, key := range mf.Order {
		_, ok := mf.Items[key]
		if !ok {
			ic.add(ViolationUnknownRow, name+"."+key, "listed in order but has no row")
			continue
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		keys = append(keys, key)
	}

	var unordered []string
	for key := range mf.Items {
		if !seen[key] {
			unordered = append(unordered, key)
		}
	}
	sort.Strings(unordered)
	for _, key := range unordered {
		if len(mf.Order) > 0 {
			ic.add(ViolationUnorderedRow, name+"."+key, "row missing from order list, appended")
		}
		keys = append(keys, key)
	}

	for _, key := range keys {
		row := mf.Items[key]
		if len(row) != cols {
			ic.add(ViolationColumnCount, name+"."+key,
				fmt.Sprintf("has %d columns, expected %d", len(row), cols))
		}
		rows[key] = append([]float64(nil), row...)
	}

	return newMatrix(keys, rows)
}

func (ic *integrityChecker) synergyRows(m Matrix, genreIndex map[string]int) {
	for _, key := range m.keys {
		if _, ok := genreIndex[key]; !ok {
			ic.add(ViolationUnknownGenre, "genreRelations."+key, "row key is not a catalog genre")
		}
	}
}

func (ic *integrityChecker) planningRows(m Matrix) {
	for _, key := range m.keys {
		if GroupOf(key) == "" {
			ic.add(ViolationPlanningCategory, "productionPlanning."+key, "not a planning category")
		}
	}
	for _, category := range PlanningCategories() {
		if !m.Has(category) {
			ic.add(ViolationPlanningCategory, "productionPlanning."+category, "missing row, reads as zero")
		}
	}
}

// records returns the feature records sorted by id. Records with unresolved sets are
// kept and flagged; consumers skip them.
func (ic *integrityChecker) records(in map[string]FeatureRecord, sets map[string]FeatureSet) []FeatureRecord {
	ids := make([]string, 0, len(in))
	for id := range in {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]FeatureRecord, 0, len(ids))
	for _, id := range ids {
		r := in[id]
		r.ID = id

		set, ok := sets[r.SetID]
		if !ok {
			ic.add(ViolationMissingSet, id, fmt.Sprintf("feature set %q does not exist", r.SetID))
		} else {
			for category := range r.PlanningReqs {
				if GroupOf(category) != set.Category {
					ic.add(ViolationPlanningGroup, id,
						fmt.Sprintf("planning requirement %q is outside %s", category, set.Category))
				}
			}
		}

		for theme, level := range r.ThemeAffinity {
			if level < 0 || level > MaxAffinityLevel {
				ic.add(ViolationAffinityRange, id,
					fmt.Sprintf("theme %q level %d outside [0,%d]", theme, level, MaxAffinityLevel))
			}
		}

		out = append(out, r)
	}
	return out
}
