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

// RecommendResources selects extra resources for a production plan.
//
// A record qualifies when at least one non-zero planning requirement of its group is
// met by the allocation, its theme affinity level is allowed by the budget tier and its
// complexity is within the tier's limit. Each list is ranked by affinity level
// descending, then set sort priority ascending, then record id. A list shorter
// than the tier's minimum count is topped up from the whole catalog with records that
// have a positive affinity level and acceptable complexity, in record id order, until the
// minimum is reached or the catalog is exhausted.
//
// Both lists are empty when any input is missing or the budget tier is unknown.
func RecommendResources(
	c *catalog.Catalog,
	prod *Production,
	post *PostProduction,
	budget, theme string,
) ResourceRecommendations {
	out := emptyRecommendations()

	budget, theme = strings.TrimSpace(budget), strings.TrimSpace(theme)
	if prod == nil || post == nil || budget == "" || theme == "" {
		return out
	}
	tier, ok := c.Tier(budget)
	if !ok {
		return out
	}

	records := c.Records()
	for i := range records {
		r := &records[i]
		set, ok := c.Set(r.SetID)
		if !ok {
			continue
		}
		if !meetsPlanning(r, set, prod, post) {
			continue
		}
		level := r.AffinityLevel(theme)
		if !tier.AllowsLevel(level) || r.Complexity > tier.MaxComplexity {
			continue
		}

		d := describe(r, set, level)
		switch set.Category {
		case catalog.PreProduction:
			out.ProductionExtras = append(out.ProductionExtras, d)
		case catalog.PostProduction:
			out.PostProductionExtras = append(out.PostProductionExtras, d)
		}
	}

	rankResources(out.ProductionExtras)
	rankResources(out.PostProductionExtras)

	out.ProductionExtras = backfill(c, records, out.ProductionExtras, tier, theme)
	out.PostProductionExtras = backfill(c, records, out.PostProductionExtras, tier, theme)
	return out
}

// meetsPlanning reports whether any requirement the record has for its own group's
// categories is met. A record without such a requirement never qualifies.
func meetsPlanning(r *catalog.FeatureRecord, set catalog.FeatureSet, prod *Production, post *PostProduction) bool {
	for _, category := range catalog.CategoriesFor(set.Category) {
		req := r.PlanningReqs[category]
		if req == 0 {
			continue
		}
		if have, _ := allocationOf(prod, post, category); have >= req {
			return true
		}
	}
	return false
}

func rankResources(list []ResourceDescriptor) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].AffinityLevel != list[j].AffinityLevel {
			return list[i].AffinityLevel > list[j].AffinityLevel
		}
		return list[i].SortPriority < list[j].SortPriority
	})
}

// backfill tops list up to the tier's minimum count. Candidates are not restricted to
// the list's production phase.
func backfill(
	c *catalog.Catalog,
	records []catalog.FeatureRecord,
	list []ResourceDescriptor,
	tier catalog.BudgetTier,
	theme string,
) []ResourceDescriptor {
	if len(list) >= tier.MinimumCount {
		return list
	}

	included := make(map[string]struct{}, len(list))
	for _, d := range list {
		included[d.ID] = struct{}{}
	}

	for i := range records {
		if len(list) >= tier.MinimumCount {
			break
		}
		r := &records[i]
		if _, dup := included[r.ID]; dup {
			continue
		}
		set, ok := c.Set(r.SetID)
		if !ok {
			continue
		}
		level := r.AffinityLevel(theme)
		if level <= 0 || r.Complexity > tier.MaxComplexity {
			continue
		}

		d := describe(r, set, level)
		d.Backfilled = true
		list = append(list, d)
		included[r.ID] = struct{}{}
	}
	return list
}

func describe(r *catalog.FeatureRecord, set catalog.FeatureSet, level int) ResourceDescriptor {
	return ResourceDescriptor{
		ID:            r.ID,
		NameKey:       r.NameKey,
		SetID:         r.SetID,
		Category:      set.Category,
		Cost:          copyCounts(r.Cost),
		Complexity:    r.Complexity,
		PlanningReqs:  copyCounts(r.PlanningReqs),
		SortPriority:  set.SortPriority,
		AffinityLevel: level,
	}
}

// copyCounts returns a copy of m; a nil map becomes an empty one.
func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
