// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package estimator turns a film selection into an affinity score, a production
effort plan and a list of recommended extra resources.

The computations are pure functions of a catalog.Catalog and their inputs:

  - ComputeAffinity: headline score, label and ranked release windows
  - ComputeProductionPlan: six planning values in multiples of 5, per group totals
    within [85, 100] before rounding
  - RecommendResources: extras filtered by planning, theme affinity and budget tier,
    topped up to the tier's minimum count
  - RankGenreOptions: ranked candidates for the two genre slots

Engine wraps them with a result cache, Prometheus metrics and zerolog logging.

# Debouncing

Interactive clients change the selection one field at a time. Debouncer delays the
affinity computation until the selection has been stable for the configured window
and guarantees that a superseded or cancelled task never delivers:

	d := engine.NewAffinityDebouncer()
	engine.ScheduleAffinity(ctx, d, sel, func(r *AffinityResult, err error) {
		// runs only for the latest task
	})

Usage:

	c, _, _ := catalog.Default()
	engine, err := estimator.NewEngine(c, estimator.DefaultConfig(), logger)
	est, err := engine.Estimate(ctx, estimator.Selection{
		Genre1: "ACTION", Theme: "WAR", Rating: "PG-13", Budget: "Large",
	})
*/
package estimator
