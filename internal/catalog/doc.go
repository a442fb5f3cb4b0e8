// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package catalog holds the static reference data the estimator computes over.

A Catalog is built once at startup and never mutated afterwards. It contains:

  - the genre ordering, which defines the column index of every genre-indexed matrix
  - the theme, rating and genre-synergy relation matrices
  - the seasonal release-window matrix
  - the production-planning matrix (six planning categories)
  - the script scalar configuration
  - the budget-tier policy table
  - the feature catalog (feature sets and feature records)

# Loading

The default data ships embedded in the binary (data/*.json). An alternative directory
containing the same three files can be supplied with LoadDir:

	cat, violations, err := catalog.LoadDir("/etc/marquee/catalog")
	if err != nil {
	    return err
	}
	for _, v := range violations {
	    logger.Warn().Str("kind", string(v.Kind)).Msg(v.Detail)
	}

Structural problems (malformed JSON, missing sections, invalid categories) are returned
as errors. Integrity problems that only affect individual rows or records (a record
pointing at an unknown feature set, a matrix row shorter than the genre list) are
reported as Violations; the affected entries are skipped or read as zero at
computation time.

# Synthetic catalogs

Builder assembles a Catalog in memory through the same validation path, which keeps
the estimator computations testable without the embedded data:

	cat, _, err := catalog.NewBuilder("Action", "Drama").
	    Theme("war", 2, 1).
	    Rating("PG-13", 1, 0).
	    Synergy("Action", 0, 1).
	    Build()

# Thread Safety

A Catalog is immutable after construction and safe for concurrent use. Accessors return
copies of slices; maps inside FeatureRecord and FeatureSet values must be treated as
read-only by callers.
*/
package catalog
