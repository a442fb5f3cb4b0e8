// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/validation"
)

// Catalog file names, relative to the catalog directory.
const (
	AffinitiesFile = "affinities.json"
	BudgetsFile    = "budgets.json"
	FeaturesFile   = "features.json"
)

//go:embed data/*.json
var embedded embed.FS

// matrixFile is the on-disk shape of a relation matrix. Order fixes row order since
// JSON objects carry none.
type matrixFile struct {
	Order []string             `json:"order"`
	Items map[string][]float64 `json:"items" validate:"required"`
}

type affinitiesFile struct {
	Genres             []string     `json:"genres" validate:"required,min=1,unique,dive,required"`
	GenreRelations     matrixFile   `json:"genreRelations"`
	ThematicRelations  matrixFile   `json:"thematicRelations"`
	RatingImpact       matrixFile   `json:"ratingImpact"`
	SeasonalWindows    matrixFile   `json:"seasonalWindows"`
	ProductionPlanning matrixFile   `json:"productionPlanning"`
	ScriptConfig       ScriptConfig `json:"scriptConfig"`
}

type tierFile struct {
	Name                  string  `json:"name" validate:"required"`
	Key                   string  `json:"key" validate:"required"`
	ScoreMultiplier       float64 `json:"scoreMultiplier" validate:"gt=0"`
	AllowedAffinityLevels []int   `json:"allowedAffinityLevels" validate:"required,min=1,dive,min=0,max=3"`
	MinimumCount          int     `json:"minimumCount" validate:"gte=0"`
}

type budgetsFile struct {
	Tiers []tierFile `json:"tiers" validate:"required,min=1,dive"`
}

type featuresBody struct {
	LocPrefix       string                   `json:"loc-prefix"`
	IconPrefix      string                   `json:"icon-prefix"`
	FeaturePoolBase int                      `json:"feature-pool-base"`
	ScoreReqOffsets []float64                `json:"score-req-offsets"`
	ComplexityReq   map[string]int           `json:"complexity-req" validate:"required"`
	Sets            map[string]FeatureSet    `json:"sets" validate:"required,dive"`
	Records         map[string]FeatureRecord `json:"records" validate:"required,dive"`
}

type featuresFile struct {
	Features featuresBody `json:"features"`
}

// rawCatalog is the decoded, not yet validated content of the three catalog files.
type rawCatalog struct {
	affinities affinitiesFile
	budgets    budgetsFile
	features   featuresFile
}

// Default loads the catalog embedded in the binary.
func Default() (*Catalog, []Violation, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open embedded catalog: %w", err)
	}
	return LoadFS(sub)
}

// LoadDir loads the catalog from a directory on disk.
func LoadDir(dir string) (*Catalog, []Violation, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("catalog directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("catalog path %s is not a directory", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS loads the catalog files from fsys.
func LoadFS(fsys fs.FS) (*Catalog, []Violation, error) {
	var raw rawCatalog
	if err := decodeFile(fsys, AffinitiesFile, &raw.affinities); err != nil {
		return nil, nil, err
	}
	if err := decodeFile(fsys, BudgetsFile, &raw.budgets); err != nil {
		return nil, nil, err
	}
	if err := decodeFile(fsys, FeaturesFile, &raw.features); err != nil {
		return nil, nil, err
	}
	return assemble(&raw)
}

func decodeFile(fsys fs.FS, name string, dst interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// assemble validates the raw files and builds the immutable Catalog. Structural errors
// abort; per-entry problems are collected as violations.
func assemble(raw *rawCatalog) (*Catalog, []Violation, error) {
	if verr := validation.ValidateStruct(&raw.affinities); verr != nil {
		return nil, nil, fmt.Errorf("invalid %s: %w", AffinitiesFile, verr)
	}
	if verr := validation.ValidateStruct(&raw.budgets); verr != nil {
		return nil, nil, fmt.Errorf("invalid %s: %w", BudgetsFile, verr)
	}
	if verr := validation.ValidateStruct(&raw.features); verr != nil {
		return nil, nil, fmt.Errorf("invalid %s: %w", FeaturesFile, verr)
	}

	var ic integrityChecker
	a := raw.affinities

	c := &Catalog{
		genres:     append([]string(nil), a.Genres...),
		genreIndex: make(map[string]int, len(a.Genres)),
		script:     a.ScriptConfig,
	}
	for i, g := range c.genres {
		c.genreIndex[g] = i
	}
	cols := len(c.genres)

	c.themes = ic.matrix("thematicRelations", a.ThematicRelations, cols)
	c.ratings = ic.matrix("ratingImpact", a.RatingImpact, cols)
	c.seasons = ic.matrix("seasonalWindows", a.SeasonalWindows, cols)
	c.synergy = ic.matrix("genreRelations", a.GenreRelations, cols)
	c.planning = ic.matrix("productionPlanning", a.ProductionPlanning, cols)
	ic.synergyRows(c.synergy, c.genreIndex)
	ic.planningRows(c.planning)

	f := raw.features.Features
	c.meta = FeatureMeta{
		LocPrefix:       f.LocPrefix,
		IconPrefix:      f.IconPrefix,
		FeaturePoolBase: f.FeaturePoolBase,
		ScoreReqOffsets: append([]float64(nil), f.ScoreReqOffsets...),
		ComplexityReq:   copyIntMap(f.ComplexityReq),
	}

	c.tiers = make([]BudgetTier, 0, len(raw.budgets.Tiers))
	for _, t := range raw.budgets.Tiers {
		maxComplexity, ok := f.ComplexityReq[t.Key]
		if !ok {
			ic.add(ViolationMissingComplexity, t.Name,
				fmt.Sprintf("no complexity requirement for budget key %q", t.Key))
		}
		c.tiers = append(c.tiers, BudgetTier{
			Name:                  t.Name,
			Key:                   t.Key,
			ScoreMultiplier:       t.ScoreMultiplier,
			MaxComplexity:         maxComplexity,
			AllowedAffinityLevels: append([]int(nil), t.AllowedAffinityLevels...),
			MinimumCount:          t.MinimumCount,
		})
	}

	c.sets = make(map[string]FeatureSet, len(f.Sets))
	for id, s := range f.Sets {
		s.ID = id
		c.sets[id] = s
	}
	c.setIDs = sortedSetIDs(c.sets)

	c.records = ic.records(f.Records, c.sets)
	c.violations = len(ic.violations)

	return c, ic.violations, nil
}

func copyIntMap(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
