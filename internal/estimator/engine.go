// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package estimator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/catalog"
	"github.com/tomtom215/marquee/internal/metrics"
)

// Metric label values for the computations and recommendation lists.
const (
	computationAffinity     = "affinity"
	computationProduction   = "production"
	computationResources    = "resources"
	computationEstimate     = "estimate"
	computationGenreOptions = "genre_options"

	listProduction     = "production"
	listPostProduction = "post_production"

	cacheTypeEstimate = "estimate"
)

// Engine binds the pure estimator functions to a catalog and adds caching, metrics and
// logging. It is safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	config  *Config
	logger  zerolog.Logger

	// nil when caching is disabled
	cache *cache.LRU

	computations atomic.Int64
	notReady     atomic.Int64
	errorCount   atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
}

// Metrics is a snapshot of the engine's counters.
type Metrics struct {
	Computations int64 `json:"computations"`
	NotReady     int64 `json:"not_ready"`
	ErrorCount   int64 `json:"error_count"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	CacheSize    int   `json:"cache_size"`
}

// NewEngine creates an engine over a loaded catalog.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(c *catalog.Catalog, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if c == nil {
		return nil, errors.New("catalog is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		catalog: c,
		config:  cfg.Clone(),
		logger:  logger.With().Str("component", "estimator").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// Catalog returns the catalog the engine computes against.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *Config { return e.config.Clone() }

// ComputeAffinity scores a selection. See the package-level ComputeAffinity.
func (e *Engine) ComputeAffinity(sel Selection) (*AffinityResult, error) {
	start := time.Now()
	result, err := ComputeAffinity(e.catalog, sel)
	e.record(computationAffinity, start, result != nil, err)
	return result, err
}

// ComputeProductionPlan allocates planning effort for the selected genres.
func (e *Engine) ComputeProductionPlan(genre1, genre2 string) *ProductionPlan {
	start := time.Now()
	plan := ComputeProductionPlan(e.catalog, genre1, genre2)
	e.record(computationProduction, start, plan != nil, nil)
	return plan
}

// RecommendResources recommends extra resources for a plan. A nil plan yields empty
// lists.
func (e *Engine) RecommendResources(plan *ProductionPlan, budget, theme string) ResourceRecommendations {
	start := time.Now()
	if plan == nil {
		e.record(computationResources, start, false, nil)
		return emptyRecommendations()
	}

	recs := RecommendResources(e.catalog, &plan.Production, &plan.PostProduction, budget, theme)
	e.record(computationResources, start, true, nil)
	metrics.RecordRecommendations(listProduction, len(recs.ProductionExtras), countBackfilled(recs.ProductionExtras))
	metrics.RecordRecommendations(listPostProduction, len(recs.PostProductionExtras), countBackfilled(recs.PostProductionExtras))
	return recs
}

// GenreOptions ranks the genre candidates for both genre slots.
func (e *Engine) GenreOptions(theme, genre1, genre2 string) GenreOptions {
	start := time.Now()
	opts := RankGenreOptions(e.catalog, theme, genre1, genre2)
	e.record(computationGenreOptions, start, true, nil)
	return opts
}

// Estimate runs every computation for a selection. A partial selection returns the
// parts that can be computed with Ready false. A genre1 or budget that is set but not
// in the catalog is an error.
//
// Results are cached by selection. The returned Estimate may be shared and must not
// be modified.
//
//nolint:gocritic // hugeParam: sel passed by value for immutability
func (e *Engine) Estimate(ctx context.Context, sel Selection) (*Estimate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	sel = sel.Normalize()
	logger := e.createRequestLogger(sel)

	if err := e.checkSelection(sel); err != nil {
		e.record(computationEstimate, start, false, err)
		logger.Debug().Err(err).Msg("rejected selection")
		return nil, err
	}

	key := cache.GenerateKey(computationEstimate, sel)
	if est := e.tryGetCached(key); est != nil {
		logger.Debug().Msg("cache hit")
		return est, nil
	}

	affinity, err := e.ComputeAffinity(sel)
	if err != nil {
		e.record(computationEstimate, start, false, err)
		return nil, err
	}
	plan := e.ComputeProductionPlan(sel.Genre1, sel.Genre2)
	est := &Estimate{
		Selection: sel,
		Ready:     affinity != nil,
		Affinity:  affinity,
		Plan:      plan,
		Resources: e.RecommendResources(plan, sel.Budget, sel.Theme),
	}

	e.storeCached(key, est)
	e.record(computationEstimate, start, est.Ready, nil)

	logger.Debug().
		Bool("ready", est.Ready).
		Int("production_extras", len(est.Resources.ProductionExtras)).
		Int("post_production_extras", len(est.Resources.PostProductionExtras)).
		Dur("elapsed", time.Since(start)).
		Msg("estimate complete")

	return est, nil
}

// checkSelection rejects selection values that are set but unknown to the catalog.
//
//nolint:gocritic // hugeParam: sel passed by value for immutability
func (e *Engine) checkSelection(sel Selection) error {
	if sel.Genre1 != "" {
		if _, ok := e.catalog.GenreIndex(sel.Genre1); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownGenre, sel.Genre1)
		}
	}
	if sel.Budget != "" {
		if _, ok := e.catalog.Tier(sel.Budget); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownBudgetTier, sel.Budget)
		}
	}
	return nil
}

// NewAffinityDebouncer returns a debouncer using the configured window whose task
// outcomes are exported as metrics.
func (e *Engine) NewAffinityDebouncer() *Debouncer[*AffinityResult] {
	return NewDebouncer[*AffinityResult](e.config.DebounceWindow, func(o Outcome) {
		metrics.RecordDebounceOutcome(o.String())
	})
}

// ScheduleAffinity schedules an affinity computation for sel on d.
//
//nolint:gocritic // hugeParam: sel passed by value for immutability
func (e *Engine) ScheduleAffinity(
	ctx context.Context,
	d *Debouncer[*AffinityResult],
	sel Selection,
	deliver func(*AffinityResult, error),
) *Task {
	return d.Schedule(ctx, func(context.Context) (*AffinityResult, error) {
		return e.ComputeAffinity(sel)
	}, deliver)
}

// CleanupCache drops expired cache entries and returns how many were removed.
func (e *Engine) CleanupCache() int {
	if e.cache == nil {
		return 0
	}
	removed := e.cache.CleanupExpired()
	metrics.RecordCacheCleanup(cacheTypeEstimate, removed, e.cache.Len())
	if removed > 0 {
		e.logger.Debug().Int("removed", removed).Msg("expired estimate cache entries")
	}
	return removed
}

// CacheStats returns the result cache statistics, or zero stats when caching is
// disabled.
func (e *Engine) CacheStats() cache.Stats {
	if e.cache == nil {
		return cache.Stats{}
	}
	return e.cache.Stats()
}

// GetMetrics returns a snapshot of the engine counters.
func (e *Engine) GetMetrics() Metrics {
	m := Metrics{
		Computations: e.computations.Load(),
		NotReady:     e.notReady.Load(),
		ErrorCount:   e.errorCount.Load(),
		CacheHits:    e.cacheHits.Load(),
		CacheMisses:  e.cacheMisses.Load(),
	}
	if e.cache != nil {
		m.CacheSize = e.cache.Len()
	}
	return m
}

//nolint:gocritic // hugeParam: sel passed by value for immutability
func (e *Engine) createRequestLogger(sel Selection) zerolog.Logger {
	return e.logger.With().
		Str("genre1", sel.Genre1).
		Str("genre2", sel.Genre2).
		Str("theme", sel.Theme).
		Str("rating", sel.Rating).
		Str("budget", sel.Budget).
		Logger()
}

func (e *Engine) tryGetCached(key string) *Estimate {
	if e.cache == nil {
		return nil
	}
	v, ok := e.cache.Get(key)
	metrics.RecordCacheLookup(cacheTypeEstimate, ok)
	if !ok {
		e.cacheMisses.Add(1)
		return nil
	}
	e.cacheHits.Add(1)
	est, _ := v.(*Estimate)
	return est
}

func (e *Engine) storeCached(key string, est *Estimate) {
	if e.cache != nil {
		e.cache.Set(key, est)
	}
}

// record updates the engine counters and exports the computation metric.
func (e *Engine) record(computation string, start time.Time, ready bool, err error) {
	e.computations.Add(1)

	outcome := metrics.OutcomeOK
	switch {
	case errors.Is(err, ErrUnknownGenre):
		outcome = metrics.OutcomeUnknownGenre
		e.errorCount.Add(1)
	case err != nil:
		outcome = metrics.OutcomeError
		e.errorCount.Add(1)
	case !ready:
		outcome = metrics.OutcomeNotReady
		e.notReady.Add(1)
	}
	metrics.RecordComputation(computation, outcome, time.Since(start))
}

func countBackfilled(list []ResourceDescriptor) int {
	n := 0
	for i := range list {
		if list[i].Backfilled {
			n++
		}
	}
	return n
}
