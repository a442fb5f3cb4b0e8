// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const defaultCleanupInterval = time.Minute

// CacheCleaner is satisfied by *estimator.Engine.
type CacheCleaner interface {
	// CleanupCache drops expired entries and returns how many were removed.
	CleanupCache() int
}

// CacheJanitorService periodically evicts expired estimate cache entries.
type CacheJanitorService struct {
	cleaner  CacheCleaner
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates a janitor running every interval. A
// non-positive interval means one minute.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(cleaner CacheCleaner, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	return &CacheJanitorService{
		cleaner:  cleaner,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	s.logger.Debug().Dur("interval", s.interval).Msg("cache janitor starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final pass so the cache size gauge is current at exit.
			s.cleaner.CleanupCache()
			return ctx.Err()
		case <-ticker.C:
			if removed := s.cleaner.CleanupCache(); removed > 0 {
				s.logger.Debug().Int("removed", removed).Msg("evicted expired estimates")
			}
		}
	}
}

// String implements fmt.Stringer for suture events.
func (s *CacheJanitorService) String() string {
	return s.name
}
