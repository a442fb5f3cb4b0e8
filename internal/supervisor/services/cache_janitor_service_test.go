// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/marquee/internal/estimator"
)

type mockCacheCleaner struct {
	calls   atomic.Int32
	removed int
}

func (m *mockCacheCleaner) CleanupCache() int {
	m.calls.Add(1)
	return m.removed
}

func TestCacheJanitorService_Interface(t *testing.T) {
	var _ suture.Service = (*CacheJanitorService)(nil)
	var _ CacheCleaner = (*estimator.Engine)(nil)
}

func TestNewCacheJanitorService_DefaultInterval(t *testing.T) {
	t.Parallel()

	for _, interval := range []time.Duration{0, -time.Second} {
		svc := NewCacheJanitorService(&mockCacheCleaner{}, interval, zerolog.Nop())
		if svc.interval != time.Minute {
			t.Errorf("interval(%v) = %v, want 1m", interval, svc.interval)
		}
	}
	if got := NewCacheJanitorService(&mockCacheCleaner{}, time.Second, zerolog.Nop()).String(); got != "cache-janitor" {
		t.Errorf("String() = %q, want cache-janitor", got)
	}
}

func TestCacheJanitorService_Serve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		interval time.Duration
		runFor   time.Duration
		minCalls int32
	}{
		// ticks at 20, 40, 60, 80ms plus the final pass
		{"periodic cleanup", 20 * time.Millisecond, 90 * time.Millisecond, 3},
		{"final pass only", time.Hour, 30 * time.Millisecond, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cleaner := &mockCacheCleaner{removed: 2}
			svc := NewCacheJanitorService(cleaner, tt.interval, zerolog.Nop())

			ctx, cancel := context.WithTimeout(context.Background(), tt.runFor)
			defer cancel()

			if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
			}
			if got := cleaner.calls.Load(); got < tt.minCalls {
				t.Errorf("CleanupCache called %d times, want >= %d", got, tt.minCalls)
			}
		})
	}
}
