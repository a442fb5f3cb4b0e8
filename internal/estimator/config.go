// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package estimator

import (
	"fmt"
	"time"
)

// Config controls the estimator engine.
type Config struct {
	// DebounceWindow is the quiet period a live session waits after a selection
	// change before recomputing the affinity score.
	DebounceWindow time.Duration `json:"debounce_window"`

	// Cache configures the estimate result cache.
	Cache CacheConfig `json:"cache"`
}

// CacheConfig configures the estimate result cache.
type CacheConfig struct {
	Enabled    bool          `json:"enabled"`
	TTL        time.Duration `json:"ttl"`
	MaxEntries int           `json:"max_entries"`
}

// MaxDebounceWindow bounds DebounceWindow.
const MaxDebounceWindow = 5 * time.Second

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		DebounceWindow: 300 * time.Millisecond,
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        10 * time.Minute,
			MaxEntries: 1024,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.DebounceWindow < 0 || c.DebounceWindow > MaxDebounceWindow {
		return fmt.Errorf("debounce_window must be in [0, %s], got %s", MaxDebounceWindow, c.DebounceWindow)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %s", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	return &Config{
		DebounceWindow: c.DebounceWindow,
		Cache:          c.Cache,
	}
}
