// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package cache provides a thread-safe, bounded LRU cache with TTL expiration.

It memoizes full estimates keyed by the normalized selection. Estimates are pure
functions of the catalog and the selection, so entries never need invalidation beyond
TTL and capacity eviction.

# Usage

	c := cache.NewLRU(1024, 10*time.Minute)

	key := cache.GenerateKey("estimate", selection)
	if v, ok := c.Get(key); ok {
	    return v.(*estimator.Estimate), nil
	}
	c.Set(key, estimate)

Expired entries are removed lazily on Get and in bulk by CleanupExpired, which the
supervised cache janitor calls on an interval.
*/
package cache
