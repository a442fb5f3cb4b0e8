// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"strconv"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestLRU(capacity int, ttl time.Duration) (*LRU, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU(capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRU_GetSet(t *testing.T) {
	t.Parallel()

	c, _ := newTestLRU(3, time.Minute)
	c.Set("a", 1)
	c.Set("b", "two")

	if v, ok := c.Get("a"); !ok || v.(int) != 1 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}
	if v, ok := c.Get("b"); !ok || v.(string) != "two" {
		t.Errorf("Get(b) = %v, %v", v, ok)
	}
	if _, ok := c.Get("c"); ok {
		t.Error("Get(c) should miss")
	}

	c.Set("a", 10)
	if v, _ := c.Get("a"); v.(int) != 10 {
		t.Errorf("Get(a) after update = %v", v)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	t.Parallel()

	c, _ := newTestLRU(3, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.Get("a")
	c.Set("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted as least recently used")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s should still be cached", key)
		}
	}
	if got := c.Stats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestLRU_Expiry(t *testing.T) {
	t.Parallel()

	c, clock := newTestLRU(10, time.Minute)
	c.Set("old", 1)
	clock.Advance(30 * time.Second)
	c.Set("new", 2)
	clock.Advance(45 * time.Second)

	if _, ok := c.Get("old"); ok {
		t.Error("old should have expired")
	}
	if _, ok := c.Get("new"); !ok {
		t.Error("new should still be valid")
	}

	clock.Advance(time.Minute)
	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if c.Stats().LastCleanup.IsZero() {
		t.Error("LastCleanup not recorded")
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	t.Parallel()

	c, _ := newTestLRU(10, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	if !c.Remove("a") {
		t.Error("Remove(a) = false")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	c.Set("c", 3)
	if _, ok := c.Get("c"); !ok {
		t.Error("cache unusable after Clear")
	}
}

func TestLRU_Defaults(t *testing.T) {
	t.Parallel()

	c := NewLRU(0, 0)
	if c.capacity != DefaultCapacity || c.ttl != DefaultTTL {
		t.Errorf("defaults = %d, %v", c.capacity, c.ttl)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewLRU(50, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := strconv.Itoa((g*31 + i) % 80)
				c.Set(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 50 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
	stats := c.Stats()
	if stats.Hits+stats.Misses != 1600 {
		t.Errorf("lookups = %d, want 1600", stats.Hits+stats.Misses)
	}
}
