// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"sync"
	"time"
)

// Defaults applied by NewLRU for non-positive arguments.
const (
	DefaultCapacity = 1024
	DefaultTTL      = 10 * time.Minute
)

type lruEntry struct {
	key       string
	value     interface{}
	expiresAt time.Time
	prev      *lruEntry
	next      *lruEntry
}

// LRU is a thread-safe least recently used cache with per-entry expiry.
// Get, Set and Remove are O(1).
type LRU struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time

	items map[string]*lruEntry
	// head.next is the most recently used entry, tail.prev the least.
	head *lruEntry
	tail *lruEntry

	hits        int64
	misses      int64
	evictions   int64
	lastCleanup time.Time
}

// NewLRU creates a cache holding at most capacity entries for ttl each.
func NewLRU(capacity int, ttl time.Duration) *LRU {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &LRU{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*lruEntry, capacity),
		head:     &lruEntry{},
		tail:     &lruEntry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key if present and not expired, marking it most recently
// used.
func (c *LRU) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.removeEntry(entry)
		c.evictions++
		c.misses++
		return nil, false
	}

	c.moveToFront(entry)
	c.hits++
	return entry.value, true
}

// Set stores value under key, evicting the least recently used entry when full.
func (c *LRU) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)

	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
		return
	}

	entry := &lruEntry{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(entry)
	c.items[key] = entry

	for len(c.items) > c.capacity {
		oldest := c.tail.prev
		c.removeEntry(oldest)
		c.evictions++
	}
}

// Remove deletes key and reports whether it was present.
func (c *LRU) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		return false
	}
	c.removeEntry(entry)
	return true
}

// Len returns the number of entries, including expired ones not yet collected.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes every entry.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictions += int64(len(c.items))
	c.items = make(map[string]*lruEntry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// CleanupExpired removes all expired entries and returns how many were removed.
func (c *LRU) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			c.removeEntry(entry)
			removed++
		}
		entry = prev
	}
	c.evictions += int64(removed)
	c.lastCleanup = now
	return removed
}

// Stats returns a snapshot of the cache counters.
func (c *LRU) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Size:        len(c.items),
		Capacity:    c.capacity,
		LastCleanup: c.lastCleanup,
	}
}

// Internal list helpers; callers hold c.mu.

func (c *LRU) addToFront(entry *lruEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *LRU) moveToFront(entry *lruEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *LRU) removeEntry(entry *lruEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}
