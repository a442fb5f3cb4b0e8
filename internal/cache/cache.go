// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Stats reports cache performance counters.
type Stats struct {
	Hits        int64     `json:"hits"`
	Misses      int64     `json:"misses"`
	Evictions   int64     `json:"evictions"`
	Size        int       `json:"size"`
	Capacity    int       `json:"capacity"`
	LastCleanup time.Time `json:"last_cleanup,omitempty"`
}

// HitRate returns hits as a percentage of lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100.0
}

// GenerateKey builds a compact cache key from a prefix and the JSON encoding of params.
// Equal params always produce equal keys.
func GenerateKey(prefix string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", prefix, params)
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", prefix, hash[:16])
}
