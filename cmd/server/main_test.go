// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/marquee/internal/config"
)

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dir     string
		wantErr bool
	}{
		{"embedded", "", false},
		{"missing directory", t.TempDir() + "/absent", true},
		{"empty directory", t.TempDir(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cat, err := loadCatalog(tt.dir, zerolog.Nop())
			if (err != nil) != tt.wantErr {
				t.Fatalf("loadCatalog() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cat.Stats().Genres == 0 {
				t.Error("embedded catalog has no genres")
			}
		})
	}
}

func TestEstimatorConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Estimator.DebounceWindow = 250 * time.Millisecond
	cfg.Estimator.CacheEnabled = true
	cfg.Estimator.CacheTTL = time.Minute
	cfg.Estimator.CacheMaxEntries = 64

	got := estimatorConfig(cfg)
	if got.DebounceWindow != 250*time.Millisecond {
		t.Errorf("DebounceWindow = %v", got.DebounceWindow)
	}
	if !got.Cache.Enabled || got.Cache.TTL != time.Minute || got.Cache.MaxEntries != 64 {
		t.Errorf("Cache = %+v", got.Cache)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLiveSessionConfig(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{}
	cfg.Live.MaxSessions = 8
	cfg.Live.MessageRate = 5
	cfg.Live.MessageBurst = 10
	cfg.Live.MaxMessageSize = 2048
	cfg.Live.PingInterval = 20 * time.Second
	cfg.Live.PongTimeout = 30 * time.Second
	cfg.Live.WriteTimeout = 5 * time.Second

	got := liveSessionConfig(cfg)
	if got.MaxSessions != 8 || got.MessageRate != 5 || got.MessageBurst != 10 {
		t.Errorf("limits = %+v", got)
	}
	if got.MaxMessageSize != 2048 || got.PingInterval != 20*time.Second ||
		got.PongTimeout != 30*time.Second || got.WriteTimeout != 5*time.Second {
		t.Errorf("timeouts = %+v", got)
	}
	if got.SendBuffer != 0 {
		t.Errorf("SendBuffer = %d, want 0 so the hub default applies", got.SendBuffer)
	}
}
