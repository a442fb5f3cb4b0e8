// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" || cfg.Format != "json" || cfg.Caller || !cfg.Timestamp || cfg.Output == nil {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		emit    func(zerolog.Logger)
		want    []string
		notWant []string
	}{
		{
			name: "json with timestamp",
			cfg:  Config{Level: "debug", Format: "json", Timestamp: true},
			emit: func(l zerolog.Logger) { l.Debug().Str("genre", "ACTION").Msg("estimate computed") },
			want: []string{`"level":"debug"`, `"genre":"ACTION"`, `"message":"estimate computed"`, `"time":`},
		},
		{
			name:    "console",
			cfg:     Config{Level: "info", Format: "console"},
			emit:    func(l zerolog.Logger) { l.Info().Msg("console line") },
			want:    []string{"console line"},
			notWant: []string{`"message"`},
		},
		{
			name: "caller",
			cfg:  Config{Level: "info", Caller: true},
			emit: func(l zerolog.Logger) { l.Info().Msg("with caller") },
			want: []string{`"caller":`},
		},
		{
			name:    "level filtering",
			cfg:     Config{Level: "warn"},
			emit:    func(l zerolog.Logger) { l.Info().Msg("dropped"); l.Warn().Msg("kept") },
			want:    []string{"kept"},
			notWant: []string{"dropped", `"time":`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.cfg.Output = &buf
			tt.emit(New(tt.cfg))

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %s: %s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output contains %s: %s", w, out)
				}
			}
		})
	}
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { Init(DefaultConfig()) })

	var buf bytes.Buffer
	Init(Config{Level: "info", Output: &buf})

	Debug().Msg("hidden")
	Info().Str("component", "estimator").Msg("ready")
	Warn().Msg("careful")
	Error().Msg("failed")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug written at info level: %s", out)
	}
	for _, w := range []string{`"component":"estimator"`, "careful", "failed"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %s: %s", w, out)
		}
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{" ERROR ", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"panic", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
