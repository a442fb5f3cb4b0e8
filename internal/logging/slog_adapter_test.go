// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSlogHandler_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     slog.Level
		wantLevel string
	}{
		{"info level", slog.LevelInfo, `"level":"info"`},
		{"warn level", slog.LevelWarn, `"level":"warn"`},
		{"error level", slog.LevelError, `"level":"error"`},
		{"above error", slog.LevelError + 4, `"level":"error"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			handler := NewSlogHandler(zerolog.New(&buf))

			record := slog.NewRecord(time.Now(), tt.level, "service restarted", 0)
			if err := handler.Handle(context.Background(), record); err != nil {
				t.Fatalf("Handle() error = %v", err)
			}

			output := buf.String()
			if !strings.Contains(output, tt.wantLevel) {
				t.Errorf("Handle() output missing %s: %s", tt.wantLevel, output)
			}
			if !strings.Contains(output, "service restarted") {
				t.Errorf("Handle() output missing message: %s", output)
			}
		})
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	handler := NewSlogHandler(zerolog.New(nil).Level(zerolog.WarnLevel))
	ctx := context.Background()

	if handler.Enabled(ctx, slog.LevelInfo) {
		t.Error("info should be disabled for a warn logger")
	}
	if !handler.Enabled(ctx, slog.LevelWarn) || !handler.Enabled(ctx, slog.LevelError) {
		t.Error("warn and error should be enabled for a warn logger")
	}
}

func TestSlogHandler_Attributes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	slogger := NewSlogLogger(zerolog.New(&buf))

	slogger.With("supervisor", "marquee").WithGroup("event").Info("service failed",
		"service", "http",
		"restarts", 3,
		"backoff", 2*time.Second,
		"terminal", false,
		"ratio", 0.5,
		"err", errors.New("listen: address in use"),
		slog.Group("window", "size", uint64(10)),
	)

	output := buf.String()
	for _, want := range []string{
		`"supervisor":"marquee"`,
		`"event.service":"http"`,
		`"event.restarts":3`,
		`"event.terminal":false`,
		`"event.ratio":0.5`,
		`"event.err":"listen: address in use"`,
		`"event.window.size":10`,
		`"event.backoff":`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output: %s", want, output)
		}
	}
}

func TestSlogHandler_WithAttrsAndGroupReuse(t *testing.T) {
	t.Parallel()

	handler := NewSlogHandler(zerolog.Nop())

	if got := handler.WithAttrs(nil); got != handler {
		t.Error("WithAttrs(nil) should return the same handler")
	}
	if got := handler.WithGroup(""); got != handler {
		t.Error("WithGroup(\"\") should return the same handler")
	}

	child := handler.WithAttrs([]slog.Attr{slog.String("a", "1")}).(*SlogHandler)
	if len(handler.attrs) != 0 || len(child.attrs) != 1 {
		t.Errorf("WithAttrs mutated parent: parent=%d child=%d", len(handler.attrs), len(child.attrs))
	}
}

func TestSlogToZerologLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   slog.Level
		want zerolog.Level
	}{
		{slog.LevelDebug - 4, zerolog.TraceLevel},
		{slog.LevelDebug, zerolog.DebugLevel},
		{slog.LevelInfo, zerolog.InfoLevel},
		{slog.LevelInfo + 2, zerolog.InfoLevel},
		{slog.LevelWarn, zerolog.WarnLevel},
		{slog.LevelError, zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		if got := slogToZerologLevel(tt.in); got != tt.want {
			t.Errorf("slogToZerologLevel(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
