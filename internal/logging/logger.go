// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	// Level is the minimum log level: trace, debug, info, warn, error, fatal.
	// Default: info
	Level string

	// Format is the output format: json or console.
	// Default: json
	Format string

	// Caller includes caller file and line number in logs.
	Caller bool

	// Timestamp adds a "time" field to every line.
	Timestamp bool

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the configuration used before Init is called.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Timestamp: true,
		Output:    os.Stderr,
	}
}

var (
	mu     sync.RWMutex
	global zerolog.Logger
)

//nolint:gochecknoinits // logging must work before Init runs
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFieldName = "time"
	global = New(DefaultConfig())
}

// New builds a logger from cfg without touching the global logger. The level is
// applied to the returned logger, not globally.
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(out).Level(parseLevel(cfg.Level)).With()
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	if cfg.Caller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// Init replaces the global logger. It may be called again to reconfigure.
func Init(cfg Config) {
	l := New(cfg)
	mu.Lock()
	global = l
	mu.Unlock()
}

// parseLevel maps a level name to zerolog. Empty or unknown names mean info.
func parseLevel(level string) zerolog.Level {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "warning" {
		return zerolog.WarnLevel
	}
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel || parsed == zerolog.PanicLevel {
		return zerolog.InfoLevel
	}
	return parsed
}

// Logger returns a copy of the global logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Debug starts a debug event on the global logger.
func Debug() *zerolog.Event {
	l := Logger()
	return l.Debug()
}

// Info starts an info event on the global logger.
func Info() *zerolog.Event {
	l := Logger()
	return l.Info()
}

// Warn starts a warn event on the global logger.
func Warn() *zerolog.Event {
	l := Logger()
	return l.Warn()
}

// Error starts an error event on the global logger.
func Error() *zerolog.Event {
	l := Logger()
	return l.Error()
}

// Fatal starts a fatal event. The process exits after Msg.
func Fatal() *zerolog.Event {
	l := Logger()
	return l.Fatal()
}
