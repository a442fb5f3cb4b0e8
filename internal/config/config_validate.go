// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that the configuration is complete and within bounds.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateEstimator(); err != nil {
		return err
	}

	if err := c.validateLive(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Estimator bounds
const (
	maxDebounceWindow    = 5 * time.Second
	maxCacheEntries      = 1 << 20
	minCacheCleanupEvery = time.Second
)

func (c *Config) validateEstimator() error {
	e := c.Estimator
	if e.DebounceWindow < 0 || e.DebounceWindow > maxDebounceWindow {
		return fmt.Errorf("DEBOUNCE_WINDOW must be between 0 and %v", maxDebounceWindow)
	}
	if !e.CacheEnabled {
		return nil
	}
	if e.CacheTTL <= 0 {
		return fmt.Errorf("ESTIMATE_CACHE_TTL must be positive when the cache is enabled")
	}
	if e.CacheMaxEntries < 1 || e.CacheMaxEntries > maxCacheEntries {
		return fmt.Errorf("ESTIMATE_CACHE_MAX_ENTRIES must be between 1 and %d", maxCacheEntries)
	}
	if e.CacheCleanupInterval < minCacheCleanupEvery {
		return fmt.Errorf("ESTIMATE_CACHE_CLEANUP_INTERVAL must be at least %v", minCacheCleanupEvery)
	}
	return nil
}

func (c *Config) validateLive() error {
	l := c.Live
	if !l.Enabled {
		return nil
	}
	if l.MaxSessions < 1 {
		return fmt.Errorf("LIVE_MAX_SESSIONS must be positive")
	}
	if l.MessageRate <= 0 {
		return fmt.Errorf("LIVE_MESSAGE_RATE must be positive")
	}
	if l.MessageBurst < 1 {
		return fmt.Errorf("LIVE_MESSAGE_BURST must be positive")
	}
	if l.MaxMessageSize < 64 {
		return fmt.Errorf("LIVE_MAX_MESSAGE_SIZE must be at least 64 bytes")
	}
	if l.PingInterval <= 0 || l.PongTimeout <= l.PingInterval {
		return fmt.Errorf("LIVE_PONG_TIMEOUT must be greater than LIVE_PING_INTERVAL")
	}
	if l.WriteTimeout <= 0 {
		return fmt.Errorf("LIVE_WRITE_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	for _, entry := range c.Security.TrustedProxies {
		if err := validateTrustedProxy(entry); err != nil {
			return err
		}
	}
	return c.validateRateLimits()
}

// validateCORS rejects malformed origins and wildcard CORS in production.
func (c *Config) validateCORS() error {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			continue
		}
		if err := validateOrigin(origin); err != nil {
			return err
		}
	}
	if c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production. " +
			"Set specific origins: CORS_ORIGINS=https://yourdomain.com,https://app.yourdomain.com " +
			"or use ENVIRONMENT=development for testing purposes")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if the CORS configuration should be flagged at startup.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
