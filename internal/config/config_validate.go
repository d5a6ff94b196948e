// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	return c.validateRecommend()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	return nil
}

// validateSecurity validates CORS and rate-limiting configuration.
func (c *Config) validateSecurity() error {
	if err := c.validateCORS(); err != nil {
		return err
	}
	return c.validateRateLimits()
}

// validateCORS rejects wildcard CORS in production, the same M-01
// protection the teacher applies regardless of which auth mode is
// configured — this service relies on the CORS boundary alone.
func (c *Config) validateCORS() error {
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

// ShouldWarnAboutCORS returns true if CORS configuration has security concerns
// that should be logged at startup
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

// validateRateLimits validates rate limiting configuration bounds.
// Ensures rate limit values are within sensible ranges to prevent
// misconfiguration that could lead to DoS or ineffective protection.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if err := c.validateRateLimitRequests(); err != nil {
		return err
	}
	return c.validateRateLimitWindow()
}

// validateRateLimitRequests validates the rate limit requests value
func (c *Config) validateRateLimitRequests() error {
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	return nil
}

// validateRateLimitWindow validates the rate limit window value
func (c *Config) validateRateLimitWindow() error {
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
// Production mode is determined by the ENVIRONMENT environment variable.
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

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if err := c.validateLogLevel(); err != nil {
		return err
	}
	return c.validateLogFormat()
}

// validateLogLevel validates the log level configuration
func (c *Config) validateLogLevel() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// validateLogFormat validates the log format configuration
func (c *Config) validateLogFormat() error {
	if c.Logging.Format == "" {
		return nil
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// recommendRange bounds a named float field between lo and hi inclusive.
func recommendRange(name string, value, lo, hi float64) error {
	if value < lo || value > hi {
		return fmt.Errorf("%s must be between %v and %v", name, lo, hi)
	}
	return nil
}

// validateRecommend validates the recommendation engine's hyperparameters
// when the engine is enabled; a disabled engine skips these checks since
// the server then has no other function and cmd/server refuses to start
// right after loading the config.
func (c *Config) validateRecommend() error {
	if !c.Recommend.Enabled {
		return nil
	}

	r := c.Recommend
	if r.DataDir == "" {
		return fmt.Errorf("RECOMMEND_DATA_DIR is required when RECOMMEND_ENABLED=true")
	}
	if err := recommendRange("Q_LEARNING_RATE", r.QLearningRate, 0, 1); err != nil {
		return err
	}
	if err := recommendRange("Q_DISCOUNT", r.QDiscount, 0, 1); err != nil {
		return err
	}
	if err := recommendRange("EPSILON_INITIAL", r.EpsilonInitial, 0, 1); err != nil {
		return err
	}
	if err := recommendRange("EPSILON_MIN", r.EpsilonMin, 0, 1); err != nil {
		return err
	}
	if r.EpsilonMin > r.EpsilonInitial {
		return fmt.Errorf("EPSILON_MIN must not exceed EPSILON_INITIAL")
	}
	if err := recommendRange("EPSILON_DECAY", r.EpsilonDecay, 0, 1); err != nil {
		return err
	}
	if r.ExperienceRing < 1 {
		return fmt.Errorf("EXPERIENCE_RING must be at least 1")
	}
	if r.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL_SECONDS must be positive")
	}
	if r.RewardProximityThreshold < 0 {
		return fmt.Errorf("REWARD_PROXIMITY_THRESHOLD must be non-negative")
	}
	if r.DefaultK < 1 {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be at least 1")
	}
	if r.MaxK < r.DefaultK {
		return fmt.Errorf("RECOMMEND_MAX_K must be at least RECOMMEND_DEFAULT_K")
	}
	return nil
}
