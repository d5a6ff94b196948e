// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from environment
// variables and an optional config file.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Transport:
//     - Server: HTTP listener settings (port, host, timeout)
//     - Security: CORS, rate limiting, trusted proxies
//
//  2. Recommendation Engine:
//     - Recommend: Q-learning hyperparameters, session TTL, durable store path
//
//  3. Observability:
//     - Logging: Log levels and output formats
//
// Example - Load configuration from environment:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal("Failed to load config:", err)
//	}
//	server := http.Server{Addr: fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)}
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from multiple goroutines.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // Environment mode: "development", "staging", "production" (default: "development")
}

// SecurityConfig holds transport-level security settings: CORS, rate
// limiting, and trusted proxy handling. This service has no credentials
// subsystem of its own; the `/auth/*` routes are stubbed at the
// transport layer per the external interface contract.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	TrustedProxies    []string      `koanf:"trusted_proxies"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Adds slight performance overhead.
	// Default: false
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds affect-aware recommendation engine configuration.
// The engine learns a per-user policy, via tabular Q-learning over a
// discretized valence/arousal/stress lattice, for which content moves a
// viewer toward an inferred or requested emotional target.
//
// Environment Variables:
//   - RECOMMEND_ENABLED: Enable the recommendation engine (default: false)
//   - Q_LEARNING_RATE: Q-learning step size alpha (default: 0.10)
//   - Q_DISCOUNT: Q-learning discount factor gamma (default: 0.95)
//   - EPSILON_INITIAL: Starting exploration rate (default: 0.30)
//   - EPSILON_MIN: Exploration rate floor (default: 0.05)
//   - EPSILON_DECAY: Per-feedback exploration decay (default: 0.995)
//   - EXPERIENCE_RING: Per-user experience log capacity (default: 1000)
//   - SESSION_TTL_SECONDS: Pending recommendation session TTL (default: 86400)
//   - REWARD_PROXIMITY_THRESHOLD: Reward proximity bonus distance (default: 0.30)
//   - RECOMMEND_DEFAULT_K: Default number of recommendations (default: 10)
//   - RECOMMEND_MAX_K: Maximum allowed recommendation count (default: 50)
//   - RECOMMEND_CACHE_TTL: Recommendation response cache TTL (default: 30s)
//   - RECOMMEND_DATA_DIR: Directory for the durable badger store (default: /data/recommend)
type RecommendConfig struct {
	// Enabled controls whether the recommendation engine is active.
	Enabled bool `koanf:"enabled"`

	// DataDir is the directory for the durable badger-backed store.
	// Default: /data/recommend
	DataDir string `koanf:"data_dir"`

	// QLearningRate is alpha, the Q-learning step size. Default: 0.10.
	QLearningRate float64 `koanf:"q_learning_rate"`

	// QDiscount is gamma, the discount factor. Default: 0.95.
	QDiscount float64 `koanf:"q_discount"`

	// EpsilonInitial is the starting exploration rate. Default: 0.30.
	EpsilonInitial float64 `koanf:"epsilon_initial"`

	// EpsilonMin is the exploration rate floor. Default: 0.05.
	EpsilonMin float64 `koanf:"epsilon_min"`

	// EpsilonDecay is the multiplicative per-feedback decay. Default: 0.995.
	EpsilonDecay float64 `koanf:"epsilon_decay"`

	// ExperienceRing is the bounded per-user experience log capacity.
	// Default: 1000.
	ExperienceRing int `koanf:"experience_ring"`

	// SessionTTL is how long a pending recommendation stays resolvable
	// by feedback. Default: 24h.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// RewardProximityThreshold is the distance below which the reward
	// proximity bonus applies. Default: 0.30.
	RewardProximityThreshold float64 `koanf:"reward_proximity_threshold"`

	// DefaultK is the default number of recommendations returned.
	// Default: 10.
	DefaultK int `koanf:"default_k"`

	// MaxK is the maximum allowed recommendation count. Default: 50.
	MaxK int `koanf:"max_k"`

	// CacheTTL is how long to cache recommendation results. Default: 30s.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// PerUserLockWait is the busy-signal threshold for per-user
	// serialization of Recommend/Feedback calls. Default: 2s.
	PerUserLockWait time.Duration `koanf:"per_user_lock_wait"`
}

// Load reads configuration from environment variables and optional config file.
// Configuration is loaded in the following order (later sources override earlier ones):
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// This function uses Koanf v2 for flexible, layered configuration management.
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// LoadLegacy reads configuration directly from environment variables only,
// bypassing the config-file layer. Preserved for tests that need
// env-only loading without touching the filesystem.
//
// Deprecated: Use Load() instead for new code.
func LoadLegacy() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getIntEnv("HTTP_PORT", 3857),
			Host:        getEnv("HTTP_HOST", "0.0.0.0"),
			Timeout:     getDurationEnv("HTTP_TIMEOUT", 30*time.Second),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Security: SecurityConfig{
			RateLimitReqs:     getIntEnv("RATE_LIMIT_REQUESTS", 100),
			RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", 1*time.Minute),
			RateLimitDisabled: getBoolEnv("DISABLE_RATE_LIMIT", false),
			CORSOrigins:       getSliceEnv("CORS_ORIGINS", []string{"*"}),
			TrustedProxies:    getSliceEnv("TRUSTED_PROXIES", []string{}),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Caller: getBoolEnv("LOG_CALLER", false),
		},
		Recommend: RecommendConfig{
			Enabled:                  getBoolEnv("RECOMMEND_ENABLED", false),
			DataDir:                  getEnv("RECOMMEND_DATA_DIR", "/data/recommend"),
			QLearningRate:            getFloatEnv("Q_LEARNING_RATE", 0.10),
			QDiscount:                getFloatEnv("Q_DISCOUNT", 0.95),
			EpsilonInitial:           getFloatEnv("EPSILON_INITIAL", 0.30),
			EpsilonMin:               getFloatEnv("EPSILON_MIN", 0.05),
			EpsilonDecay:             getFloatEnv("EPSILON_DECAY", 0.995),
			ExperienceRing:           getIntEnv("EXPERIENCE_RING", 1000),
			SessionTTL:               time.Duration(getIntEnv("SESSION_TTL_SECONDS", 86400)) * time.Second,
			RewardProximityThreshold: getFloatEnv("REWARD_PROXIMITY_THRESHOLD", 0.30),
			DefaultK:                 getIntEnv("RECOMMEND_DEFAULT_K", 10),
			MaxK:                     getIntEnv("RECOMMEND_MAX_K", 50),
			CacheTTL:                 getDurationEnv("RECOMMEND_CACHE_TTL", 30*time.Second),
			PerUserLockWait:          getDurationEnv("RECOMMEND_LOCK_WAIT", 2*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// NOTE: Validate() method lives in config_validate.go
// NOTE: Environment variable helpers live in config_env.go
