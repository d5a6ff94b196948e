// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"encoding/json"
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
// Field names mirror the environment variables documented in the
// wire contract (Q_LEARNING_RATE, EPSILON_INITIAL, ...).
type Config struct {
	// Learning contains the Q-learning hyperparameters.
	Learning LearningConfig `json:"learning"`

	// Exploration contains epsilon-greedy parameters.
	Exploration ExplorationConfig `json:"exploration"`

	// Reward contains reward-shaping parameters.
	Reward RewardConfig `json:"reward"`

	// Experience contains experience-log retention parameters.
	Experience ExperienceConfig `json:"experience"`

	// Session contains pending-session TTL parameters.
	Session SessionConfig `json:"session"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits"`

	// Cache contains response-cache parameters.
	Cache CacheConfig `json:"cache"`

	// Seed is a random seed for exploration injection. NewEngine does not
	// apply it: the ExplorationController uses a fixed seed of 1 unless
	// its Seed method is called.
	Seed int64 `json:"seed"`
}

// LearningConfig contains the Q-learning update parameters.
type LearningConfig struct {
	// Rate is alpha, the Q-learning step size. Env: Q_LEARNING_RATE.
	// Default: 0.10.
	Rate float64 `json:"rate"`

	// Discount is gamma, the discount factor. Env: Q_DISCOUNT.
	// Default: 0.95.
	Discount float64 `json:"discount"`
}

// ExplorationConfig contains epsilon-greedy parameters.
type ExplorationConfig struct {
	// Initial is epsilon's starting value. Env: EPSILON_INITIAL.
	// Default: 0.30.
	Initial float64 `json:"initial"`

	// Min is epsilon's floor. Env: EPSILON_MIN. Default: 0.05.
	Min float64 `json:"min"`

	// Decay is the multiplicative per-feedback decay factor.
	// Env: EPSILON_DECAY. Default: 0.995.
	Decay float64 `json:"decay"`
}

// RewardConfig contains reward-shaping parameters.
type RewardConfig struct {
	// ProximityThreshold is the distance below which the proximity
	// bonus applies. Env: REWARD_PROXIMITY_THRESHOLD. Default: 0.30.
	ProximityThreshold float64 `json:"proximity_threshold"`
}

// ExperienceConfig contains experience-log retention parameters.
type ExperienceConfig struct {
	// RingSize is the bounded per-user ring capacity.
	// Env: EXPERIENCE_RING. Default: 1000.
	RingSize int `json:"ring_size"`
}

// SessionConfig contains pending-session TTL parameters.
type SessionConfig struct {
	// TTL is how long a pending recommendation stays resolvable by
	// feedback. Env: SESSION_TTL_SECONDS. Default: 24h.
	TTL time.Duration `json:"ttl"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultK is the default number of recommendations to return.
	// Default: 10.
	DefaultK int `json:"default_k"`

	// MaxK is the maximum allowed K value. Default: 50.
	MaxK int `json:"max_k"`

	// CandidateMultiplier is how many candidates VectorIndex.Search
	// retrieves per requested recommendation (spec: k=3*limit).
	// Default: 3.
	CandidateMultiplier int `json:"candidate_multiplier"`

	// RequestTimeout is a per-call deadline for recommend/feedback. The
	// engine does not read it; the HTTP handlers apply their own fixed
	// 10s deadline. Default: 5s.
	RequestTimeout time.Duration `json:"request_timeout"`

	// PerUserLockWait is the busy-signal threshold: a per-user lock
	// held longer than this causes the request to be rejected as busy.
	// Default: 2s.
	PerUserLockWait time.Duration `json:"per_user_lock_wait"`
}

// CacheConfig contains response-cache parameters.
type CacheConfig struct {
	// Enabled records whether the recommend-response cache is wanted.
	// Neither the engine nor the HTTP layer reads it. Default: true.
	Enabled bool `json:"enabled"`

	// TTL is the cache entry time-to-live. Default: 30s.
	TTL time.Duration `json:"ttl"`

	// MaxEntries is an entry cap for the response cache. Neither the
	// engine nor the HTTP layer applies it. Default: 10000.
	MaxEntries int `json:"max_entries"`
}

// DefaultConfig returns a Config with the defaults documented in the
// wire contract.
func DefaultConfig() *Config {
	return &Config{
		Learning: LearningConfig{
			Rate:     0.10,
			Discount: 0.95,
		},
		Exploration: ExplorationConfig{
			Initial: 0.30,
			Min:     0.05,
			Decay:   0.995,
		},
		Reward: RewardConfig{
			ProximityThreshold: 0.30,
		},
		Experience: ExperienceConfig{
			RingSize: 1000,
		},
		Session: SessionConfig{
			TTL: 24 * time.Hour,
		},
		Limits: LimitsConfig{
			DefaultK:             10,
			MaxK:                 50,
			CandidateMultiplier:  3,
			RequestTimeout:       5 * time.Second,
			PerUserLockWait:      2 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        30 * time.Second,
			MaxEntries: 10000,
		},
		Seed: 42,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Learning.Rate <= 0 || c.Learning.Rate > 1 {
		return fmt.Errorf("learning.rate must be in (0, 1], got %f", c.Learning.Rate)
	}
	if c.Learning.Discount < 0 || c.Learning.Discount > 1 {
		return fmt.Errorf("learning.discount must be in [0, 1], got %f", c.Learning.Discount)
	}

	if c.Exploration.Initial < c.Exploration.Min || c.Exploration.Initial > 1 {
		return fmt.Errorf("exploration.initial must be in [exploration.min, 1], got %f", c.Exploration.Initial)
	}
	if c.Exploration.Min < 0 {
		return fmt.Errorf("exploration.min must be non-negative, got %f", c.Exploration.Min)
	}
	if c.Exploration.Decay <= 0 || c.Exploration.Decay > 1 {
		return fmt.Errorf("exploration.decay must be in (0, 1], got %f", c.Exploration.Decay)
	}

	if c.Reward.ProximityThreshold < 0 {
		return fmt.Errorf("reward.proximity_threshold must be non-negative, got %f", c.Reward.ProximityThreshold)
	}

	if c.Experience.RingSize < 1 {
		return fmt.Errorf("experience.ring_size must be positive, got %d", c.Experience.RingSize)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive, got %v", c.Session.TTL)
	}

	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}
	if c.Limits.CandidateMultiplier < 1 {
		return fmt.Errorf("limits.candidate_multiplier must be positive, got %d", c.Limits.CandidateMultiplier)
	}

	return nil
}

// Clone returns a deep copy of the configuration. All nested structs
// contain only value types, so a direct field copy suffices.
func (c *Config) Clone() *Config {
	return &Config{
		Learning:    c.Learning,
		Exploration: c.Exploration,
		Reward:      c.Reward,
		Experience:  c.Experience,
		Session:     c.Session,
		Limits:      c.Limits,
		Cache:       c.Cache,
		Seed:        c.Seed,
	}
}

// MarshalJSON implements custom JSON marshaling for duration fields.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		Session struct {
			TTL string `json:"ttl"`
		} `json:"session"`
		Limits struct {
			DefaultK            int    `json:"default_k"`
			MaxK                int    `json:"max_k"`
			CandidateMultiplier int    `json:"candidate_multiplier"`
			RequestTimeout      string `json:"request_timeout"`
			PerUserLockWait     string `json:"per_user_lock_wait"`
		} `json:"limits"`
		Cache struct {
			Enabled    bool   `json:"enabled"`
			TTL        string `json:"ttl"`
			MaxEntries int    `json:"max_entries"`
		} `json:"cache"`
	}{
		Alias: (*Alias)(c),
		Session: struct {
			TTL string `json:"ttl"`
		}{TTL: c.Session.TTL.String()},
		Limits: struct {
			DefaultK            int    `json:"default_k"`
			MaxK                int    `json:"max_k"`
			CandidateMultiplier int    `json:"candidate_multiplier"`
			RequestTimeout      string `json:"request_timeout"`
			PerUserLockWait     string `json:"per_user_lock_wait"`
		}{
			DefaultK:            c.Limits.DefaultK,
			MaxK:                c.Limits.MaxK,
			CandidateMultiplier: c.Limits.CandidateMultiplier,
			RequestTimeout:      c.Limits.RequestTimeout.String(),
			PerUserLockWait:     c.Limits.PerUserLockWait.String(),
		},
		Cache: struct {
			Enabled    bool   `json:"enabled"`
			TTL        string `json:"ttl"`
			MaxEntries int    `json:"max_entries"`
		}{
			Enabled:    c.Cache.Enabled,
			TTL:        c.Cache.TTL.String(),
			MaxEntries: c.Cache.MaxEntries,
		},
	})
}
