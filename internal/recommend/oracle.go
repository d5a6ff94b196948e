// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

// AffectReading is what the Oracle derives from free text: a continuous
// state plus the discrete label and per-axis vector the /emotion/analyze
// endpoint echoes back to the client.
type AffectReading struct {
	State          AffectState
	PrimaryEmotion string
	Vector         [8]float64
}

// Oracle maps free text to an affect reading. The production
// implementation calls out to an external text-affect model; tests
// supply a deterministic stub.
type Oracle interface {
	Analyze(ctx context.Context, text string) (AffectReading, error)
}

// BreakerOracleConfig configures the circuit breaker wrapping an Oracle.
type BreakerOracleConfig struct {
	Name                string
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	FailureThreshold    uint32
	MaxAttempts         int
	BaseBackoff         time.Duration
}

// DefaultBreakerOracleConfig returns production defaults: trip after 5
// consecutive failures, half-open after 10s, up to 3 attempts with
// exponential backoff starting at 100ms.
func DefaultBreakerOracleConfig() BreakerOracleConfig {
	return BreakerOracleConfig{
		Name:             "affect-oracle",
		MaxRequests:      1,
		Interval:         30 * time.Second,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
		MaxAttempts:      3,
		BaseBackoff:      100 * time.Millisecond,
	}
}

// BreakerOracle wraps an Oracle with a circuit breaker and bounded,
// exponential-backoff retry, so a failing oracle fails fast instead of
// hammering retries past the caller's deadline.
type BreakerOracle struct {
	inner   Oracle
	cfg     BreakerOracleConfig
	breaker *gobreaker.CircuitBreaker[AffectReading]
}

// NewBreakerOracle builds a BreakerOracle around inner.
func NewBreakerOracle(inner Oracle, cfg BreakerOracleConfig) *BreakerOracle {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
	}
	return &BreakerOracle{
		inner:   inner,
		cfg:     cfg,
		breaker: gobreaker.NewCircuitBreaker[AffectReading](settings),
	}
}

// Analyze calls the wrapped Oracle through the circuit breaker, retrying
// up to MaxAttempts times with exponential backoff while the overall
// context deadline allows.
func (b *BreakerOracle) Analyze(ctx context.Context, text string) (AffectReading, error) {
	var lastErr error
	backoff := b.cfg.BaseBackoff

	for attempt := 0; attempt < b.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return AffectReading{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		reading, err := b.breaker.Execute(func() (AffectReading, error) {
			return b.inner.Analyze(ctx, text)
		})
		if err == nil {
			return reading, nil
		}
		lastErr = err

		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return AffectReading{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
		}
	}

	return AffectReading{}, fmt.Errorf("%w: %v", ErrOracleUnavailable, lastErr)
}
