// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stubOracle struct {
	calls   int32
	reading AffectReading
	err     error
}

func (s *stubOracle) Analyze(ctx context.Context, text string) (AffectReading, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.reading, s.err
}

func fastBreakerConfig() BreakerOracleConfig {
	cfg := DefaultBreakerOracleConfig()
	cfg.BaseBackoff = time.Millisecond
	cfg.MaxAttempts = 3
	cfg.FailureThreshold = 100 // avoid tripping mid-test unless explicitly desired
	return cfg
}

func TestBreakerOracle_SuccessPassesThrough(t *testing.T) {
	t.Parallel()
	stub := &stubOracle{reading: AffectReading{PrimaryEmotion: "calm"}}
	b := NewBreakerOracle(stub, fastBreakerConfig())

	reading, err := b.Analyze(context.Background(), "I feel fine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.PrimaryEmotion != "calm" {
		t.Errorf("unexpected reading: %+v", reading)
	}
	if stub.calls != 1 {
		t.Errorf("expected exactly 1 call on success, got %d", stub.calls)
	}
}

func TestBreakerOracle_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()
	attempts := int32(0)
	flaky := &flakyOracle{failUntil: 2}
	b := NewBreakerOracle(flaky, fastBreakerConfig())

	reading, err := b.Analyze(context.Background(), "text")
	_ = attempts
	if err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if reading.PrimaryEmotion != "ok" {
		t.Errorf("unexpected final reading: %+v", reading)
	}
	if flaky.calls != 3 {
		t.Errorf("expected 3 attempts (2 failures + 1 success), got %d", flaky.calls)
	}
}

type flakyOracle struct {
	calls     int32
	failUntil int32
}

func (f *flakyOracle) Analyze(ctx context.Context, text string) (AffectReading, error) {
	n := atomic.AddInt32(&f.calls, 1)
	if n <= f.failUntil {
		return AffectReading{}, errors.New("transient failure")
	}
	return AffectReading{PrimaryEmotion: "ok"}, nil
}

func TestBreakerOracle_ExhaustsRetriesReturnsOracleUnavailable(t *testing.T) {
	t.Parallel()
	stub := &stubOracle{err: errors.New("always fails")}
	cfg := fastBreakerConfig()
	b := NewBreakerOracle(stub, cfg)

	_, err := b.Analyze(context.Background(), "text")
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Fatalf("expected ErrOracleUnavailable, got %v", err)
	}
	if int(stub.calls) != cfg.MaxAttempts {
		t.Errorf("expected %d attempts, got %d", cfg.MaxAttempts, stub.calls)
	}
}

func TestBreakerOracle_RespectsContextCancellation(t *testing.T) {
	t.Parallel()
	stub := &stubOracle{err: errors.New("always fails")}
	cfg := fastBreakerConfig()
	cfg.BaseBackoff = 50 * time.Millisecond

	b := NewBreakerOracle(stub, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := b.Analyze(ctx, "text")
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Fatalf("expected ErrOracleUnavailable on cancellation, got %v", err)
	}
}
