// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// mockRecommendEngine is a mock implementation for testing.
type mockRecommendEngine struct {
	mu         sync.Mutex
	startCalls int
	closeCalls int
	lastSweep  time.Duration
}

func (m *mockRecommendEngine) StartBackgroundJobs(_ context.Context, sweepInterval time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startCalls++
	m.lastSweep = sweepInterval
}

func (m *mockRecommendEngine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeCalls++
}

func (m *mockRecommendEngine) snapshot() (starts, closes int, sweep time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startCalls, m.closeCalls, m.lastSweep
}

func TestRecommendService_String(t *testing.T) {
	logger := zerolog.Nop()
	engine := &mockRecommendEngine{}
	service := NewRecommendService(engine, RecommendServiceConfig{SweepInterval: time.Hour}, logger)

	if got := service.String(); got != "recommend-service" {
		t.Errorf("String() = %q, want %q", got, "recommend-service")
	}
}

func TestRecommendService_StartsBackgroundJobsOnce(t *testing.T) {
	logger := zerolog.Nop()
	engine := &mockRecommendEngine{}
	service := NewRecommendService(engine, RecommendServiceConfig{SweepInterval: 10 * time.Millisecond}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_ = service.Serve(ctx)

	starts, closes, sweep := engine.snapshot()
	if starts != 1 {
		t.Errorf("StartBackgroundJobs called %d times, want 1", starts)
	}
	if closes != 1 {
		t.Errorf("Close called %d times, want 1", closes)
	}
	if sweep != 10*time.Millisecond {
		t.Errorf("sweep interval = %v, want 10ms", sweep)
	}
}

func TestRecommendService_DefaultsSweepIntervalWhenUnset(t *testing.T) {
	logger := zerolog.Nop()
	engine := &mockRecommendEngine{}
	service := NewRecommendService(engine, RecommendServiceConfig{}, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_ = service.Serve(ctx)

	if _, _, sweep := engine.snapshot(); sweep != time.Hour {
		t.Errorf("sweep interval = %v, want default 1h", sweep)
	}
}

func TestRecommendService_GracefulShutdown(t *testing.T) {
	logger := zerolog.Nop()
	engine := &mockRecommendEngine{}
	service := NewRecommendService(engine, RecommendServiceConfig{SweepInterval: time.Hour}, logger)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- service.Serve(ctx)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve() did not complete in time")
	}

	if _, closes, _ := engine.snapshot(); closes != 1 {
		t.Errorf("Close called %d times, want 1", closes)
	}
}
