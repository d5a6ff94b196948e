// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package services provides Suture service wrappers for various application components.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// RecommendEngine defines the interface for the recommendation engine.
// This allows the service to work with the engine without circular imports.
type RecommendEngine interface {
	// StartBackgroundJobs launches the session sweeper and returns
	// immediately; it runs until ctx is cancelled or Close is called.
	StartBackgroundJobs(ctx context.Context, sweepInterval time.Duration)

	// Close stops any background jobs started by StartBackgroundJobs.
	Close()
}

// RecommendServiceConfig holds configuration for the recommendation service.
type RecommendServiceConfig struct {
	// SweepInterval is how often the pending-session sweeper runs.
	SweepInterval time.Duration
}

// RecommendService wraps the recommendation engine's background job
// (the pending-session sweep) for Suture supervision.
type RecommendService struct {
	engine RecommendEngine
	config RecommendServiceConfig
	logger zerolog.Logger
	name   string
}

// NewRecommendService creates a new recommendation service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecommendService(engine RecommendEngine, cfg RecommendServiceConfig, logger zerolog.Logger) *RecommendService {
	return &RecommendService{
		engine: engine,
		config: cfg,
		logger: logger.With().Str("service", "recommend").Logger(),
		name:   "recommend-service",
	}
}

// Serve implements the suture.Service interface. It starts the engine's
// background jobs and blocks until the context is cancelled, then stops
// them cleanly.
func (s *RecommendService) Serve(ctx context.Context) error {
	sweepInterval := s.config.SweepInterval
	if sweepInterval <= 0 {
		sweepInterval = time.Hour
	}

	s.logger.Info().Dur("sweep_interval", sweepInterval).Msg("recommendation service starting")
	s.engine.StartBackgroundJobs(ctx, sweepInterval)

	<-ctx.Done()
	s.logger.Info().Msg("recommendation service shutting down")
	s.engine.Close()
	return ctx.Err()
}

// String returns the service name for logging.
func (s *RecommendService) String() string {
	return s.name
}
