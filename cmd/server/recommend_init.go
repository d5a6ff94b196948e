// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package main

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cartographus/internal/config"
	"github.com/tomtom215/cartographus/internal/recommend"
	"github.com/tomtom215/cartographus/internal/recommend/storage"
	"github.com/tomtom215/cartographus/internal/recommend/vectorindex"
	"github.com/tomtom215/cartographus/internal/supervisor"
	"github.com/tomtom215/cartographus/internal/supervisor/services"
)

// affectEmbeddingDims is the dimensionality of the deterministic
// content embeddings the profiler produces, mirrored here because
// vectorindex.Index takes it as a constructor argument.
const affectEmbeddingDims = 1536

// RecommendComponents holds the wired affect-aware recommendation engine
// and its supervised background-job service.
type RecommendComponents struct {
	Engine  *recommend.Engine
	Store   *storage.BadgerStore
	Service *services.RecommendService
}

// initRecommend initializes the recommendation engine if enabled.
// Returns nil if recommendations are disabled in config.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initRecommend(cfg *config.Config, logger zerolog.Logger, tree *supervisor.SupervisorTree) (*RecommendComponents, error) {
	if !cfg.Recommend.Enabled {
		logger.Info().Msg("recommendation engine disabled (RECOMMEND_ENABLED=false)")
		return nil, nil
	}

	engineCfg := buildEngineConfig(cfg)
	if err := engineCfg.Validate(); err != nil {
		return nil, fmt.Errorf("recommend: invalid configuration: %w", err)
	}

	logger.Info().
		Float64("q_learning_rate", engineCfg.Learning.Rate).
		Float64("epsilon_initial", engineCfg.Exploration.Initial).
		Str("data_dir", cfg.Recommend.DataDir).
		Msg("initializing affect-aware recommendation engine")

	store, err := storage.Open(cfg.Recommend.DataDir)
	if err != nil {
		return nil, fmt.Errorf("recommend: open store: %w", err)
	}

	index := vectorindex.New(affectEmbeddingDims)
	profiler := recommend.NewContentProfiler(index)
	qstore := recommend.NewQStore(store)
	experiences := recommend.NewExperienceLog(engineCfg.Experience.RingSize)
	sessions := recommend.NewSessionStore(engineCfg.Session.TTL)
	exploration := recommend.NewExplorationController(
		engineCfg.Exploration.Initial,
		engineCfg.Exploration.Min,
		engineCfg.Exploration.Decay,
	)

	// The affect oracle (free text -> emotional state) is an external
	// collaborator the spec deliberately keeps out of the core; no
	// concrete implementation is wired here, so /emotion/analyze
	// reports a dependency failure until one is configured.
	engine, err := recommend.NewEngine(qstore, experiences, sessions, index, profiler, exploration, nil, engineCfg, logger)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("recommend: create engine: %w", err)
	}

	service := services.NewRecommendService(engine, services.RecommendServiceConfig{
		SweepInterval: engineCfg.Session.TTL / 4,
	}, logger)
	tree.AddMessagingService(service)

	logger.Info().Msg("recommendation service added to supervisor tree")

	return &RecommendComponents{
		Engine:  engine,
		Store:   store,
		Service: service,
	}, nil
}

// buildEngineConfig translates the application-level config into the
// recommend package's own Config. It starts from recommend.DefaultConfig()
// and copies every tunable below from the application config as is, zero
// values included; only fields not listed here keep their DefaultConfig value.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	engineCfg := recommend.DefaultConfig()

	engineCfg.Learning.Rate = cfg.Recommend.QLearningRate
	engineCfg.Learning.Discount = cfg.Recommend.QDiscount
	engineCfg.Exploration.Initial = cfg.Recommend.EpsilonInitial
	engineCfg.Exploration.Min = cfg.Recommend.EpsilonMin
	engineCfg.Exploration.Decay = cfg.Recommend.EpsilonDecay
	engineCfg.Reward.ProximityThreshold = cfg.Recommend.RewardProximityThreshold
	engineCfg.Experience.RingSize = cfg.Recommend.ExperienceRing
	engineCfg.Session.TTL = cfg.Recommend.SessionTTL
	engineCfg.Limits.DefaultK = cfg.Recommend.DefaultK
	engineCfg.Limits.MaxK = cfg.Recommend.MaxK
	engineCfg.Limits.PerUserLockWait = cfg.Recommend.PerUserLockWait
	engineCfg.Cache.TTL = cfg.Recommend.CacheTTL

	return engineCfg
}
