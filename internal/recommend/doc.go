// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package recommend implements an affect-aware content recommendation
// core: a per-user reinforcement-learning policy that picks content to
// move a viewer's emotional state toward an inferred or requested goal.
//
// # Architecture
//
// A request flows through a fixed pipeline:
//
//   - DesiredState inference (or an explicit override) turns a
//     continuous affect reading into a target state and intensity.
//   - ContentProfiler derives a deterministic emotional profile for
//     every catalog item and embeds it into VectorIndex.
//   - Engine.Recommend retrieves nearest-neighbor candidates by cosine
//     similarity against the current-state/desired-state goal vector,
//     scores them with HybridRanker (learned Q-value blended with
//     retrieval similarity and goal alignment), and injects
//     ExplorationController exploration into the lower-ranked half.
//   - Engine.Feedback recovers the pending session, computes a reward
//     with RewardCalculator, applies a tabular Bellman update through
//     QStore, and decays the user's exploration rate.
//
// # Design principles
//
// Every component is an injected dependency; the engine never reaches
// for global state. State transitions are pure functions wherever
// possible (DesiredState, OutcomePredictor, RewardCalculator,
// ProgressAnalytics), with mutation isolated to QStore,
// ExplorationController, ExperienceLog, and SessionStore, each
// striped or keyed per user so one user's traffic never blocks
// another's.
//
// Floating-point addition order is fixed throughout (RewardCalculator,
// HybridRanker) and ties are always broken by ascending content id, so
// identical inputs produce identical outputs across runs.
//
// # Persistence
//
// QStore, ExplorationController, ExperienceLog, and SessionStore keep
// their state in memory only. NewQStore accepts a durable Store (see
// store.go and internal/recommend/storage), but no code path loads
// from it or writes to it, so learned state does not survive a
// restart. The core never depends on the storage backend directly.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(qstore, experiences, sessions,
//	    index, profiler, exploration, oracle, cfg, logger)
//
//	result, err := engine.Recommend(ctx, userID, currentState, nil, 10)
//
//	fb, err := engine.Feedback(ctx, recommend.FeedbackInput{
//	    UserID:     userID,
//	    ContentID:  result.Recommendations[0].ContentID,
//	    StateAfter: observedState,
//	    Completed:  true,
//	})
//
// # Thread safety
//
// Engine is safe for concurrent use across users. Recommend and
// Feedback calls for the same user are serialized by a per-user lock
// (userlock.go); a caller that cannot acquire it within the configured
// wait gets ErrUserBusy rather than blocking indefinitely.
package recommend
