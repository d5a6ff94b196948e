// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cartographus/internal/recommend/vectorindex"
)

// Engine orchestrates the recommendation pipeline described in
// spec.md §4.10: desired-state inference, retrieval, ranking,
// exploration injection, outcome prediction, and session bookkeeping.
// Every dependency is injected; the engine never reaches for global
// state (spec.md §9).
type Engine struct {
	config *Config
	logger zerolog.Logger

	qstore      *QStore
	experiences *ExperienceLog
	sessions    *SessionStore
	index       *vectorindex.Index
	profiler    *ContentProfiler
	exploration *ExplorationController
	oracle      Oracle

	ranker *HybridRanker
	reward *RewardCalculator
	locks  *userLocks

	stopSweep chan struct{}
	sweepOnce sync.Once
}

// NewEngine wires the recommendation core from its injected components.
// oracle may be nil; AnalyzeEmotion then always returns ErrOracleUnavailable.
func NewEngine(
	qstore *QStore,
	experiences *ExperienceLog,
	sessions *SessionStore,
	index *vectorindex.Index,
	profiler *ContentProfiler,
	exploration *ExplorationController,
	oracle Oracle,
	cfg *Config,
	logger zerolog.Logger,
) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config:      cfg,
		logger:      logger.With().Str("component", "recommend.Engine").Logger(),
		qstore:      qstore,
		experiences: experiences,
		sessions:    sessions,
		index:       index,
		profiler:    profiler,
		exploration: exploration,
		oracle:      oracle,
		ranker:      NewHybridRanker(qstore),
		reward:      NewRewardCalculator(cfg.Reward.ProximityThreshold),
		locks:       newUserLocks(),
		stopSweep:   make(chan struct{}),
	}, nil
}

// Recommend executes the full pipeline for one user and returns up to
// limit ranked, explained recommendations. An empty catalog yields an
// empty, non-error result.
func (e *Engine) Recommend(ctx context.Context, userID string, current AffectState, desiredOverride *DesiredState, limit int) (RecommendResult, error) {
	log := e.requestLogger(ctx, userID)

	if err := validateAffectState(current); err != nil {
		return RecommendResult{}, err
	}
	if limit <= 0 {
		limit = e.config.Limits.DefaultK
	}
	if limit > e.config.Limits.MaxK {
		limit = e.config.Limits.MaxK
	}

	release, ok := e.locks.tryAcquire(userID, e.config.Limits.PerUserLockWait)
	if !ok {
		return RecommendResult{}, ErrUserBusy
	}
	defer release()

	current = current.Clamp()

	desired := desiredOverride
	if desired == nil {
		d := InferDesiredState(current)
		desired = &d
	}

	if e.index.Len() == 0 {
		log.Debug().Msg("catalog empty, returning empty recommendation list")
		return RecommendResult{
			Recommendations: []Recommendation{},
			ExplorationRate: e.exploration.Get(userID).Epsilon,
			Timestamp:       time.Now().UTC(),
		}, nil
	}

	goalVector := GoalDescriptor(current, *desired)
	candidateK := limit * e.config.Limits.CandidateMultiplier
	hits := e.index.Search(goalVector, candidateK)

	candidates := make([]Candidate, 0, len(hits))
	for _, hit := range hits {
		profile, ok := e.profiler.Get(hit.ID)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{
			ContentID:  hit.ID,
			Profile:    profile,
			Similarity: hit.Score,
		})
	}

	stateKey := HashState(current)
	recs := e.ranker.Rank(userID, stateKey, current, *desired, candidates)
	recs = e.exploration.InjectExploration(userID, recs)

	if len(recs) > limit {
		recs = recs[:limit]
	}

	now := time.Now()
	for i := range recs {
		profile, _ := e.profiler.Get(recs[i].ContentID)
		recs[i].Title = e.profiler.Title(recs[i].ContentID)
		recs[i].PredictedOutcome = PredictOutcome(current, profile)
		recs[i].Reasoning = rationaleFor(*desired, profile, recs[i])

		e.sessions.Put(Session{
			UserID:       userID,
			ContentID:    recs[i].ContentID,
			StateBefore:  current,
			DesiredState: *desired,
			IssuedAt:     now,
		})
	}

	log.Info().Int("candidate_count", len(candidates)).Int("returned", len(recs)).Msg("recommendations computed")

	return RecommendResult{
		Recommendations: recs,
		ExplorationRate: e.exploration.Get(userID).Epsilon,
		Timestamp:       now.UTC(),
	}, nil
}

// AnalyzeEmotion derives an affect reading from free text via the
// injected Oracle and the desired state that follows from it.
func (e *Engine) AnalyzeEmotion(ctx context.Context, userID, text string) (AffectReading, DesiredState, error) {
	if e.oracle == nil {
		return AffectReading{}, DesiredState{}, ErrOracleUnavailable
	}

	reading, err := e.oracle.Analyze(ctx, text)
	if err != nil {
		e.requestLogger(ctx, userID).Warn().Err(err).Msg("oracle analysis failed")
		return AffectReading{}, DesiredState{}, err
	}

	reading.State = reading.State.Clamp()
	desired := InferDesiredState(reading.State)
	return reading, desired, nil
}

// StartBackgroundJobs launches the session sweeper, reaping entries
// older than the configured TTL every sweepInterval until ctx is
// cancelled or Close is called.
func (e *Engine) StartBackgroundJobs(ctx context.Context, sweepInterval time.Duration) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-e.stopSweep:
				return
			case <-ticker.C:
				reaped := e.sessions.Sweep(time.Now())
				if reaped > 0 {
					e.logger.Debug().Int("reaped", reaped).Msg("swept expired sessions")
				}
			}
		}
	}()
}

// Close stops background jobs started by StartBackgroundJobs.
func (e *Engine) Close() {
	e.sweepOnce.Do(func() { close(e.stopSweep) })
}

func (e *Engine) requestLogger(_ context.Context, userID string) zerolog.Logger {
	return e.logger.With().Str("user_id", userID).Logger()
}

// rationaleFor renders a deterministic, template-based explanation for
// one recommendation from the same inputs the ranker scored it with.
func rationaleFor(desired DesiredState, profile ContentProfile, rec Recommendation) string {
	if rec.IsExploration {
		return fmt.Sprintf("exploratory pick: %s tone, untested against your %s goal", profile.PrimaryTone, desired.Reason)
	}
	return fmt.Sprintf("%s tone aligns with the %s goal (similarity %.2f, learned value %.2f)", profile.PrimaryTone, desired.Reason, rec.Similarity, rec.QValue)
}

func validateAffectState(s AffectState) error {
	for _, v := range []float64{s.Valence, s.Arousal, s.Stress, s.Confidence} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrStateOutOfRange
		}
	}
	if s.Valence < -1 || s.Valence > 1 || s.Arousal < -1 || s.Arousal > 1 {
		return ErrStateOutOfRange
	}
	if s.Stress < 0 || s.Stress > 1 || s.Confidence < 0 || s.Confidence > 1 {
		return ErrStateOutOfRange
	}
	return nil
}
