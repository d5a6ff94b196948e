// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cartographus/internal/recommend/vectorindex"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	index := vectorindex.New(embeddingDims)
	profiler := NewContentProfiler(index)
	qstore := NewQStore(nil)
	experiences := NewExperienceLog(100)
	sessions := NewSessionStore(24 * time.Hour)
	exploration := NewExplorationController(0.30, 0.05, 0.995)

	cfg := DefaultConfig()
	cfg.Limits.PerUserLockWait = 0
	engine, err := NewEngine(qstore, experiences, sessions, index, profiler, exploration, nil, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func seedCatalog(t *testing.T, e *Engine, items ...ContentMetadata) {
	t.Helper()
	for _, item := range items {
		if _, err := e.profiler.Profile(item); err != nil {
			t.Fatalf("Profile(%s): %v", item.ContentID, err)
		}
	}
}

func TestEngine_RecommendOnEmptyCatalogReturnsEmptyNotError(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	result, err := e.Recommend(context.Background(), "u1", AffectState{}, nil, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("expected no recommendations for empty catalog, got %d", len(result.Recommendations))
	}
}

func TestEngine_RecommendRejectsOutOfRangeState(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	_, err := e.Recommend(context.Background(), "u1", AffectState{Valence: 5}, nil, 5)
	if !errors.Is(err, ErrStateOutOfRange) {
		t.Fatalf("expected ErrStateOutOfRange, got %v", err)
	}
}

func TestEngine_RecommendReturnsTitledRankedResults(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	seedCatalog(t, e,
		ContentMetadata{ContentID: "c1", Title: "Calm Waters", Genres: []string{"meditation"}, Category: "meditation"},
		ContentMetadata{ContentID: "c2", Title: "Action Hour", Genres: []string{"action"}},
	)

	result, err := e.Recommend(context.Background(), "u1", AffectState{Valence: -0.5, Arousal: 0.7, Stress: 0.8}, nil, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Recommendations) == 0 {
		t.Fatal("expected at least one recommendation")
	}
	for _, rec := range result.Recommendations {
		if rec.Title == "" {
			t.Errorf("expected non-empty title for %s", rec.ContentID)
		}
		if rec.Reasoning == "" {
			t.Errorf("expected non-empty reasoning for %s", rec.ContentID)
		}
	}
}

func TestEngine_RecommendClampsLimitToMaxK(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	seedCatalog(t, e, ContentMetadata{ContentID: "c1", Title: "One"})

	result, err := e.Recommend(context.Background(), "u1", AffectState{}, nil, 10000)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Recommendations) > e.config.Limits.MaxK {
		t.Fatalf("expected at most MaxK recommendations, got %d", len(result.Recommendations))
	}
}

func TestEngine_RecommendPutsPendingSessionForFeedback(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	seedCatalog(t, e, ContentMetadata{ContentID: "c1", Title: "One"})

	result, err := e.Recommend(context.Background(), "u1", AffectState{}, nil, 5)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(result.Recommendations) == 0 {
		t.Fatal("expected at least one recommendation")
	}

	if _, ok := e.sessions.Take("u1", result.Recommendations[0].ContentID); !ok {
		t.Fatal("expected a pending session to be recorded for the recommended content")
	}
}

func TestEngine_AnalyzeEmotionWithNilOracleReturnsUnavailable(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	_, _, err := e.AnalyzeEmotion(context.Background(), "u1", "I feel anxious")
	if !errors.Is(err, ErrOracleUnavailable) {
		t.Fatalf("expected ErrOracleUnavailable, got %v", err)
	}
}

func TestEngine_AnalyzeEmotionDerivesDesiredState(t *testing.T) {
	t.Parallel()
	index := vectorindex.New(embeddingDims)
	profiler := NewContentProfiler(index)
	qstore := NewQStore(nil)
	experiences := NewExperienceLog(100)
	sessions := NewSessionStore(24 * time.Hour)
	exploration := NewExplorationController(0.30, 0.05, 0.995)
	cfg := DefaultConfig()

	oracle := &stubOracle{reading: AffectReading{
		State:          AffectState{Valence: -0.4, Arousal: 0.6, Stress: 0.8},
		PrimaryEmotion: "anxious",
	}}

	engine, err := NewEngine(qstore, experiences, sessions, index, profiler, exploration, oracle, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}

	reading, desired, err := engine.AnalyzeEmotion(context.Background(), "u1", "I'm so anxious right now")
	if err != nil {
		t.Fatalf("AnalyzeEmotion: %v", err)
	}
	if reading.PrimaryEmotion != "anxious" {
		t.Errorf("unexpected primary emotion: %q", reading.PrimaryEmotion)
	}
	if desired.Reason != "anxiety-reducing" {
		t.Errorf("expected anxiety-reducing desired state, got %q", desired.Reason)
	}
}

func TestValidateAffectState_RejectsNaNAndInf(t *testing.T) {
	t.Parallel()
	if err := validateAffectState(AffectState{Valence: nanFloat()}); err == nil {
		t.Error("expected error for NaN valence")
	}
}

func nanFloat() float64 {
	var zero float64
	return zero / zero
}
