// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"testing"
	"time"
)

// TestFeedback_S1 pins spec scenario S1: a strongly aligned outcome,
// fully watched and completed, yields a reward in [0.55, 0.85] and a
// strictly increasing Q-value.
func TestFeedback_S1(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	stateBefore := AffectState{Valence: -0.60, Arousal: 0.20, Stress: 0.70}
	desired := DesiredState{TargetValence: 0.50, TargetArousal: -0.20, TargetStress: 0.30}
	e.sessions.Put(Session{
		UserID:       "u1",
		ContentID:    "c1",
		StateBefore:  stateBefore,
		DesiredState: desired,
		IssuedAt:     time.Now(),
	})

	stateBeforeKey := HashState(stateBefore)
	qOld := 0.0
	e.qstore.Put("u1", stateBeforeKey, "c1", qOld)

	result, err := e.Feedback(context.Background(), FeedbackInput{
		UserID:        "u1",
		ContentID:     "c1",
		StateAfter:    AffectState{Valence: 0.30, Arousal: -0.10, Stress: 0.40},
		Completed:     true,
		WatchDuration: 30,
		TotalDuration: 30,
	})
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}

	if result.Reward < 0.55 || result.Reward > 0.85 {
		t.Errorf("reward = %f, want within [0.55, 0.85]", result.Reward)
	}
	if result.NewQValue <= qOld {
		t.Errorf("q_new = %f, want strictly greater than q_old = %f", result.NewQValue, qOld)
	}
	if !result.PolicyUpdated {
		t.Error("expected PolicyUpdated to be true")
	}
}

// TestFeedback_S2 pins spec scenario S2: the outcome moves away from
// the desired state and the session was abandoned early, yielding a
// negative reward and a strictly decreasing Q-value.
func TestFeedback_S2(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	stateBefore := AffectState{Valence: 0, Arousal: 0}
	desired := DesiredState{TargetValence: 0.50, TargetArousal: -0.20}
	e.sessions.Put(Session{
		UserID:       "u1",
		ContentID:    "c1",
		StateBefore:  stateBefore,
		DesiredState: desired,
		IssuedAt:     time.Now(),
	})

	stateBeforeKey := HashState(stateBefore)
	qOld := 0.40
	e.qstore.Put("u1", stateBeforeKey, "c1", qOld)

	result, err := e.Feedback(context.Background(), FeedbackInput{
		UserID:        "u1",
		ContentID:     "c1",
		StateAfter:    AffectState{Valence: -0.50, Arousal: 0.60},
		Completed:     false,
		WatchDuration: 5,
		TotalDuration: 30,
	})
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}

	if result.Reward >= 0 {
		t.Errorf("reward = %f, want strictly negative", result.Reward)
	}
	if result.NewQValue >= qOld {
		t.Errorf("q_new = %f, want strictly less than q_old = %f", result.NewQValue, qOld)
	}
}

func TestFeedback_NoPendingSessionReturnsError(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)

	_, err := e.Feedback(context.Background(), FeedbackInput{UserID: "u1", ContentID: "ghost"})
	if err != ErrNoPendingSession {
		t.Fatalf("expected ErrNoPendingSession, got %v", err)
	}
}

func TestFeedback_IsOneShotPerSession(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	e.sessions.Put(Session{UserID: "u1", ContentID: "c1", IssuedAt: time.Now()})

	if _, err := e.Feedback(context.Background(), FeedbackInput{UserID: "u1", ContentID: "c1"}); err != nil {
		t.Fatalf("first feedback: %v", err)
	}
	if _, err := e.Feedback(context.Background(), FeedbackInput{UserID: "u1", ContentID: "c1"}); err != ErrNoPendingSession {
		t.Fatalf("expected second feedback to fail with ErrNoPendingSession, got %v", err)
	}
}

func TestFeedback_RejectsOutOfRangeStateAfter(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	e.sessions.Put(Session{UserID: "u1", ContentID: "c1", IssuedAt: time.Now()})

	_, err := e.Feedback(context.Background(), FeedbackInput{
		UserID:     "u1",
		ContentID:  "c1",
		StateAfter: AffectState{Valence: 3},
	})
	if err != ErrStateOutOfRange {
		t.Fatalf("expected ErrStateOutOfRange, got %v", err)
	}
}

func TestFeedback_AppendsExperienceAndUpdatesProgress(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	e.sessions.Put(Session{UserID: "u1", ContentID: "c1", IssuedAt: time.Now()})

	result, err := e.Feedback(context.Background(), FeedbackInput{
		UserID:        "u1",
		ContentID:     "c1",
		Completed:     true,
		WatchDuration: 10,
		TotalDuration: 10,
	})
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}

	all := e.experiences.All("u1")
	if len(all) != 1 {
		t.Fatalf("expected 1 experience recorded, got %d", len(all))
	}
	if result.LearningProgress.TotalExperiences != 1 {
		t.Errorf("expected progress snapshot to reflect 1 experience, got %d", result.LearningProgress.TotalExperiences)
	}
}

func TestFeedback_AbortsBeforeMutationOnCancelledContext(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	e.sessions.Put(Session{UserID: "u1", ContentID: "c1", IssuedAt: time.Now()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Feedback(ctx, FeedbackInput{UserID: "u1", ContentID: "c1"})
	if err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if _, ok := e.sessions.Take("u1", "c1"); !ok {
		t.Fatal("expected the pending session to survive an aborted feedback call")
	}
	if len(e.experiences.All("u1")) != 0 {
		t.Fatal("expected no experience appended when the context was already cancelled")
	}
}
