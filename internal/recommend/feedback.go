// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"context"
	"time"
)

// FeedbackInput carries one reported viewing outcome, per spec.md §4.11.
type FeedbackInput struct {
	UserID        string
	ContentID     string
	StateAfter    AffectState
	Completed     bool
	WatchDuration float64
	TotalDuration float64
	Rating        *float64
}

// Feedback recovers the pending session for (user, content), computes
// the reward, appends the experience, applies the Bellman Q-update, and
// decays the user's exploration state. The whole operation is
// all-or-nothing under the user's lock: a cancelled context aborts
// before any state is mutated.
func (e *Engine) Feedback(ctx context.Context, in FeedbackInput) (FeedbackResult, error) {
	if err := validateAffectState(in.StateAfter); err != nil {
		return FeedbackResult{}, err
	}

	release, ok := e.locks.tryAcquire(in.UserID, e.config.Limits.PerUserLockWait)
	if !ok {
		return FeedbackResult{}, ErrUserBusy
	}
	defer release()

	select {
	case <-ctx.Done():
		return FeedbackResult{}, ctx.Err()
	default:
	}

	session, ok := e.sessions.Take(in.UserID, in.ContentID)
	if !ok {
		return FeedbackResult{}, ErrNoPendingSession
	}

	stateAfter := in.StateAfter.Clamp()

	breakdown := e.reward.Compute(session.StateBefore, stateAfter, session.DesiredState, CompletionInfo{
		Completed:     in.Completed,
		WatchDuration: in.WatchDuration,
		TotalDuration: in.TotalDuration,
	})

	wasExploration := false
	stateBeforeKey := HashState(session.StateBefore)
	stateAfterKey := HashState(stateAfter)

	qOld := 0.0
	if entry, ok := e.qstore.Get(in.UserID, stateBeforeKey, in.ContentID); ok {
		qOld = entry.QValue
		wasExploration = entry.VisitCount == 0
	}
	maxNext := e.qstore.MaxQ(in.UserID, stateAfterKey)

	alpha := e.config.Learning.Rate
	gamma := e.config.Learning.Discount
	qNew := qOld + alpha*(breakdown.Total+gamma*maxNext-qOld)

	e.qstore.Put(in.UserID, stateBeforeKey, in.ContentID, qNew)

	e.experiences.Append(Experience{
		UserID:         in.UserID,
		Timestamp:      time.Now().UTC(),
		StateBefore:    session.StateBefore,
		ContentID:      in.ContentID,
		StateAfter:     stateAfter,
		DesiredState:   session.DesiredState,
		Reward:         breakdown.Total,
		Completed:      in.Completed,
		WatchDuration:  in.WatchDuration,
		TotalDuration:  in.TotalDuration,
		Rating:         in.Rating,
		WasExploration: wasExploration,
	})

	e.exploration.RecordFeedback(in.UserID, breakdown.Total)

	progress := ComputeProgress(e.experiences.All(in.UserID), e.exploration.Get(in.UserID), e.config.Exploration.Initial)

	e.requestLogger(ctx, in.UserID).Info().
		Str("content_id", in.ContentID).
		Float64("reward", breakdown.Total).
		Float64("q_new", qNew).
		Msg("feedback processed")

	return FeedbackResult{
		Reward:           breakdown.Total,
		PolicyUpdated:    true,
		NewQValue:        qNew,
		LearningProgress: progress,
	}, nil
}
