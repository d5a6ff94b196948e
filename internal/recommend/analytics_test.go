// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import "testing"

func TestComputeProgress_EmptyLogIsExploringAndStable(t *testing.T) {
	t.Parallel()
	snapshot := ComputeProgress(nil, ExplorationState{Epsilon: 0.30}, 0.30)
	if snapshot.TotalExperiences != 0 {
		t.Errorf("TotalExperiences = %d, want 0", snapshot.TotalExperiences)
	}
	if snapshot.Stage != StageExploring {
		t.Errorf("Stage = %q, want %q", snapshot.Stage, StageExploring)
	}
	if snapshot.RewardTrend != TrendStable {
		t.Errorf("RewardTrend = %q, want %q", snapshot.RewardTrend, TrendStable)
	}
}

func TestComputeProgress_CompletionRateAndExplorationSplit(t *testing.T) {
	t.Parallel()
	experiences := []Experience{
		{Completed: true, Reward: 0.5, WasExploration: true},
		{Completed: false, Reward: 0.5, WasExploration: false},
		{Completed: true, Reward: 0.5, WasExploration: false},
	}
	snapshot := ComputeProgress(experiences, ExplorationState{Epsilon: 0.30}, 0.30)

	if snapshot.CompletionRate < 0.66 || snapshot.CompletionRate > 0.67 {
		t.Errorf("CompletionRate = %f, want ~0.667", snapshot.CompletionRate)
	}
	if snapshot.ExplorationCount != 1 || snapshot.ExploitationCount != 2 {
		t.Errorf("expected 1 exploration / 2 exploitation, got %d/%d", snapshot.ExplorationCount, snapshot.ExploitationCount)
	}
}

func TestComputeProgress_HighConvergenceReachesConfident(t *testing.T) {
	t.Parallel()
	experiences := make([]Experience, 100)
	for i := range experiences {
		experiences[i] = Experience{Reward: 1.0, Completed: true}
	}
	snapshot := ComputeProgress(experiences, ExplorationState{Epsilon: 0.05}, 0.30)

	if snapshot.Stage != StageConfident {
		t.Errorf("Stage = %q, want %q (convergence=%f)", snapshot.Stage, StageConfident, snapshot.ConvergenceScore)
	}
}

func TestComputeProgress_LowActivityStaysExploring(t *testing.T) {
	t.Parallel()
	experiences := []Experience{{Reward: -0.5}}
	snapshot := ComputeProgress(experiences, ExplorationState{Epsilon: 0.30}, 0.30)
	if snapshot.Stage != StageExploring {
		t.Errorf("Stage = %q, want %q (convergence=%f)", snapshot.Stage, StageExploring, snapshot.ConvergenceScore)
	}
}

func TestRewardTrend_ShortLogIsStable(t *testing.T) {
	t.Parallel()
	if got := rewardTrend([]Experience{{Reward: 1}, {Reward: -1}}); got != TrendStable {
		t.Errorf("rewardTrend with <3 entries = %q, want %q", got, TrendStable)
	}
}

func TestRewardTrend_DetectsImproving(t *testing.T) {
	t.Parallel()
	experiences := []Experience{
		{Reward: -0.5}, {Reward: -0.5}, {Reward: -0.5},
		{Reward: 0.5}, {Reward: 0.5}, {Reward: 0.5},
	}
	if got := rewardTrend(experiences); got != TrendImproving {
		t.Errorf("rewardTrend = %q, want %q", got, TrendImproving)
	}
}

func TestRewardTrend_DetectsDeclining(t *testing.T) {
	t.Parallel()
	experiences := []Experience{
		{Reward: 0.5}, {Reward: 0.5}, {Reward: 0.5},
		{Reward: -0.5}, {Reward: -0.5}, {Reward: -0.5},
	}
	if got := rewardTrend(experiences); got != TrendDeclining {
		t.Errorf("rewardTrend = %q, want %q", got, TrendDeclining)
	}
}

func TestRewardTrend_WithinMarginIsStable(t *testing.T) {
	t.Parallel()
	experiences := []Experience{
		{Reward: 0.50}, {Reward: 0.50}, {Reward: 0.50},
		{Reward: 0.52}, {Reward: 0.52}, {Reward: 0.52},
	}
	if got := rewardTrend(experiences); got != TrendStable {
		t.Errorf("rewardTrend within margin = %q, want %q", got, TrendStable)
	}
}

func TestEngine_ProgressReflectsLiveState(t *testing.T) {
	t.Parallel()
	e := newTestEngine(t)
	e.experiences.Append(Experience{UserID: "u1", Reward: 0.5, Completed: true})

	snapshot := e.Progress("u1")
	if snapshot.TotalExperiences != 1 {
		t.Errorf("TotalExperiences = %d, want 1", snapshot.TotalExperiences)
	}
}
