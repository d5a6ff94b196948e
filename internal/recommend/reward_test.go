// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import "testing"

func TestRewardCalculator_PerfectAlignmentIsHighlyPositive(t *testing.T) {
	t.Parallel()
	rc := NewRewardCalculator(0.30)

	before := AffectState{Valence: -0.5, Arousal: 0.5}
	desired := DesiredState{TargetValence: 0, TargetArousal: 0} // delta (0.5, -0.5)
	after := AffectState{Valence: 0, Arousal: 0}   // actual delta (0.5, -0.5), identical direction

	breakdown := rc.Compute(before, after, desired, CompletionInfo{Completed: true})
	if breakdown.Direction < 0.99 {
		t.Errorf("expected near-perfect direction alignment, got %f", breakdown.Direction)
	}
	if breakdown.Total <= 0 {
		t.Errorf("expected positive total reward, got %f", breakdown.Total)
	}
}

func TestRewardCalculator_TotalIsClamped(t *testing.T) {
	t.Parallel()
	rc := NewRewardCalculator(0.30)

	before := AffectState{Valence: -1, Arousal: -1}
	desired := DesiredState{TargetValence: 1, TargetArousal: 1}
	after := AffectState{Valence: 1, Arousal: 1}

	breakdown := rc.Compute(before, after, desired, CompletionInfo{Completed: true})
	if breakdown.Total > 1 || breakdown.Total < -1 {
		t.Fatalf("reward total %f outside [-1, 1]", breakdown.Total)
	}
}

func TestCompletionPenalty_Tiers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		info CompletionInfo
		want float64
	}{
		{"completed waives penalty", CompletionInfo{Completed: true, WatchDuration: 1, TotalDuration: 100}, 0},
		{"zero total duration", CompletionInfo{TotalDuration: 0}, -0.20},
		{"under 20 percent", CompletionInfo{WatchDuration: 10, TotalDuration: 100}, -0.20},
		{"20 to 50 percent", CompletionInfo{WatchDuration: 30, TotalDuration: 100}, -0.10},
		{"50 to 80 percent", CompletionInfo{WatchDuration: 60, TotalDuration: 100}, -0.05},
		{"80 percent or more", CompletionInfo{WatchDuration: 90, TotalDuration: 100}, 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := completionPenalty(tc.info); got != tc.want {
				t.Errorf("completionPenalty(%+v) = %f, want %f", tc.info, got, tc.want)
			}
		})
	}
}

func TestRewardCalculator_ProximityBonusAppliesWithinThreshold(t *testing.T) {
	t.Parallel()
	rc := NewRewardCalculator(0.30)

	before := AffectState{Valence: 0, Arousal: 0}
	desired := DesiredState{TargetValence: 0.1, TargetArousal: 0.1}
	closeAfter := AffectState{Valence: 0.1, Arousal: 0.1}
	farAfter := AffectState{Valence: -0.9, Arousal: -0.9}

	closeBreakdown := rc.Compute(before, closeAfter, desired, CompletionInfo{Completed: true})
	farBreakdown := rc.Compute(before, farAfter, desired, CompletionInfo{Completed: true})

	if closeBreakdown.ProximityBonus != 0.10 {
		t.Errorf("expected proximity bonus 0.10 when within threshold, got %f", closeBreakdown.ProximityBonus)
	}
	if farBreakdown.ProximityBonus != 0 {
		t.Errorf("expected no proximity bonus when far from target, got %f", farBreakdown.ProximityBonus)
	}
}

func TestCosine2D_ZeroMagnitudeReturnsZero(t *testing.T) {
	t.Parallel()
	if got := cosine2D(0, 0, 1, 1); got != 0 {
		t.Errorf("cosine2D with a zero vector = %f, want 0", got)
	}
}
