// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import "math"

// RewardBreakdown is the component-by-component decomposition of a
// computed reward, for diagnostics and testing.
type RewardBreakdown struct {
	Direction        float64
	Magnitude        float64
	Base             float64
	ProximityBonus   float64
	CompletionPenalty float64
	Total            float64
}

// CompletionInfo carries the fields needed to compute the completion
// penalty term.
type CompletionInfo struct {
	Completed     bool
	WatchDuration float64
	TotalDuration float64
}

// RewardCalculator computes the scalar reward for one feedback event.
// proximityThreshold is the configured distance below which the
// proximity bonus applies (spec default 0.30).
type RewardCalculator struct {
	proximityThreshold float64
}

// NewRewardCalculator builds a calculator with the configured
// proximity threshold.
func NewRewardCalculator(proximityThreshold float64) *RewardCalculator {
	return &RewardCalculator{proximityThreshold: proximityThreshold}
}

// Compute returns the clamped total reward and its breakdown. The
// addition order is fixed: direction, then magnitude (folded into
// base), then proximity, then completion penalty, matching spec.md's
// determinism requirement.
func (r *RewardCalculator) Compute(before, after AffectState, desired DesiredState, completion CompletionInfo) RewardBreakdown {
	actualDeltaV := after.Valence - before.Valence
	actualDeltaA := after.Arousal - before.Arousal
	desiredDeltaV := desired.TargetValence - before.Valence
	desiredDeltaA := desired.TargetArousal - before.Arousal

	direction := cosine2D(actualDeltaV, actualDeltaA, desiredDeltaV, desiredDeltaA)
	magnitude := clamp(math.Hypot(actualDeltaV, actualDeltaA)/(2*math.Sqrt2), 0, 1)

	base := 0.6*direction + 0.4*magnitude

	proximity := 0.0
	if math.Hypot(after.Valence-desired.TargetValence, after.Arousal-desired.TargetArousal) < r.proximityThreshold {
		proximity = 0.10
	}

	penalty := completionPenalty(completion)

	total := clamp(base+proximity+penalty, -1, 1)

	return RewardBreakdown{
		Direction:         direction,
		Magnitude:         magnitude,
		Base:              base,
		ProximityBonus:    proximity,
		CompletionPenalty: penalty,
		Total:             total,
	}
}

// completionPenalty implements the additive completion term: 0 when
// completed, else a tiered penalty by watch/total ratio.
func completionPenalty(c CompletionInfo) float64 {
	if c.Completed {
		return 0
	}
	if c.TotalDuration <= 0 {
		return -0.20
	}
	rate := c.WatchDuration / c.TotalDuration
	switch {
	case rate < 0.20:
		return -0.20
	case rate < 0.50:
		return -0.10
	case rate < 0.80:
		return -0.05
	default:
		return 0
	}
}

// cosine2D returns the cosine of the angle between (ax,ay) and
// (bx,by), or 0 when either vector has zero magnitude.
func cosine2D(ax, ay, bx, by float64) float64 {
	magA := math.Hypot(ax, ay)
	magB := math.Hypot(bx, by)
	if magA == 0 || magB == 0 {
		return 0
	}
	return (ax*bx + ay*by) / (magA * magB)
}
