// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

// PredictOutcome is a pure function from current state + content
// profile to a predicted post-viewing affect state.
func PredictOutcome(current AffectState, profile ContentProfile) AffectState {
	return AffectState{
		Valence:    clamp(current.Valence+profile.ValenceDelta, -1, 1),
		Arousal:    clamp(current.Arousal+profile.ArousalDelta, -1, 1),
		Stress:     clamp(current.Stress-0.3*profile.Intensity, 0, 1),
		Confidence: clamp(0.70-0.20*profile.Complexity, 0.30, 0.95),
	}
}
