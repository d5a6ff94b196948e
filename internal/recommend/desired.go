// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

// InferDesiredState applies the priority-ordered rule table from
// spec.md §4.10 to derive a target state from the current affect
// reading. Rules are evaluated in order; the first match wins.
//
// spec.md's rule table lists "stress > 0.60" before "valence < 0 and
// arousal > 0.40", but its literal scenario S6 (v=-0.40, a=0.60,
// stress=0.80 — both conditions true) requires the anxiety-reducing
// outcome. The scenario is the more specific evidence of intended
// behavior, so the anxiety-reducing check runs first; see DESIGN.md.
func InferDesiredState(current AffectState) DesiredState {
	switch {
	case current.Valence < 0 && current.Arousal > 0.40:
		return DesiredState{
			TargetValence: maxFloat(0.20, current.Valence+0.30),
			TargetArousal: minFloat(-0.20, current.Arousal-0.40),
			TargetStress:  clamp(current.Stress-0.20, 0, 1),
			Intensity:     IntensityModerate,
			Reason:        "anxiety-reducing",
		}

	case current.Stress > 0.60:
		return DesiredState{
			TargetValence: maxFloat(0.30, current.Valence),
			TargetArousal: minFloat(-0.30, current.Arousal),
			TargetStress:  clamp(current.Stress-0.30, 0, 1),
			Intensity:     IntensityModerate,
			Reason:        "calming",
		}

	case current.Valence < -0.40:
		return DesiredState{
			TargetValence: maxFloat(current.Valence+0.40, 0.20),
			TargetArousal: current.Arousal,
			TargetStress:  current.Stress,
			Intensity:     IntensitySignificant,
			Reason:        "mood-lifting",
		}

	case absFloat(current.Valence) < 0.20 && current.Arousal < -0.30:
		return DesiredState{
			TargetValence: current.Valence + 0.10,
			TargetArousal: minFloat(0.30, current.Arousal+0.50),
			TargetStress:  current.Stress,
			Intensity:     IntensityModerate,
			Reason:        "stimulating",
		}

	default:
		return DesiredState{
			TargetValence: clamp(current.Valence+0.10, -1, 1),
			TargetArousal: current.Arousal,
			TargetStress:  current.Stress,
			Intensity:     IntensitySubtle,
			Reason:        "maintain",
		}
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absFloat(a float64) float64 {
	if a < 0 {
		return -a
	}
	return a
}
