// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"math"
	"sort"
)

// HybridRanker combines policy value (from QStore), retrieval
// similarity, and goal alignment into one ranking score.
type HybridRanker struct {
	qstore *QStore
}

// NewHybridRanker builds a ranker reading Q-values from qstore.
func NewHybridRanker(qstore *QStore) *HybridRanker {
	return &HybridRanker{qstore: qstore}
}

// Rank scores and sorts candidates for one user at one state, given
// the current and desired affect state. Ties in combined score are
// broken by content id ascending.
func (r *HybridRanker) Rank(userID string, state StateKey, current AffectState, desired DesiredState, candidates []Candidate) []Recommendation {
	recs := make([]Recommendation, 0, len(candidates))

	for _, c := range candidates {
		qValue := 0.5
		if entry, ok := r.qstore.Get(userID, state, c.ContentID); ok {
			qValue = entry.QValue
		}
		qNormalized := (qValue + 1) / 2

		alignment := alignmentFor(c.Profile, current, desired)

		combined := (0.7*qNormalized + 0.3*c.Similarity) * alignment

		recs = append(recs, Recommendation{
			ContentID:     c.ContentID,
			QValue:        qValue,
			Similarity:    c.Similarity,
			CombinedScore: combined,
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CombinedScore != recs[j].CombinedScore {
			return recs[i].CombinedScore > recs[j].CombinedScore
		}
		return recs[i].ContentID < recs[j].ContentID
	})

	return recs
}

// alignmentFor computes the goal-alignment factor: cosine of the
// content's (valence_delta, arousal_delta) against the desired
// transition, mapped to [0,1], with a boost above 0.8 capped at 1.10.
func alignmentFor(profile ContentProfile, current AffectState, desired DesiredState) float64 {
	desiredDeltaV := desired.TargetValence - current.Valence
	desiredDeltaA := desired.TargetArousal - current.Arousal

	magProfile := math.Hypot(profile.ValenceDelta, profile.ArousalDelta)
	magDesired := math.Hypot(desiredDeltaV, desiredDeltaA)
	if magProfile == 0 || magDesired == 0 {
		return 0.5
	}

	cos := cosine2D(profile.ValenceDelta, profile.ArousalDelta, desiredDeltaV, desiredDeltaA)
	mapped := (cos + 1) / 2
	if mapped > 0.8 {
		boosted := mapped + 0.5*(mapped-0.8)
		if boosted > 1.10 {
			return 1.10
		}
		return boosted
	}
	return mapped
}
