// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"fmt"
	"math"
)

const (
	valenceBuckets = 5
	arousalBuckets = 5
	stressBuckets  = 3
)

// StateKey is the deterministic string form "v:a:s" of a bucketed
// affect state. Neighboring continuous states may alias to the same
// key; that aliasing is intentional.
type StateKey string

// HashState buckets a continuous affect state onto the 5x5x3 lattice
// and returns its deterministic key. Inputs are clamped first, so the
// function never fails.
func HashState(s AffectState) StateKey {
	s = s.Clamp()

	vBucket := bucket((s.Valence+1)/2, valenceBuckets)
	aBucket := bucket((s.Arousal+1)/2, arousalBuckets)
	sBucket := bucket(s.Stress, stressBuckets)

	return StateKey(fmt.Sprintf("%d:%d:%d", vBucket, aBucket, sBucket))
}

// bucket maps a normalized value in [0, 1] onto one of n left-closed,
// right-open buckets, except the upper bound which falls in the last
// bucket.
func bucket(normalized float64, n int) int {
	b := int(math.Floor(normalized * float64(n)))
	if b < 0 {
		return 0
	}
	if b > n-1 {
		return n - 1
	}
	return b
}
