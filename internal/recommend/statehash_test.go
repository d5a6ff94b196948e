// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import "testing"

func TestHashState_BucketBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state AffectState
		want  StateKey
	}{
		{"minimum corner", AffectState{Valence: -1, Arousal: -1, Stress: 0}, "0:0:0"},
		{"maximum corner falls in last bucket", AffectState{Valence: 1, Arousal: 1, Stress: 1}, "4:4:2"},
		{"neutral midpoint", AffectState{Valence: 0, Arousal: 0, Stress: 0.5}, "2:2:1"},
		{"out of range valence is clamped", AffectState{Valence: 5, Arousal: -5, Stress: 2}, "4:0:2"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HashState(tc.state); got != tc.want {
				t.Errorf("HashState(%+v) = %q, want %q", tc.state, got, tc.want)
			}
		})
	}
}

func TestHashState_Deterministic(t *testing.T) {
	t.Parallel()
	s := AffectState{Valence: 0.37, Arousal: -0.12, Stress: 0.61, Confidence: 0.8}
	a := HashState(s)
	b := HashState(s)
	if a != b {
		t.Fatalf("HashState is not deterministic: %q != %q", a, b)
	}
}

func TestBucket_LeftClosedRightOpenExceptLast(t *testing.T) {
	t.Parallel()
	// With n=5, bucket width is 0.2. 0.2 exactly should land in bucket 1,
	// not bucket 0 (left-closed, right-open), while 1.0 stays in bucket 4.
	if got := bucket(0.2, 5); got != 1 {
		t.Errorf("bucket(0.2, 5) = %d, want 1", got)
	}
	if got := bucket(1.0, 5); got != 4 {
		t.Errorf("bucket(1.0, 5) = %d, want 4", got)
	}
	if got := bucket(0, 5); got != 0 {
		t.Errorf("bucket(0, 5) = %d, want 0", got)
	}
}
