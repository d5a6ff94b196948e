// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Embedding is a hand-crafted, versioned scheme: no learned weights,
// so two implementations agree bit-for-bit given the same vocabularies
// and ordering. Changing a vocabulary below invalidates every stored
// vector; bump embeddingVocabularyVersion when that happens.
package recommend

import "math"

const (
	embeddingDims              = 1536
	embeddingVocabularyVersion = 1

	toneSegmentStart  = 0
	toneSegmentEnd    = 256
	toneStride        = 32

	valenceDeltaStart = 256
	valenceDeltaEnd   = 384

	arousalDeltaStart = 384
	arousalDeltaEnd   = 512

	intensityStart = 512
	intensityEnd   = 640

	complexityStart = 640
	complexityEnd   = 768

	anchorsStart   = 768
	anchorsEnd     = 1024
	maxAnchorPairs = 3

	genreSegmentStart = 1024
	genreSegmentEnd   = 1152
	maxGenreSlots     = 128

	categorySegmentStart = 1152
	categorySegmentEnd   = 1280
	maxCategorySlots     = 128

	// reservedSegmentStart..embeddingDims is left zero.
	reservedSegmentStart = 1280
)

// toneVocabulary is the fixed 8-tone vocabulary for the one-hot tone
// segment, in publication order. Index * toneStride is the one-hot
// offset within [0, 256).
var toneVocabulary = []string{
	"calming",
	"serene",
	"uplifting",
	"energizing",
	"melancholic",
	"tense",
	"neutral",
	"intense",
}

func toneIndex(tone string) (int, bool) {
	for i, t := range toneVocabulary {
		if t == tone {
			return i, true
		}
	}
	return 0, false
}

// genreSlot and categorySlot hash a name into a stable slot within a
// fixed-size one-hot segment. Both vocabularies are open (any genre or
// category name is accepted) but bounded to maxGenreSlots/
// maxCategorySlots so the embedding stays fixed-width; collisions are
// accepted as part of the documented scheme.
func genreSlot(name string) int {
	return int(fnv32(name) % uint32(maxGenreSlots))
}

func categorySlot(name string) int {
	return int(fnv32(name) % uint32(maxCategorySlots))
}

// fnv32 is the FNV-1a 32-bit hash, computed inline so the embedding
// scheme has no dependency on hash/fnv's internal iteration order
// guarantees beyond what's documented here.
func fnv32(s string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}

// EmbedProfile produces the 1536-D unit-norm affect vector for a
// content profile.
func EmbedProfile(p ContentProfile) []float64 {
	v := make([]float64, embeddingDims)

	if idx, ok := toneIndex(p.PrimaryTone); ok {
		v[toneSegmentStart+idx*toneStride] = 1.0
	}

	gaussianBump(v[valenceDeltaStart:valenceDeltaEnd], normalizeSigned(p.ValenceDelta))
	gaussianBump(v[arousalDeltaStart:arousalDeltaEnd], normalizeSigned(p.ArousalDelta))
	gaussianBump(v[intensityStart:intensityEnd], clamp(p.Intensity, 0, 1))
	gaussianBump(v[complexityStart:complexityEnd], clamp(p.Complexity, 0, 1))

	writeAnchors(v[anchorsStart:anchorsEnd], p.TargetStates)

	for _, g := range p.Genres {
		v[genreSegmentStart+genreSlot(g)] = 1.0
	}
	if p.Category != "" {
		v[categorySegmentStart+categorySlot(p.Category)] = 1.0
	}

	return l2Normalize(v)
}

// GoalDescriptor encodes a desired-state transition (current, desired)
// into the same segment layout as a content profile, with delta
// segments set to (desired - current) so it can be compared against
// content embeddings by cosine similarity.
func GoalDescriptor(current AffectState, desired DesiredState) []float64 {
	v := make([]float64, embeddingDims)

	valenceDelta := desired.TargetValence - current.Valence
	arousalDelta := desired.TargetArousal - current.Arousal

	gaussianBump(v[valenceDeltaStart:valenceDeltaEnd], normalizeSigned(valenceDelta))
	gaussianBump(v[arousalDeltaStart:arousalDeltaEnd], normalizeSigned(arousalDelta))

	intensityMagnitude := intensityToMagnitude(desired.Intensity)
	gaussianBump(v[intensityStart:intensityEnd], intensityMagnitude)

	return l2Normalize(v)
}

func intensityToMagnitude(i Intensity) float64 {
	switch i {
	case IntensitySubtle:
		return 0.25
	case IntensitySignificant:
		return 0.85
	default:
		return 0.55
	}
}

// normalizeSigned maps a value in [-1, 1] onto [0, 1] for use as a
// Gaussian bump center.
func normalizeSigned(x float64) float64 {
	return clamp((x+1)/2, 0, 1)
}

// gaussianBump fills seg (size S) with a Gaussian centered at c*S,
// width S/6, per the published scheme: w_i = exp(-(i-c*S)^2 / (2*(S/6)^2)).
func gaussianBump(seg []float64, c float64) {
	s := float64(len(seg))
	center := c * s
	sigma := s / 6
	if sigma == 0 {
		return
	}
	denom := 2 * sigma * sigma
	for i := range seg {
		d := float64(i) - center
		seg[i] = math.Exp(-(d * d) / denom)
	}
}

// writeAnchors packs up to maxAnchorPairs (valence, arousal) anchors
// into 85-dim pair slots (256/3), each split into a 42-dim valence and
// a 43-dim arousal sub-segment; the segment's last dim stays zero.
func writeAnchors(seg []float64, anchors [][2]float64) {
	n := len(anchors)
	if n > maxAnchorPairs {
		n = maxAnchorPairs
	}
	pairWidth := len(seg) / maxAnchorPairs
	half := pairWidth / 2

	for i := 0; i < n; i++ {
		base := i * pairWidth
		valenceSeg := seg[base : base+half]
		arousalSeg := seg[base+half : base+pairWidth]
		gaussianBump(valenceSeg, normalizeSigned(anchors[i][0]))
		gaussianBump(arousalSeg, normalizeSigned(anchors[i][1]))
	}
}

// l2Normalize returns a unit-norm copy of v. A zero vector stays zero.
func l2Normalize(v []float64) []float64 {
	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}
	if sumSq == 0 {
		return v
	}
	norm := math.Sqrt(sumSq)
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}
