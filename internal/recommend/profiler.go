// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/tomtom215/cartographus/internal/recommend/vectorindex"
)

// genreAxes is the fixed (valence_delta, arousal_delta, intensity)
// table used to derive a content profile's emotional axes. Lowercased
// genre names are looked up here; this table is part of the wire
// contract and changing it invalidates stored profiles.
var genreAxes = map[string][3]float64{
	"comedy":      {0.5, 0.3, 0.6},
	"action":      {0.3, 0.5, 0.8},
	"horror":      {-0.4, 0.7, 0.9},
	"thriller":    {-0.1, 0.6, 0.8},
	"drama":       {-0.2, 0.1, 0.5},
	"romance":     {0.4, 0.1, 0.4},
	"documentary": {0.1, -0.2, 0.3},
	"meditation":  {0.5, -0.7, 0.2},
	"music":       {0.4, 0.3, 0.4},
	"family":      {0.5, 0.1, 0.3},
	"mystery":     {-0.1, 0.4, 0.7},
	"animation":   {0.4, 0.3, 0.4},
	"biography":   {0.0, 0.0, 0.4},
	"fantasy":     {0.3, 0.3, 0.6},
	"scifi":       {0.2, 0.4, 0.6},
	"war":         {-0.5, 0.5, 0.9},
	"sport":       {0.3, 0.5, 0.6},
	"crime":       {-0.3, 0.5, 0.8},
}

// neutralAxes is used when no genre in an item matches the table.
var neutralAxes = [3]float64{0.2, 0.1, 0.5}

// genreTone is the fixed genre->tone fallback table, consulted after
// category overrides and before the content-id parity fallback.
var genreTone = map[string]string{
	"comedy":      "uplifting",
	"horror":      "tense",
	"thriller":    "tense",
	"drama":       "melancholic",
	"romance":     "uplifting",
	"documentary": "serene",
	"meditation":  "calming",
	"music":       "uplifting",
	"action":      "intense",
	"war":         "intense",
	"crime":       "tense",
}

// toneParityCycle is the deterministic 4-tone fallback cycle keyed by
// the content id's first character parity.
var toneParityCycle = []string{"neutral", "serene", "uplifting", "calming"}

// ContentProfiler derives immutable emotional profiles from catalog
// metadata and maintains the backing vector index.
type ContentProfiler struct {
	index *vectorindex.Index

	mu       sync.RWMutex
	profiles map[string]ContentProfile
	titles   map[string]string
}

// NewContentProfiler creates a profiler that upserts embeddings into
// the given vector index.
func NewContentProfiler(index *vectorindex.Index) *ContentProfiler {
	return &ContentProfiler{
		index:    index,
		profiles: make(map[string]ContentProfile),
		titles:   make(map[string]string),
	}
}

// Profile derives a ContentProfile from metadata, upserts its
// embedding into the vector index, and caches the profile. Metadata
// with non-finite numeric fields is rejected.
func (p *ContentProfiler) Profile(meta ContentMetadata) (ContentProfile, error) {
	if math.IsNaN(meta.DurationMinutes) || math.IsInf(meta.DurationMinutes, 0) {
		return ContentProfile{}, fmt.Errorf("profiler: non-finite duration for %q", meta.ContentID)
	}

	valenceDelta, arousalDelta, intensity := averageGenreAxes(meta.Genres)
	complexity := complexityFor(len(meta.Genres))
	tone := primaryTone(meta.Category, meta.Genres, meta.ContentID)

	profile := ContentProfile{
		ContentID:       meta.ContentID,
		PrimaryTone:     tone,
		ValenceDelta:    valenceDelta,
		ArousalDelta:    arousalDelta,
		Intensity:       intensity,
		Complexity:      complexity,
		TargetStates:    anchorsFor(valenceDelta, arousalDelta),
		DurationMinutes: meta.DurationMinutes,
		Category:        meta.Category,
		Genres:          meta.Genres,
	}

	vector := EmbedProfile(profile)
	if err := p.index.Upsert(meta.ContentID, vector, vectorindex.Meta{Title: meta.Title}); err != nil {
		return ContentProfile{}, fmt.Errorf("profiler: upsert embedding: %w", err)
	}

	p.mu.Lock()
	p.profiles[meta.ContentID] = profile
	p.titles[meta.ContentID] = meta.Title
	p.mu.Unlock()

	return profile, nil
}

// Get returns a cached profile by content id.
func (p *ContentProfiler) Get(contentID string) (ContentProfile, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	profile, ok := p.profiles[contentID]
	return profile, ok
}

// Title returns the display title cached for a content id, or "" if
// unknown.
func (p *ContentProfiler) Title(contentID string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.titles[contentID]
}

// averageGenreAxes averages the (valence_delta, arousal_delta,
// intensity) table entries across every matched, lowercased genre. If
// none match, the neutral default is used.
func averageGenreAxes(genres []string) (valenceDelta, arousalDelta, intensity float64) {
	var sum [3]float64
	matched := 0
	for _, g := range genres {
		axes, ok := genreAxes[strings.ToLower(g)]
		if !ok {
			continue
		}
		sum[0] += axes[0]
		sum[1] += axes[1]
		sum[2] += axes[2]
		matched++
	}
	if matched == 0 {
		return neutralAxes[0], neutralAxes[1], neutralAxes[2]
	}
	n := float64(matched)
	return sum[0] / n, sum[1] / n, sum[2] / n
}

// complexityFor implements complexity = min(0.9, 0.3 + 0.15*|genres|);
// 0.3 when there are no genres.
func complexityFor(genreCount int) float64 {
	if genreCount == 0 {
		return 0.3
	}
	c := 0.3 + 0.15*float64(genreCount)
	if c > 0.9 {
		return 0.9
	}
	return c
}

// primaryTone applies category overrides, then the genre->tone table
// in genre order, then a deterministic content-id parity fallback.
func primaryTone(category string, genres []string, contentID string) string {
	switch strings.ToLower(category) {
	case "meditation":
		return "calming"
	case "documentary":
		return "serene"
	case "music":
		return "uplifting"
	}

	for _, g := range genres {
		if tone, ok := genreTone[strings.ToLower(g)]; ok {
			return tone
		}
	}

	if contentID == "" {
		return toneParityCycle[0]
	}
	idx := int(contentID[0]) % len(toneParityCycle)
	return toneParityCycle[idx]
}

// anchorsFor computes the two fixed anchors at 50% and 30% of the
// delta values.
func anchorsFor(valenceDelta, arousalDelta float64) [][2]float64 {
	return [][2]float64{
		{valenceDelta * 0.5, arousalDelta * 0.5},
		{valenceDelta * 0.3, arousalDelta * 0.3},
	}
}
