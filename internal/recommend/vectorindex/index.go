// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

// Package vectorindex stores content embeddings keyed by content id
// and answers cosine-similarity top-K queries. A linear scan is used;
// it is documented as acceptable up to catalogs of 10^5 items.
package vectorindex

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// Meta is light, read-only metadata carried alongside a vector so
// search results don't need a second lookup for display fields.
type Meta struct {
	Title string
}

// Result is one scored hit from Search.
type Result struct {
	ID    string
	Score float64
	Meta  Meta
}

type entry struct {
	vector []float64
	meta   Meta
}

// Index is a cosine-similarity vector store. Safe for concurrent use:
// reads never block each other, and the whole entry set can be swapped
// atomically on catalog reload.
type Index struct {
	mu       sync.RWMutex
	entries  map[string]entry
	dims     int
}

// New creates an empty index for vectors of the given dimensionality.
func New(dims int) *Index {
	return &Index{
		entries: make(map[string]entry),
		dims:    dims,
	}
}

// Upsert stores or replaces the vector for id. vector must already be
// unit-norm and have the configured dimensionality.
func (idx *Index) Upsert(id string, vector []float64, meta Meta) error {
	if len(vector) != idx.dims {
		return fmt.Errorf("vectorindex: vector has %d dims, want %d", len(vector), idx.dims)
	}
	if !isUnitNorm(vector) {
		return fmt.Errorf("vectorindex: vector for %q is not unit-norm", id)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries[id] = entry{vector: vector, meta: meta}
	return nil
}

// Reload atomically replaces the entire entry set, for catalog swaps.
func (idx *Index) Reload(entries map[string][]float64, metas map[string]Meta) error {
	next := make(map[string]entry, len(entries))
	for id, v := range entries {
		if len(v) != idx.dims {
			return fmt.Errorf("vectorindex: vector for %q has %d dims, want %d", id, len(v), idx.dims)
		}
		next[id] = entry{vector: v, meta: metas[id]}
	}

	idx.mu.Lock()
	idx.entries = next
	idx.mu.Unlock()
	return nil
}

// Search returns the top-k entries by cosine similarity to query,
// sorted by score descending and ties broken by id ascending. A zero
// query vector scores 0 against everything.
func (idx *Index) Search(query []float64, k int) []Result {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	results := make([]Result, 0, len(idx.entries))
	for id, e := range idx.entries {
		results = append(results, Result{
			ID:    id,
			Score: cosineSimilarity(query, e.vector),
			Meta:  e.meta,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if k < len(results) {
		results = results[:k]
	}
	return results
}

// Len returns the number of stored vectors.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func isUnitNorm(v []float64) bool {
	var sumSq float64
	for _, x := range v {
		sumSq += x * x
	}
	if sumSq == 0 {
		// A documented exception: zero vectors are allowed in and score
		// 0 against every query, per the spec's VectorIndex invariant.
		return true
	}
	norm := math.Sqrt(sumSq)
	const tolerance = 1e-5
	return math.Abs(norm-1) < tolerance
}
