// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package vectorindex

import "testing"

func TestIndex_UpsertRejectsWrongDims(t *testing.T) {
	t.Parallel()
	idx := New(4)
	if err := idx.Upsert("a", []float64{1, 0, 0}, Meta{}); err == nil {
		t.Fatal("expected error for wrong dimensionality")
	}
}

func TestIndex_UpsertRejectsNonUnitNorm(t *testing.T) {
	t.Parallel()
	idx := New(2)
	if err := idx.Upsert("a", []float64{1, 1}, Meta{}); err == nil {
		t.Fatal("expected error for non-unit-norm vector")
	}
}

func TestIndex_UpsertAllowsZeroVector(t *testing.T) {
	t.Parallel()
	idx := New(2)
	if err := idx.Upsert("a", []float64{0, 0}, Meta{}); err != nil {
		t.Fatalf("zero vector should be accepted: %v", err)
	}
}

func TestIndex_SearchOrdersByScoreDescThenIDAsc(t *testing.T) {
	t.Parallel()
	idx := New(2)
	must(t, idx.Upsert("b", []float64{1, 0}, Meta{Title: "B"}))
	must(t, idx.Upsert("a", []float64{1, 0}, Meta{Title: "A"}))
	must(t, idx.Upsert("c", []float64{0, 1}, Meta{Title: "C"}))

	results := idx.Search([]float64{1, 0}, 10)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	// a and b tie at score 1.0; ascending id breaks the tie.
	if results[0].ID != "a" || results[1].ID != "b" {
		t.Fatalf("expected tie broken by id ascending, got order %v, %v", results[0].ID, results[1].ID)
	}
	if results[2].ID != "c" {
		t.Fatalf("expected c last (orthogonal), got %v", results[2].ID)
	}
}

func TestIndex_SearchRespectsK(t *testing.T) {
	t.Parallel()
	idx := New(2)
	must(t, idx.Upsert("a", []float64{1, 0}, Meta{}))
	must(t, idx.Upsert("b", []float64{1, 0}, Meta{}))

	results := idx.Search([]float64{1, 0}, 1)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestIndex_ReloadSwapsAtomically(t *testing.T) {
	t.Parallel()
	idx := New(2)
	must(t, idx.Upsert("stale", []float64{1, 0}, Meta{}))

	err := idx.Reload(map[string][]float64{"fresh": {0, 1}}, map[string]Meta{"fresh": {Title: "Fresh"}})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if idx.Len() != 1 {
		t.Fatalf("expected 1 entry after reload, got %d", idx.Len())
	}
	results := idx.Search([]float64{0, 1}, 10)
	if len(results) != 1 || results[0].ID != "fresh" {
		t.Fatalf("expected only 'fresh' to remain, got %+v", results)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
