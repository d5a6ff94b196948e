// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import "testing"

func TestQStore_GetNeverIncrementsVisitCount(t *testing.T) {
	t.Parallel()
	q := NewQStore(nil)
	q.Put("u1", "2:2:1", "c1", 0.5)

	for i := 0; i < 5; i++ {
		_, _ = q.Get("u1", "2:2:1", "c1")
	}

	entry, ok := q.Get("u1", "2:2:1", "c1")
	if !ok {
		t.Fatal("expected entry to exist")
	}
	if entry.VisitCount != 1 {
		t.Errorf("VisitCount = %d, want 1 (reads must not increment)", entry.VisitCount)
	}
}

func TestQStore_PutAlwaysIncrementsVisitCount(t *testing.T) {
	t.Parallel()
	q := NewQStore(nil)
	q.Put("u1", "0:0:0", "c1", 0.1)
	q.Put("u1", "0:0:0", "c1", 0.2)
	q.Put("u1", "0:0:0", "c1", 0.3)

	entry, ok := q.Get("u1", "0:0:0", "c1")
	if !ok || entry.VisitCount != 3 {
		t.Fatalf("expected visit_count 3, got %+v (ok=%v)", entry, ok)
	}
	if entry.QValue != 0.3 {
		t.Errorf("QValue = %f, want latest write 0.3", entry.QValue)
	}
}

func TestQStore_BestBreaksTiesByIDAscending(t *testing.T) {
	t.Parallel()
	q := NewQStore(nil)
	q.Put("u1", "1:1:1", "z", 0.5)
	q.Put("u1", "1:1:1", "a", 0.5)
	q.Put("u1", "1:1:1", "m", 0.5)

	id, qv, ok := q.Best("u1", "1:1:1")
	if !ok {
		t.Fatal("expected a best entry")
	}
	if id != "a" {
		t.Errorf("Best() id = %q, want %q (ties broken ascending)", id, "a")
	}
	if qv != 0.5 {
		t.Errorf("Best() q = %f, want 0.5", qv)
	}
}

func TestQStore_PerUserIsolation(t *testing.T) {
	t.Parallel()
	q := NewQStore(nil)
	q.Put("alice", "0:0:0", "c1", 0.9)
	q.Put("bob", "0:0:0", "c1", -0.9)

	aliceEntry, _ := q.Get("alice", "0:0:0", "c1")
	bobEntry, _ := q.Get("bob", "0:0:0", "c1")

	if aliceEntry.QValue != 0.9 || bobEntry.QValue != -0.9 {
		t.Fatalf("expected independent per-user state, got alice=%f bob=%f", aliceEntry.QValue, bobEntry.QValue)
	}
}

func TestQStore_MaxQWithNoEntriesIsZero(t *testing.T) {
	t.Parallel()
	q := NewQStore(nil)
	if got := q.MaxQ("nobody", "0:0:0"); got != 0 {
		t.Errorf("MaxQ on empty state = %f, want 0", got)
	}
}
