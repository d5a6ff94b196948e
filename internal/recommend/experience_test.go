// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import "testing"

func TestExperienceLog_AppendAndAll(t *testing.T) {
	t.Parallel()
	log := NewExperienceLog(10)
	log.Append(Experience{UserID: "u1", ContentID: "c1"})
	log.Append(Experience{UserID: "u1", ContentID: "c2"})

	all := log.All("u1")
	if len(all) != 2 {
		t.Fatalf("expected 2 experiences, got %d", len(all))
	}
	if all[0].ContentID != "c1" || all[1].ContentID != "c2" {
		t.Errorf("expected oldest-first ordering, got %+v", all)
	}
}

func TestExperienceLog_RingDropsOldest(t *testing.T) {
	t.Parallel()
	log := NewExperienceLog(3)
	for i := 0; i < 5; i++ {
		log.Append(Experience{UserID: "u1", ContentID: string(rune('a' + i))})
	}

	all := log.All("u1")
	if len(all) != 3 {
		t.Fatalf("expected ring capped at 3, got %d", len(all))
	}
	if all[0].ContentID != "c" || all[2].ContentID != "e" {
		t.Errorf("expected last 3 entries [c,d,e], got %+v", all)
	}
}

func TestExperienceLog_AllReturnsCopyNotAlias(t *testing.T) {
	t.Parallel()
	log := NewExperienceLog(10)
	log.Append(Experience{UserID: "u1", ContentID: "c1"})

	snapshot := log.All("u1")
	snapshot[0].ContentID = "mutated"

	fresh := log.All("u1")
	if fresh[0].ContentID != "c1" {
		t.Fatalf("expected internal log unaffected by caller mutation, got %q", fresh[0].ContentID)
	}
}

func TestExperienceLog_PerUserIsolation(t *testing.T) {
	t.Parallel()
	log := NewExperienceLog(10)
	log.Append(Experience{UserID: "alice", ContentID: "c1"})

	if got := log.All("bob"); len(got) != 0 {
		t.Fatalf("expected bob's log empty, got %+v", got)
	}
}

func TestExperienceLog_LoadAllTruncatesToCapacity(t *testing.T) {
	t.Parallel()
	log := NewExperienceLog(2)
	log.LoadAll("u1", []Experience{
		{ContentID: "a"}, {ContentID: "b"}, {ContentID: "c"},
	})

	all := log.All("u1")
	if len(all) != 2 {
		t.Fatalf("expected truncation to capacity 2, got %d", len(all))
	}
	if all[0].ContentID != "b" || all[1].ContentID != "c" {
		t.Errorf("expected the most recent 2 entries kept, got %+v", all)
	}
}
