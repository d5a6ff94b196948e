// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"testing"
	"time"
)

func TestUserLocks_TryAcquireSucceedsWhenFree(t *testing.T) {
	t.Parallel()
	locks := newUserLocks()
	release, ok := locks.tryAcquire("u1", 0)
	if !ok {
		t.Fatal("expected immediate acquisition on a free lock")
	}
	release()
}

func TestUserLocks_TryAcquireFailsWhenHeldAndWaitExpires(t *testing.T) {
	t.Parallel()
	locks := newUserLocks()
	release, ok := locks.tryAcquire("u1", 0)
	if !ok {
		t.Fatal("expected first acquisition to succeed")
	}
	defer release()

	_, ok = locks.tryAcquire("u1", 10*time.Millisecond)
	if ok {
		t.Fatal("expected contended acquisition to fail within the wait window")
	}
}

func TestUserLocks_TryAcquireSucceedsOnceReleased(t *testing.T) {
	t.Parallel()
	locks := newUserLocks()
	release, ok := locks.tryAcquire("u1", 0)
	if !ok {
		t.Fatal("expected first acquisition to succeed")
	}

	go func() {
		time.Sleep(5 * time.Millisecond)
		release()
	}()

	_, ok = locks.tryAcquire("u1", 100*time.Millisecond)
	if !ok {
		t.Fatal("expected acquisition to succeed once the holder released")
	}
}

func TestUserLocks_DistinctUsersDoNotContend(t *testing.T) {
	t.Parallel()
	locks := newUserLocks()
	releaseA, okA := locks.tryAcquire("alice", 0)
	releaseB, okB := locks.tryAcquire("bob", 0)
	if !okA || !okB {
		t.Fatal("expected independent per-user locks to both acquire immediately")
	}
	releaseA()
	releaseB()
}
