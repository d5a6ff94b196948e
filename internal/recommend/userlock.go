// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"sync"
	"time"
)

// userLocks serializes mutations to one user's QStore/ExplorationState/
// SessionStore/ExperienceLog under a single per-user lock, per spec.md
// §5's shared-resource policy. A request that cannot acquire its user's
// lock within the configured wait is rejected as busy rather than
// queueing indefinitely, grounded on the teacher's trainMu.TryLock
// exclusivity check in the old engine's Train path.
type userLocks struct {
	registryMu sync.Mutex
	perUser    map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{perUser: make(map[string]*sync.Mutex)}
}

func (u *userLocks) lockFor(userID string) *sync.Mutex {
	u.registryMu.Lock()
	defer u.registryMu.Unlock()
	m, ok := u.perUser[userID]
	if !ok {
		m = &sync.Mutex{}
		u.perUser[userID] = m
	}
	return m
}

// tryAcquire attempts to lock userID's mutex, polling until wait
// elapses. Returns a release func and true on success, or false if the
// lock stayed contended for the whole wait window.
func (u *userLocks) tryAcquire(userID string, wait time.Duration) (release func(), ok bool) {
	m := u.lockFor(userID)
	if m.TryLock() {
		return m.Unlock, true
	}

	const pollInterval = 5 * time.Millisecond
	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		time.Sleep(pollInterval)
		if m.TryLock() {
			return m.Unlock, true
		}
	}
	return nil, false
}
