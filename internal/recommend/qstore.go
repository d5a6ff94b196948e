// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"sort"
	"sync"
	"time"
)

// qKey identifies one (state_key, content_id) cell within a user's
// shard of the Q-table.
type qKey struct {
	stateKey  StateKey
	contentID string
}

// userShard is one user's independent slice of the policy, guarded by
// its own lock so cross-user access never contends (spec.md §5).
type userShard struct {
	mu      sync.Mutex
	entries map[qKey]*QEntry
}

// QStore is the persistent map (user, state_key, content_id) ->
// (q_value, visit_count). Reads never increment visit_count; only Put
// does (spec.md §9's resolved open question).
type QStore struct {
	shardsMu sync.RWMutex
	shards   map[string]*userShard

	store Store
}

// NewQStore builds an empty, in-memory QStore. The given durable Store
// is kept but never read or written, so entries are not loaded on
// startup or persisted. A nil store is accepted, useful for tests.
func NewQStore(store Store) *QStore {
	return &QStore{
		shards: make(map[string]*userShard),
		store:  store,
	}
}

func (q *QStore) shardFor(userID string) *userShard {
	q.shardsMu.RLock()
	s, ok := q.shards[userID]
	q.shardsMu.RUnlock()
	if ok {
		return s
	}

	q.shardsMu.Lock()
	defer q.shardsMu.Unlock()
	if s, ok = q.shards[userID]; ok {
		return s
	}
	s = &userShard{entries: make(map[qKey]*QEntry)}
	q.shards[userID] = s
	return s
}

// Get returns the Q-entry for (user, state_key, content_id), or false
// if it has never been written.
func (q *QStore) Get(userID string, state StateKey, contentID string) (QEntry, bool) {
	shard := q.shardFor(userID)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	e, ok := shard.entries[qKey{state, contentID}]
	if !ok {
		return QEntry{}, false
	}
	return *e, true
}

// Put writes q_value for (user, state_key, content_id), creating the
// entry if absent and always incrementing visit_count.
func (q *QStore) Put(userID string, state StateKey, contentID string, qValue float64) QEntry {
	shard := q.shardFor(userID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	key := qKey{state, contentID}
	e, ok := shard.entries[key]
	if !ok {
		e = &QEntry{}
		shard.entries[key] = e
	}
	e.QValue = qValue
	e.VisitCount++
	e.LastUpdated = time.Now()
	return *e
}

// Best returns the highest-q entry for (user, state_key), ties broken
// by content id ascending.
func (q *QStore) Best(userID string, state StateKey) (string, float64, bool) {
	shard := q.shardFor(userID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	var bestID string
	var bestQ float64
	found := false
	for k, e := range shard.entries {
		if k.stateKey != state {
			continue
		}
		if !found || e.QValue > bestQ || (e.QValue == bestQ && k.contentID < bestID) {
			bestID = k.contentID
			bestQ = e.QValue
			found = true
		}
	}
	return bestID, bestQ, found
}

// StateEntries returns every Q-entry recorded for (user, state_key),
// ordered by content id for determinism.
func (q *QStore) StateEntries(userID string, state StateKey) []struct {
	ContentID string
	Entry     QEntry
} {
	shard := q.shardFor(userID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	out := make([]struct {
		ContentID string
		Entry     QEntry
	}, 0)
	for k, e := range shard.entries {
		if k.stateKey != state {
			continue
		}
		out = append(out, struct {
			ContentID string
			Entry     QEntry
		}{ContentID: k.contentID, Entry: *e})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ContentID < out[j].ContentID })
	return out
}

// MaxQ returns the highest q_value across every entry at (user,
// state_key), or 0 if there are none (used as max_next in the
// FeedbackProcessor's Bellman update).
func (q *QStore) MaxQ(userID string, state StateKey) float64 {
	shard := q.shardFor(userID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	max := 0.0
	found := false
	for k, e := range shard.entries {
		if k.stateKey != state {
			continue
		}
		if !found || e.QValue > max {
			max = e.QValue
			found = true
		}
	}
	return max
}
