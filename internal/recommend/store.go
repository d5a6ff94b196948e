// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import "context"

// Store is the durable-storage interface the core consumes. Spec.md
// §1 and §5 place the actual backend outside the core's concerns: the
// core only ever talks to this interface; NewQStore keeps the Store it
// is given, but nothing loads from it or writes back to it.
// internal/recommend/storage provides the default embedded
// implementation.
type Store interface {
	// Get returns the raw value for key, or ok=false if absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put writes value for key, creating or overwriting it.
	Put(ctx context.Context, key string, value []byte) error

	// Range calls fn for every key with the given prefix, in
	// unspecified order. Returning an error from fn stops iteration
	// and propagates.
	Range(ctx context.Context, prefix string, fn func(key string, value []byte) error) error
}

// Persisted key layout, per spec.md §6. Keeping these as functions
// (not raw format strings scattered across the codebase) keeps the
// documented wire contract in one place; no load or save path calls
// them.
func qtableKey(userID string, state StateKey, contentID string) string {
	return "user:" + userID + ":qtable:" + string(state) + ":" + contentID
}

func explorationKey(userID string) string {
	return "user:" + userID + ":exploration"
}

func experienceKey(userID string, timestamp string) string {
	return "user:" + userID + ":experience:" + timestamp
}

func sessionKey(userID, contentID string) string {
	return "session:" + userID + ":" + contentID
}
