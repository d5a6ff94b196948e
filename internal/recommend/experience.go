// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import "sync"

// ExperienceLog is an append-only, per-user bounded ring of the most
// recent experiences. Older records are dropped, never mutated.
type ExperienceLog struct {
	capacity int

	mu    sync.Mutex
	byUser map[string][]Experience
}

// NewExperienceLog builds a log that retains up to capacity records
// per user.
func NewExperienceLog(capacity int) *ExperienceLog {
	return &ExperienceLog{
		capacity: capacity,
		byUser:   make(map[string][]Experience),
	}
}

// Append adds one experience for a user, dropping the oldest record
// if the ring is already at capacity.
func (l *ExperienceLog) Append(exp Experience) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.byUser[exp.UserID]
	records = append(records, exp)
	if len(records) > l.capacity {
		records = records[len(records)-l.capacity:]
	}
	l.byUser[exp.UserID] = records
}

// All returns a snapshot copy of a user's experience log, oldest
// first.
func (l *ExperienceLog) All(userID string) []Experience {
	l.mu.Lock()
	defer l.mu.Unlock()

	records := l.byUser[userID]
	out := make([]Experience, len(records))
	copy(out, records)
	return out
}

// LoadAll replaces a user's log wholesale, for startup load from the
// durable store. Records beyond capacity are truncated to the most
// recent ones.
func (l *ExperienceLog) LoadAll(userID string, records []Experience) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(records) > l.capacity {
		records = records[len(records)-l.capacity:]
	}
	cp := make([]Experience, len(records))
	copy(cp, records)
	l.byUser[userID] = cp
}
