// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package recommend

import (
	"sync"
	"time"
)

// SessionStore holds pending recommendations keyed by (user, content)
// so feedback can recover state_before. Entries expire after ttl and
// are reaped by a periodic sweep (see Engine.StartBackgroundJobs).
type SessionStore struct {
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]Session
}

// NewSessionStore builds a store with the configured TTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]Session),
	}
}

func sessionMapKey(userID, contentID string) string {
	return userID + "\x00" + contentID
}

// Put records a pending recommendation.
func (s *SessionStore) Put(session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionMapKey(session.UserID, session.ContentID)] = session
}

// Take retrieves and removes a pending session. Returns ok=false if
// absent or expired (expired entries are also deleted).
func (s *SessionStore) Take(userID, contentID string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionMapKey(userID, contentID)
	session, ok := s.sessions[key]
	if !ok {
		return Session{}, false
	}
	delete(s.sessions, key)

	if time.Since(session.IssuedAt) > s.ttl {
		return Session{}, false
	}
	return session, true
}

// Sweep removes every session older than the configured TTL and
// returns how many were reaped.
func (s *SessionStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	reaped := 0
	for key, session := range s.sessions {
		if now.Sub(session.IssuedAt) > s.ttl {
			delete(s.sessions, key)
			reaped++
		}
	}
	return reaped
}

// Len returns the number of live (not necessarily unexpired) entries.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
