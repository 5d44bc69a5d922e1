package prefs

import "sync"

// Sessions holds each user's in-session preference. Adjustments land here
// first and only reach the repository through an explicit save or reset.
type Sessions struct {
	mu    sync.RWMutex
	prefs map[string]Preference
}

// NewSessions creates an empty session table.
func NewSessions() *Sessions {
	return &Sessions{prefs: make(map[string]Preference)}
}

// Get returns the session preference for userID and whether one exists.
func (s *Sessions) Get(userID string) (Preference, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prefs[userID]
	return p.Clone(), ok
}

// Set replaces the session preference for userID.
func (s *Sessions) Set(userID string, p Preference) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[userID] = p.Clone()
}

// Forget drops the session preference for userID.
func (s *Sessions) Forget(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.prefs, userID)
}
