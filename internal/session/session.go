// Package session holds the in-memory record of the authenticated user.
// Exactly one or zero sessions exist at a time; nothing is persisted.
package session

import "sync"

// Session identifies the currently authenticated user.
type Session struct {
	ID       int
	Username string
	Email    string
}

// Store is a thread-safe holder for the current session. The update loop
// is single-threaded, but the drop-folder watcher reads the session from
// its own goroutine, so access is guarded.
type Store struct {
	mu   sync.RWMutex
	cur  Session
	live bool
}

// Set replaces the current session.
func (s *Store) Set(sess Session) {
	s.mu.Lock()
	s.cur = sess
	s.live = true
	s.mu.Unlock()
}

// Clear removes the current session. Idempotent.
func (s *Store) Clear() {
	s.mu.Lock()
	s.cur = Session{}
	s.live = false
	s.mu.Unlock()
}

// Current returns the session and whether one exists.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur, s.live
}

// Username returns the current username, or "" when logged out.
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.live {
		return ""
	}
	return s.cur.Username
}
