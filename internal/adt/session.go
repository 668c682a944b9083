package adt

import "sync"

// Session holds the per-system security state: the CSRF token required for
// mutating requests and the session cookies captured alongside it. A Session
// is injected into the Client so tests construct independent instances
// instead of sharing process-wide state.
//
// Both fields live and die together: whenever a token is stored from a live
// exchange, the cookies from that same exchange replace the cached ones.
// Concurrent bootstrap exchanges are not serialized; the last writer wins,
// which is harmless because tokens are fungible.
type Session struct {
	mu      sync.RWMutex
	token   string
	cookies string
}

// NewSession returns an empty session.
func NewSession() *Session {
	return &Session{}
}

// Token returns the cached security token, or "" when none is cached.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Cookies returns the cached session cookie string, or "".
func (s *Session) Cookies() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cookies
}

// SetCredentials stores a token and the cookies captured from the same
// exchange. Empty cookies keep the previous value so a token refresh that
// carried no Set-Cookie header does not drop a live session cookie.
func (s *Session) SetCredentials(token, cookies string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if cookies != "" {
		s.cookies = cookies
	}
}

// Reset clears token and cookies. Used by teardown callers, never by the
// normal request flow.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.cookies = ""
}
