// Package session holds the client's authentication state for the lifetime
// of the process. Tokens are kept in memory only.
package session

import "sync"

type Session struct {
	mu           sync.RWMutex
	email        string
	accessToken  string
	refreshToken string
}

func New() *Session {
	return &Session{}
}

// Set stores a fresh token pair for email.
func (s *Session) Set(email, accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = email
	s.accessToken = accessToken
	s.refreshToken = refreshToken
}

// UpdateTokens replaces the token pair, keeping the email.
func (s *Session) UpdateTokens(accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
	s.refreshToken = refreshToken
}

// Clear drops all authentication state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = ""
	s.accessToken = ""
	s.refreshToken = ""
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// LoggedIn reports whether the session carries a usable access token.
func (s *Session) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken != ""
}
