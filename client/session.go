package client

import (
	"sync"

	"github.com/Asadel-Surveillance/asadel-console/models"
)

// Session is the signed-in state shared by every view of one console.
// It is set on login and cleared on logout or on any 401.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *models.UserResponse
}

func NewSession() *Session {
	return &Session{}
}

// Set stores a freshly issued token and its user
func (s *Session) Set(token string, user models.UserResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &user
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the signed-in user, or false when signed out
func (s *Session) User() (models.UserResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.UserResponse{}, false
	}
	return *s.user, true
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// IsAdmin reports whether the signed-in user holds the Admin role
func (s *Session) IsAdmin() bool {
	u, ok := s.User()
	return ok && u.Role == models.RoleAdmin
}
