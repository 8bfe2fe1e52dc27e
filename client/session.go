package client

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"lifeos/domain"
)

// Session holds the authenticated identity for the running client. The
// identity is restored synchronously from local storage at construction, so
// routing decisions never wait on the backend.
type Session struct {
	local  LocalStore
	logger *log.Logger

	mu   sync.RWMutex
	user *domain.User
}

// NewSession creates a session context, restoring a previously saved identity
// if one exists locally.
func NewSession(local LocalStore, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New()
	}
	s := &Session{local: local, logger: logger}
	s.user = local.ReadSession()
	return s
}

// Login persists the identity locally and marks the session authenticated.
func (s *Session) Login(user domain.User) {
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()

	if err := s.local.WriteSession(&user); err != nil {
		s.logger.WithError(err).Warn("failed to persist session identity")
	}
}

// Logout clears the persisted identity and marks the session unauthenticated.
func (s *Session) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.local.ClearSession(); err != nil {
		s.logger.WithError(err).Warn("failed to clear session identity")
	}
}

// Current returns the authenticated user, if any.
func (s *Session) Current() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}
