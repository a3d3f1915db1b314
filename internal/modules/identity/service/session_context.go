package service

import (
	"sync"

	"studyquest/internal/modules/identity/domain"
)

// SessionContext holds the signed-in identity for the process. It is passed
// to the progress store and the entitlement gate as their identity source.
type SessionContext struct {
	mu      sync.RWMutex
	current *domain.Identity
}

func NewSessionContext() *SessionContext {
	return &SessionContext{}
}

func (s *SessionContext) CurrentUserID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return "", false
	}
	return s.current.UserID, true
}

func (s *SessionContext) Current() (domain.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return domain.Identity{}, false
	}
	return *s.current, true
}

func (s *SessionContext) Set(identity domain.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &identity
}

func (s *SessionContext) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
