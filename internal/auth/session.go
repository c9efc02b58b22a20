package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionBinding ties an opaque session id to a user. Bindings live in
// process memory only, so a restart logs everyone out.
type SessionBinding struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// SessionStore holds the active session bindings. It is injected into the
// auth service and middleware rather than held as package state, so tests
// can run isolated stores side by side.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]SessionBinding
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[uuid.UUID]SessionBinding),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore) Create(userID uuid.UUID, email string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.New()
	s.sessions[id] = SessionBinding{
		UserID:    userID,
		Email:     email,
		ExpiresAt: s.now().Add(s.ttl),
	}
	return id
}

// Get resolves a session id. Expiry is checked lazily on access, expired
// entries are dropped on the spot.
func (s *SessionStore) Get(id uuid.UUID) (SessionBinding, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	binding, ok := s.sessions[id]
	if !ok {
		return SessionBinding{}, false
	}
	if s.now().After(binding.ExpiresAt) {
		delete(s.sessions, id)
		return SessionBinding{}, false
	}
	return binding, true
}

func (s *SessionStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
}
