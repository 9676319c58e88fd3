package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bookbridge/bookbridge/pkg/helpers"
)

type sessionEntry struct {
	data    helpers.SessionData
	expires time.Time
}

// SessionStore is a TTL-aware in-process session store.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]sessionEntry)}
}

func (s *SessionStore) Save(_ context.Context, sid string, data helpers.SessionData, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = sessionEntry{data: data, expires: time.Now().Add(ttl)}
	return nil
}

func (s *SessionStore) Get(_ context.Context, sid string) (helpers.SessionData, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[sid]
	if !ok || time.Now().After(e.expires) {
		return helpers.SessionData{}, false, nil
	}
	return e.data, true, nil
}

func (s *SessionStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}

var _ helpers.SessionStore = (*SessionStore)(nil)
