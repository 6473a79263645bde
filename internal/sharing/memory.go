package sharing

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps grants in process. Used when no Redis is configured.
type MemoryStore struct {
	mu     sync.Mutex
	grants map[string]memoryEntry
	now    func() time.Time
}

type memoryEntry struct {
	grant   Grant
	expires time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{grants: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, key string, grant Grant, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.grants[key] = memoryEntry{grant: grant, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Take(_ context.Context, key string, consume bool) (*Grant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.grants[key]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(e.expires) {
		delete(s.grants, key)
		return nil, nil
	}
	if consume {
		delete(s.grants, key)
	}
	g := e.grant
	return &g, nil
}
