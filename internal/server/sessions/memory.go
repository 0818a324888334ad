package sessions

import (
	"context"
	"sync"
	"time"

	"motoreg/internal/common"
)

type memoryEntry struct {
	token   string
	expires time.Time
}

// MemoryStore is an in-process Store used when no Redis address is
// configured and as a test double. Expired entries are reaped lazily on
// read.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	// now is a test seam.
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()

	if !ok {
		return "", common.ErrNotFound
	}
	if s.now().After(e.expires) {
		s.mu.Lock()
		delete(s.entries, sessionID)
		s.mu.Unlock()
		return "", common.ErrNotFound
	}
	return e.token, nil
}

func (s *MemoryStore) Set(ctx context.Context, sessionID, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = memoryEntry{token: token, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
