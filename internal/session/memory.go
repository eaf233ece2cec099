package session

import (
	"context"
	"sync"
	"time"

	"github.com/promedhq/promed/internal/domain"
)

type memoryEntry struct {
	principal domain.Principal
	expiresAt time.Time
}

// MemoryStore keeps session principals in process memory. Suitable for a
// single-instance deployment; use the Redis store when sessions must
// survive restarts or be shared across instances.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Put(ctx context.Context, token string, principal *domain.Principal, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{
		principal: *principal,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*domain.Principal, error) {
	s.mu.RLock()
	entry, ok := s.entries[token]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNoSession
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, token)
		s.mu.Unlock()
		return nil, ErrNoSession
	}
	principal := entry.principal
	return &principal, nil
}

func (s *MemoryStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
