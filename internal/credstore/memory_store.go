package credstore

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	values map[Field]string
}

// NewMemoryStore builds an in-memory credential store for tests and
// redis-less development.
func NewMemoryStore() Store {
	return &memoryStore{values: make(map[Field]string)}
}

// NewMemoryFactory returns a Factory handing out one in-memory store per
// session identifier, shared across requests for the process lifetime.
func NewMemoryFactory() Factory {
	var mu sync.Mutex
	stores := make(map[string]Store)
	return func(sessionID string) Store {
		mu.Lock()
		defer mu.Unlock()
		store, ok := stores[sessionID]
		if !ok {
			store = NewMemoryStore()
			stores[sessionID] = store
		}
		return store
	}
}

func (s *memoryStore) Persist(_ context.Context, cred *Credential) error {
	if cred == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for field, value := range fields(cred) {
		if value == "" {
			continue
		}
		s.values[field] = value
	}
	return nil
}

func (s *memoryStore) Read(_ context.Context, field Field) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[field]
}

func (s *memoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, field := range allFields {
		delete(s.values, field)
	}
	return nil
}
