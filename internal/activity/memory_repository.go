package activity

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu     sync.RWMutex
	events map[string][]Event
}

// NewMemoryRepository builds an in-memory activity log for tests and
// database-less development.
func NewMemoryRepository() Repository {
	return &memoryRepository{events: make(map[string][]Event)}
}

func (r *memoryRepository) Record(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.SessionID] = append(r.events[event.SessionID], event)
	return nil
}

func (r *memoryRepository) ListRecent(_ context.Context, sessionID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.events[sessionID]
	out := make([]Event, 0, limit)
	for i := len(stored) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, stored[i])
	}
	return out, nil
}
