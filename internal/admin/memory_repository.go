package admin

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu     sync.RWMutex
	admins map[string]Admin
}

// NewMemoryRepository builds an in-memory admin store for testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{admins: make(map[string]Admin)}
}

func (r *memoryRepository) Create(_ context.Context, a Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[a.Username] = a
	return nil
}

func (r *memoryRepository) FindByUsername(_ context.Context, username string) (Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.admins[username]
	if !ok {
		return Admin{}, ErrNotFound
	}
	return a, nil
}
