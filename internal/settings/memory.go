package settings

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu     sync.RWMutex
	values map[string]Setting
}

// NewMemoryStore constructs an in-memory settings store for tests.
func NewMemoryStore() Store {
	return &memoryStore{values: make(map[string]Setting)}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	setting, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return setting.Value, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) (Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	setting := Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	s.values[key] = setting
	return setting, nil
}

func (s *memoryStore) All(_ context.Context) ([]Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Setting, 0, len(s.values))
	for _, setting := range s.values {
		out = append(out, setting)
	}
	return out, nil
}
