package catalog

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryRepository struct {
	mu    sync.Mutex
	items map[string]Item
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{items: make(map[string]Item)}
}

func (r *memoryRepository) Upsert(_ context.Context, item Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.items {
		if existing.Platform == item.Platform && existing.Name == item.Name {
			existing.Price = item.Price
			existing.Active = true
			existing.UpdatedAt = time.Now().UTC()
			r.items[id] = existing
			return existing, nil
		}
	}

	now := time.Now().UTC()
	item.Active = true
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = item
	return item, nil
}

func (r *memoryRepository) Update(_ context.Context, item Item) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[item.ID]
	if !ok {
		return Item{}, ErrNotFound
	}
	existing.Platform = item.Platform
	existing.Name = item.Name
	existing.Price = item.Price
	existing.Active = item.Active
	existing.UpdatedAt = time.Now().UTC()
	r.items[item.ID] = existing
	return existing, nil
}

func (r *memoryRepository) Deactivate(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	item.Active = false
	item.UpdatedAt = time.Now().UTC()
	r.items[id] = item
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return item, nil
}

func (r *memoryRepository) ListActive(_ context.Context) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Item
	for _, item := range r.items {
		if item.Active {
			out = append(out, item)
		}
	}
	sortItems(out)
	return out, nil
}

func (r *memoryRepository) ListByPlatform(_ context.Context, platform string) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Item
	for _, item := range r.items {
		if item.Active && item.Platform == platform {
			out = append(out, item)
		}
	}
	sortItems(out)
	return out, nil
}

func (r *memoryRepository) Platforms(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for _, item := range r.items {
		if item.Active && !seen[item.Platform] {
			seen[item.Platform] = true
			out = append(out, item.Platform)
		}
	}
	sort.Strings(out)
	return out, nil
}

func sortItems(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Platform != items[j].Platform {
			return items[i].Platform < items[j].Platform
		}
		return items[i].Name < items[j].Name
	})
}
