package testimonials

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu      sync.Mutex
	entries map[string]Testimonial
}

// NewMemoryRepository constructs an in-memory repository for tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{entries: make(map[string]Testimonial)}
}

func (r *memoryRepository) Create(_ context.Context, t Testimonial) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[t.ID] = t
	return nil
}

func (r *memoryRepository) Approve(_ context.Context, id string) (Testimonial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.entries[id]
	if !ok {
		return Testimonial{}, ErrNotFound
	}
	t.Approved = true
	r.entries[id] = t
	return t, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *memoryRepository) ListApproved(_ context.Context) ([]Testimonial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Testimonial
	for _, t := range r.entries {
		if t.Approved {
			out = append(out, t)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memoryRepository) ListAll(_ context.Context) ([]Testimonial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Testimonial, 0, len(r.entries))
	for _, t := range r.entries {
		out = append(out, t)
	}
	sortNewestFirst(out)
	return out, nil
}

func sortNewestFirst(entries []Testimonial) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}
