package identity

import (
	"context"
	"sync"

	"github.com/socialboost/socialboost/internal/wallet"
)

type memoryRepository struct {
	mu     sync.Mutex
	byUID  map[string]User
	ledger wallet.Ledger
}

// NewMemoryRepository constructs an in-memory repository for tests. Wallet
// provisioning happens under the repository lock, mirroring the Postgres
// transaction.
func NewMemoryRepository(ledger wallet.Ledger) Repository {
	return &memoryRepository{byUID: make(map[string]User), ledger: ledger}
}

func (r *memoryRepository) Upsert(ctx context.Context, u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byUID[u.UID]; ok {
		existing.Email = u.Email
		existing.Name = u.Name
		existing.PhotoURL = u.PhotoURL
		r.byUID[u.UID] = existing
		return existing, nil
	}

	if err := r.ledger.CreateAccount(ctx, u.ID); err != nil {
		return User{}, err
	}
	r.byUID[u.UID] = u
	return u, nil
}

func (r *memoryRepository) FindByUID(_ context.Context, uid string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byUID[uid]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *memoryRepository) Find(_ context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byUID {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}
