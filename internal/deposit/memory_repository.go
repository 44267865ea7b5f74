package deposit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/socialboost/socialboost/internal/wallet"
)

type memoryRepository struct {
	mu       sync.Mutex
	deposits map[string]Deposit
	ledger   wallet.Ledger
}

// NewMemoryRepository constructs an in-memory repository for tests. The
// ledger is credited under the repository lock so approval behaves as one
// unit, mirroring the Postgres transaction.
func NewMemoryRepository(ledger wallet.Ledger) Repository {
	return &memoryRepository{deposits: make(map[string]Deposit), ledger: ledger}
}

func (r *memoryRepository) Create(_ context.Context, d Deposit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deposits[d.ID] = d
	return nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Deposit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deposits[id]
	if !ok {
		return Deposit{}, ErrNotFound
	}
	return d, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]Deposit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Deposit
	for _, d := range r.deposits {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memoryRepository) List(_ context.Context, status Status) ([]Deposit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Deposit
	for _, d := range r.deposits {
		if status == "" || d.Status == status {
			out = append(out, d)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memoryRepository) Approve(ctx context.Context, id, note string) (Deposit, wallet.Mutation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deposits[id]
	if !ok {
		return Deposit{}, wallet.Mutation{}, ErrNotFound
	}
	if d.Status != StatusPending {
		return Deposit{}, wallet.Mutation{}, ErrInvalidState
	}

	mutation, err := r.ledger.Credit(ctx, d.UserID, d.AmountUSD, wallet.Entry{
		Type:        wallet.TypeDeposit,
		Description: "Deposit via " + string(d.Method),
		ReferenceID: d.ID,
	})
	if err != nil {
		return Deposit{}, wallet.Mutation{}, err
	}

	d.Status = StatusCompleted
	d.AdminNote = note
	d.UpdatedAt = time.Now().UTC()
	r.deposits[id] = d
	return d, mutation, nil
}

func (r *memoryRepository) Reject(_ context.Context, id, note string) (Deposit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.deposits[id]
	if !ok {
		return Deposit{}, ErrNotFound
	}
	if d.Status != StatusPending {
		return Deposit{}, ErrInvalidState
	}

	d.Status = StatusRejected
	d.AdminNote = note
	d.UpdatedAt = time.Now().UTC()
	r.deposits[id] = d
	return d, nil
}

func sortNewestFirst(deposits []Deposit) {
	sort.Slice(deposits, func(i, j int) bool {
		return deposits[i].CreatedAt.After(deposits[j].CreatedAt)
	})
}
