package orders

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/socialboost/socialboost/internal/wallet"
)

type memoryRepository struct {
	mu     sync.Mutex
	orders map[string]Order
	ledger wallet.Ledger
}

// NewMemoryRepository constructs an in-memory repository for tests. The
// ledger is touched under the repository lock so wallet placement and
// refund-on-reject behave as one unit, mirroring the Postgres transactions.
func NewMemoryRepository(ledger wallet.Ledger) Repository {
	return &memoryRepository{orders: make(map[string]Order), ledger: ledger}
}

func (r *memoryRepository) Create(_ context.Context, o Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return nil
}

func (r *memoryRepository) CreateWithWalletDebit(ctx context.Context, o Order) (wallet.Mutation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	mutation, err := r.ledger.Debit(ctx, o.UserID, o.Total, wallet.Entry{
		Type:        wallet.TypePurchase,
		Description: purchaseDescription(o),
		ReferenceID: o.ID,
	})
	if err != nil {
		return wallet.Mutation{}, err
	}

	r.orders[o.ID] = o
	return mutation, nil
}

func (r *memoryRepository) Get(_ context.Context, id string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	return o, nil
}

func (r *memoryRepository) ListByUser(_ context.Context, userID string) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memoryRepository) ListByEmail(_ context.Context, email string) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Order
	for _, o := range r.orders {
		if o.Email == email {
			out = append(out, o)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memoryRepository) List(_ context.Context, status Status) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Order
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *memoryRepository) UpdateStatus(ctx context.Context, id string, next Status) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return Order{}, ErrNotFound
	}
	if !o.Status.CanTransitionTo(next) {
		return Order{}, ErrInvalidTransition
	}

	if next == StatusRejected && o.WalletPayment {
		if _, err := r.ledger.Credit(ctx, o.UserID, o.Total, wallet.Entry{
			Type:        wallet.TypeRefund,
			Description: refundDescription(o),
			ReferenceID: o.ID,
		}); err != nil {
			return Order{}, err
		}
	}

	o.Status = next
	o.UpdatedAt = time.Now().UTC()
	r.orders[id] = o
	return o, nil
}

func sortNewestFirst(orders []Order) {
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
