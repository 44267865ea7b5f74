package wallet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type inMemoryLedger struct {
	mu       sync.Mutex
	balances map[string]int64
	history  map[string][]Transaction
}

// NewInMemory creates a concurrency-safe in-memory ledger useful for unit tests.
func NewInMemory() Ledger {
	return &inMemoryLedger{
		balances: make(map[string]int64),
		history:  make(map[string][]Transaction),
	}
}

func (l *inMemoryLedger) CreateAccount(_ context.Context, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.balances[userID]; !exists {
		l.balances[userID] = 0
	}
	return nil
}

func (l *inMemoryLedger) Balance(_ context.Context, userID string) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, exists := l.balances[userID]
	if !exists {
		return 0, ErrNotFound
	}
	return balance, nil
}

func (l *inMemoryLedger) Credit(_ context.Context, userID string, amount int64, entry Entry) (Mutation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, exists := l.balances[userID]
	if !exists {
		return Mutation{}, ErrNotFound
	}
	if amount <= 0 {
		return Mutation{}, ErrInvalidAmount
	}
	return l.apply(userID, balance+amount, amount, entry)
}

func (l *inMemoryLedger) Debit(_ context.Context, userID string, amount int64, entry Entry) (Mutation, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	balance, exists := l.balances[userID]
	if !exists {
		return Mutation{}, ErrNotFound
	}
	if amount <= 0 {
		return Mutation{}, ErrInvalidAmount
	}
	if balance < amount {
		return Mutation{}, ErrInsufficientFunds
	}
	return l.apply(userID, balance-amount, amount, entry)
}

// apply assumes l.mu is held.
func (l *inMemoryLedger) apply(userID string, newBalance, amount int64, entry Entry) (Mutation, error) {
	if !entry.Type.Valid() {
		return Mutation{}, fmt.Errorf("invalid transaction type %q", entry.Type)
	}
	l.balances[userID] = newBalance
	rec := Transaction{
		ID:           uuid.NewString(),
		UserID:       userID,
		Type:         entry.Type,
		Amount:       amount,
		Description:  entry.Description,
		ReferenceID:  entry.ReferenceID,
		BalanceAfter: newBalance,
		CreatedAt:    time.Now().UTC(),
	}
	l.history[userID] = append(l.history[userID], rec)
	return Mutation{TransactionID: rec.ID, BalanceAfter: newBalance}, nil
}

func (l *inMemoryLedger) Transactions(_ context.Context, userID string) ([]Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	records := l.history[userID]
	out := make([]Transaction, len(records))
	for i, rec := range records {
		out[len(records)-1-i] = rec
	}
	return out, nil
}
