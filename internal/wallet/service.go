package wallet

import (
	"context"
	"time"
)

// Service exposes wallet operations backed by the ledger.
type Service struct {
	ledger Ledger
}

// NewService builds a wallet service instance.
func NewService(ledger Ledger) *Service {
	return &Service{ledger: ledger}
}

// CreateAccount provisions a zero-balance wallet for the user.
func (s *Service) CreateAccount(ctx context.Context, userID string) error {
	return s.ledger.CreateAccount(ctx, userID)
}

// Balance returns the user's current balance.
func (s *Service) Balance(ctx context.Context, userID string) (Balance, error) {
	amount, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return Balance{}, err
	}
	return Balance{UserID: userID, Amount: amount, AsOf: time.Now().UTC()}, nil
}

// Credit increases the balance and records the transaction atomically.
func (s *Service) Credit(ctx context.Context, userID string, amount int64, entry Entry) (Mutation, error) {
	return s.ledger.Credit(ctx, userID, amount, entry)
}

// Debit decreases the balance and records the transaction atomically.
func (s *Service) Debit(ctx context.Context, userID string, amount int64, entry Entry) (Mutation, error) {
	return s.ledger.Debit(ctx, userID, amount, entry)
}

// Transactions lists the user's balance history, newest first.
func (s *Service) Transactions(ctx context.Context, userID string) ([]Transaction, error) {
	return s.ledger.Transactions(ctx, userID)
}
