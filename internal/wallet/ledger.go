package wallet

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound occurs when no wallet account exists for the requested user.
	// Accounts are provisioned together with the user, so hitting this means
	// the caller skipped registration.
	ErrNotFound = errors.New("wallet not found")

	// ErrInsufficientFunds occurs when a debit exceeds the available balance.
	// The debit is rejected outright; there are no partial debits.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount indicates a non-positive mutation amount.
	ErrInvalidAmount = errors.New("amount must be positive")
)

// TransactionType classifies a balance-affecting event.
type TransactionType string

const (
	// TypeDeposit is a credit from an approved deposit request.
	TypeDeposit TransactionType = "deposit"
	// TypePurchase is a debit paying for an order.
	TypePurchase TransactionType = "purchase"
	// TypeRefund is a credit reversing a purchase.
	TypeRefund TransactionType = "refund"
)

// Valid reports whether the type is one of the closed set.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeDeposit, TypePurchase, TypeRefund:
		return true
	}
	return false
}

// Entry describes the audit record written alongside a balance mutation.
type Entry struct {
	Type        TransactionType
	Description string
	ReferenceID string
}

// Mutation captures the outcome of a credit or debit.
type Mutation struct {
	TransactionID string
	BalanceAfter  int64
}

// Transaction is an immutable audit record of one balance change. Replaying
// a user's transactions oldest to newest reproduces the current balance, and
// BalanceAfter of the latest record equals the stored balance.
type Transaction struct {
	ID           string
	UserID       string
	Type         TransactionType
	Amount       int64
	Description  string
	ReferenceID  string
	BalanceAfter int64
	CreatedAt    time.Time
}

// Ledger is the single mutator of account balances and the single producer
// of transaction records. Amounts are integer USD cents. Each Credit/Debit
// applies the balance change and appends its record as one atomic unit.
type Ledger interface {
	CreateAccount(ctx context.Context, userID string) error
	Balance(ctx context.Context, userID string) (int64, error)
	Credit(ctx context.Context, userID string, amount int64, entry Entry) (Mutation, error)
	Debit(ctx context.Context, userID string, amount int64, entry Entry) (Mutation, error)
	Transactions(ctx context.Context, userID string) ([]Transaction, error)
}
