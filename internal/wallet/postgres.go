package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLedger persists balances and transaction records in PostgreSQL.
// Balance mutations lock the wallet row FOR UPDATE so concurrent operations
// on the same account serialize instead of losing updates.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed ledger implementation.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// CreateAccount guarantees a zero-balance wallet row exists for the user.
func (l *PostgresLedger) CreateAccount(ctx context.Context, userID string) error {
	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if err := CreateAccountTx(ctx, tx, userID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Balance returns the stored balance for the user's wallet.
func (l *PostgresLedger) Balance(ctx context.Context, userID string) (int64, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return 0, fmt.Errorf("parse user id: %w", err)
	}
	var balance int64
	err = l.db.QueryRow(ctx, `SELECT balance_cents FROM wallets WHERE user_id = $1`, uid).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Credit increases the balance and appends the matching transaction record
// in a single database transaction.
func (l *PostgresLedger) Credit(ctx context.Context, userID string, amount int64, entry Entry) (Mutation, error) {
	return l.mutate(ctx, func(tx pgx.Tx) (Mutation, error) {
		return CreditTx(ctx, tx, userID, amount, entry)
	})
}

// Debit decreases the balance and appends the matching transaction record
// in a single database transaction. Fails with ErrInsufficientFunds when the
// balance cannot cover the amount; the balance is left untouched.
func (l *PostgresLedger) Debit(ctx context.Context, userID string, amount int64, entry Entry) (Mutation, error) {
	return l.mutate(ctx, func(tx pgx.Tx) (Mutation, error) {
		return DebitTx(ctx, tx, userID, amount, entry)
	})
}

func (l *PostgresLedger) mutate(ctx context.Context, op func(pgx.Tx) (Mutation, error)) (Mutation, error) {
	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Mutation{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	res, err := op(tx)
	if err != nil {
		return Mutation{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Mutation{}, err
	}
	return res, nil
}

// Transactions lists the user's transaction records, newest first.
func (l *PostgresLedger) Transactions(ctx context.Context, userID string) ([]Transaction, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	rows, err := l.db.Query(ctx, `SELECT id, user_id, type, amount_cents, description, reference_id, balance_after_cents, created_at
        FROM transactions WHERE user_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Transaction
	for rows.Next() {
		var (
			rec       Transaction
			id        uuid.UUID
			owner     uuid.UUID
			createdAt time.Time
		)
		if err := rows.Scan(&id, &owner, &rec.Type, &rec.Amount, &rec.Description, &rec.ReferenceID, &rec.BalanceAfter, &createdAt); err != nil {
			return nil, err
		}
		rec.ID = id.String()
		rec.UserID = owner.String()
		rec.CreatedAt = createdAt.UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CreateAccountTx provisions a wallet row inside the caller's transaction.
// Used by the identity repository so user and wallet are created atomically.
func CreateAccountTx(ctx context.Context, tx pgx.Tx, userID string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("parse user id: %w", err)
	}
	_, err = tx.Exec(ctx, `INSERT INTO wallets (user_id, balance_cents, created_at, updated_at)
        VALUES ($1, 0, $2, $2) ON CONFLICT (user_id) DO NOTHING`, uid, time.Now().UTC())
	return err
}

// CreditTx applies a credit inside the caller's transaction. Deposit approval
// folds this into the same unit as the deposit status change so a crash can
// never leave a Completed deposit without its credit.
func CreditTx(ctx context.Context, tx pgx.Tx, userID string, amount int64, entry Entry) (Mutation, error) {
	balance, uid, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return Mutation{}, err
	}
	if amount <= 0 {
		return Mutation{}, ErrInvalidAmount
	}
	return applyMutation(ctx, tx, uid, balance+amount, amount, entry)
}

// DebitTx applies a debit inside the caller's transaction, rejecting it with
// ErrInsufficientFunds when the locked balance cannot cover the amount.
func DebitTx(ctx context.Context, tx pgx.Tx, userID string, amount int64, entry Entry) (Mutation, error) {
	balance, uid, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return Mutation{}, err
	}
	if amount <= 0 {
		return Mutation{}, ErrInvalidAmount
	}
	if balance < amount {
		return Mutation{}, ErrInsufficientFunds
	}
	return applyMutation(ctx, tx, uid, balance-amount, amount, entry)
}

func lockBalance(ctx context.Context, tx pgx.Tx, userID string) (int64, uuid.UUID, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return 0, uuid.Nil, fmt.Errorf("parse user id: %w", err)
	}
	var balance int64
	err = tx.QueryRow(ctx, `SELECT balance_cents FROM wallets WHERE user_id = $1 FOR UPDATE`, uid).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, uuid.Nil, ErrNotFound
	}
	if err != nil {
		return 0, uuid.Nil, err
	}
	return balance, uid, nil
}

func applyMutation(ctx context.Context, tx pgx.Tx, uid uuid.UUID, newBalance, amount int64, entry Entry) (Mutation, error) {
	if !entry.Type.Valid() {
		return Mutation{}, fmt.Errorf("invalid transaction type %q", entry.Type)
	}
	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, `UPDATE wallets SET balance_cents = $1, updated_at = $2 WHERE user_id = $3`, newBalance, now, uid); err != nil {
		return Mutation{}, err
	}
	txID := uuid.New()
	if _, err := tx.Exec(ctx, `INSERT INTO transactions (id, user_id, type, amount_cents, description, reference_id, balance_after_cents, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		txID, uid, string(entry.Type), amount, entry.Description, entry.ReferenceID, newBalance, now); err != nil {
		return Mutation{}, err
	}
	return Mutation{TransactionID: txID.String(), BalanceAfter: newBalance}, nil
}
