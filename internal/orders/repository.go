package orders

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socialboost/socialboost/internal/wallet"
)

var (
	// ErrNotFound occurs when no order exists for the requested id.
	ErrNotFound = errors.New("order not found")

	// ErrInvalidTransition occurs when a status update does not follow the
	// fulfilment pipeline. The current status stands; nothing is applied.
	ErrInvalidTransition = errors.New("illegal order status transition")
)

// Repository persists orders. CreateWithWalletDebit folds the wallet debit
// into the same atomic unit as the order insert, so a stored wallet order
// always has its matching debit and purchase record. UpdateStatus refunds
// wallet-paid orders atomically when the new status is Rejected.
type Repository interface {
	Create(ctx context.Context, o Order) error
	CreateWithWalletDebit(ctx context.Context, o Order) (wallet.Mutation, error)
	Get(ctx context.Context, id string) (Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListByEmail(ctx context.Context, email string) ([]Order, error)
	List(ctx context.Context, status Status) ([]Order, error)
	UpdateStatus(ctx context.Context, id string, next Status) (Order, error)
}

// PostgresRepository stores orders in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const insertOrderSQL = `INSERT INTO orders (id, user_id, platform, service, link, quantity, total_cents, status, name, email, message, screenshot, wallet_payment, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

const selectOrderSQL = `SELECT id, user_id, platform, service, link, quantity, total_cents, status, name, email, message, screenshot, wallet_payment, created_at, updated_at FROM orders`

// Create inserts a manually paid order.
func (r *PostgresRepository) Create(ctx context.Context, o Order) error {
	args, err := insertArgs(o)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, insertOrderSQL, args...)
	return err
}

// CreateWithWalletDebit debits the payer and inserts the order as one
// transaction. On ErrInsufficientFunds nothing is stored.
func (r *PostgresRepository) CreateWithWalletDebit(ctx context.Context, o Order) (wallet.Mutation, error) {
	args, err := insertArgs(o)
	if err != nil {
		return wallet.Mutation{}, err
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return wallet.Mutation{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	mutation, err := wallet.DebitTx(ctx, tx, o.UserID, o.Total, wallet.Entry{
		Type:        wallet.TypePurchase,
		Description: purchaseDescription(o),
		ReferenceID: o.ID,
	})
	if err != nil {
		return wallet.Mutation{}, err
	}

	if _, err := tx.Exec(ctx, insertOrderSQL, args...); err != nil {
		return wallet.Mutation{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return wallet.Mutation{}, err
	}
	return mutation, nil
}

// Get fetches an order by its public id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return Order{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, selectOrderSQL+` WHERE id = $1`, orderID)
	return scanOrder(row)
}

// ListByUser returns the user's orders, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, selectOrderSQL+` WHERE user_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListByEmail returns orders placed under the given email, newest first.
// Guest checkouts have no user id, so email is their lookup key.
func (r *PostgresRepository) ListByEmail(ctx context.Context, email string) ([]Order, error) {
	rows, err := r.db.Query(ctx, selectOrderSQL+` WHERE email = $1 ORDER BY created_at DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// List returns orders for admin review, optionally filtered by status.
func (r *PostgresRepository) List(ctx context.Context, status Status) ([]Order, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status != "" {
		rows, err = r.db.Query(ctx, selectOrderSQL+` WHERE status = $1 ORDER BY created_at DESC`, string(status))
	} else {
		rows, err = r.db.Query(ctx, selectOrderSQL+` ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// UpdateStatus advances the order along the fulfilment pipeline under a row
// lock. Rejecting a wallet-paid order refunds the debit in the same
// transaction.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, next Status) (Order, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	o, err := lockOrder(ctx, tx, id)
	if err != nil {
		return Order{}, err
	}
	if !o.Status.CanTransitionTo(next) {
		return Order{}, ErrInvalidTransition
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		string(next), now, o.ID); err != nil {
		return Order{}, err
	}

	if next == StatusRejected && o.WalletPayment {
		if _, err := wallet.CreditTx(ctx, tx, o.UserID, o.Total, wallet.Entry{
			Type:        wallet.TypeRefund,
			Description: refundDescription(o),
			ReferenceID: o.ID,
		}); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}

	o.Status = next
	o.UpdatedAt = now
	return o, nil
}

func purchaseDescription(o Order) string {
	return "Purchase of " + o.Service + " on " + o.Platform
}

func refundDescription(o Order) string {
	return "Refund for " + o.Service + " on " + o.Platform
}

func insertArgs(o Order) ([]any, error) {
	id, err := uuid.Parse(o.ID)
	if err != nil {
		return nil, err
	}
	var userID *uuid.UUID
	if o.UserID != "" {
		uid, err := uuid.Parse(o.UserID)
		if err != nil {
			return nil, err
		}
		userID = &uid
	}
	return []any{
		id, userID, o.Platform, o.Service, o.Link, o.Quantity, o.Total,
		string(o.Status), o.Name, o.Email, o.Message, o.Screenshot,
		o.WalletPayment, o.CreatedAt.UTC(), o.UpdatedAt.UTC(),
	}, nil
}

func lockOrder(ctx context.Context, tx pgx.Tx, id string) (Order, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return Order{}, ErrNotFound
	}
	row := tx.QueryRow(ctx, selectOrderSQL+` WHERE id = $1 FOR UPDATE`, orderID)
	return scanOrder(row)
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o         Order
		id        uuid.UUID
		userID    *uuid.UUID
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(&id, &userID, &o.Platform, &o.Service, &o.Link, &o.Quantity, &o.Total,
		&o.Status, &o.Name, &o.Email, &o.Message, &o.Screenshot, &o.WalletPayment, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	o.ID = id.String()
	if userID != nil {
		o.UserID = userID.String()
	}
	o.CreatedAt = createdAt.UTC()
	o.UpdatedAt = updatedAt.UTC()
	return o, nil
}

func collectOrders(rows pgx.Rows) ([]Order, error) {
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
