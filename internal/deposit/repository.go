package deposit

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
	// ErrNotFound occurs when no deposit exists for the requested id.
	ErrNotFound = errors.New("deposit not found")

	// ErrInvalidState occurs when a decision targets a deposit that is no
	// longer Pending. The prior decision stands; nothing is re-credited.
	ErrInvalidState = errors.New("deposit is not pending")
)

// Repository persists deposit requests. Approve folds the wallet credit into
// the same atomic unit as the status transition, so a Completed deposit
// always has its matching credit and transaction record.
type Repository interface {
	Create(ctx context.Context, d Deposit) error
	Get(ctx context.Context, id string) (Deposit, error)
	ListByUser(ctx context.Context, userID string) ([]Deposit, error)
	List(ctx context.Context, status Status) ([]Deposit, error)
	Approve(ctx context.Context, id, note string) (Deposit, wallet.Mutation, error)
	Reject(ctx context.Context, id, note string) (Deposit, error)
}

// PostgresRepository stores deposits in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a deposit request.
func (r *PostgresRepository) Create(ctx context.Context, d Deposit) error {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return err
	}
	userID, err := uuid.Parse(d.UserID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO deposits (id, user_id, amount_usd_cents, amount_inr, method, screenshot, external_tx_id, status, admin_note, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		id, userID, d.AmountUSD, d.AmountINR, string(d.Method), d.Screenshot, d.ExternalTxID, string(d.Status), d.AdminNote, d.CreatedAt.UTC(), d.UpdatedAt.UTC())
	return err
}

// Get fetches a deposit by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Deposit, error) {
	depositID, err := uuid.Parse(id)
	if err != nil {
		return Deposit{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, user_id, amount_usd_cents, amount_inr, method, screenshot, external_tx_id, status, admin_note, created_at, updated_at
        FROM deposits WHERE id = $1`, depositID)
	return scanDeposit(row)
}

// ListByUser returns the user's deposits, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Deposit, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, `SELECT id, user_id, amount_usd_cents, amount_inr, method, screenshot, external_tx_id, status, admin_note, created_at, updated_at
        FROM deposits WHERE user_id = $1 ORDER BY created_at DESC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeposits(rows)
}

// List returns deposits for admin review, optionally filtered by status.
func (r *PostgresRepository) List(ctx context.Context, status Status) ([]Deposit, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status != "" {
		rows, err = r.db.Query(ctx, `SELECT id, user_id, amount_usd_cents, amount_inr, method, screenshot, external_tx_id, status, admin_note, created_at, updated_at
            FROM deposits WHERE status = $1 ORDER BY created_at DESC`, string(status))
	} else {
		rows, err = r.db.Query(ctx, `SELECT id, user_id, amount_usd_cents, amount_inr, method, screenshot, external_tx_id, status, admin_note, created_at, updated_at
            FROM deposits ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDeposits(rows)
}

// Approve marks the deposit Completed and credits the owner's wallet. The
// status change, the credit and the transaction record commit or roll back
// together; re-approval fails ErrInvalidState without touching the balance.
func (r *PostgresRepository) Approve(ctx context.Context, id, note string) (Deposit, wallet.Mutation, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Deposit{}, wallet.Mutation{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	d, err := lockDeposit(ctx, tx, id)
	if err != nil {
		return Deposit{}, wallet.Mutation{}, err
	}
	if d.Status != StatusPending {
		return Deposit{}, wallet.Mutation{}, ErrInvalidState
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, `UPDATE deposits SET status = $1, admin_note = $2, updated_at = $3 WHERE id = $4`,
		string(StatusCompleted), note, now, d.ID); err != nil {
		return Deposit{}, wallet.Mutation{}, err
	}

	mutation, err := wallet.CreditTx(ctx, tx, d.UserID, d.AmountUSD, wallet.Entry{
		Type:        wallet.TypeDeposit,
		Description: "Deposit via " + string(d.Method),
		ReferenceID: d.ID,
	})
	if err != nil {
		return Deposit{}, wallet.Mutation{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Deposit{}, wallet.Mutation{}, err
	}

	d.Status = StatusCompleted
	d.AdminNote = note
	d.UpdatedAt = now
	return d, mutation, nil
}

// Reject marks the deposit Rejected. No balance effect.
func (r *PostgresRepository) Reject(ctx context.Context, id, note string) (Deposit, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Deposit{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	d, err := lockDeposit(ctx, tx, id)
	if err != nil {
		return Deposit{}, err
	}
	if d.Status != StatusPending {
		return Deposit{}, ErrInvalidState
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(ctx, `UPDATE deposits SET status = $1, admin_note = $2, updated_at = $3 WHERE id = $4`,
		string(StatusRejected), note, now, d.ID); err != nil {
		return Deposit{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Deposit{}, err
	}

	d.Status = StatusRejected
	d.AdminNote = note
	d.UpdatedAt = now
	return d, nil
}

func lockDeposit(ctx context.Context, tx pgx.Tx, id string) (Deposit, error) {
	depositID, err := uuid.Parse(id)
	if err != nil {
		return Deposit{}, ErrNotFound
	}
	row := tx.QueryRow(ctx, `SELECT id, user_id, amount_usd_cents, amount_inr, method, screenshot, external_tx_id, status, admin_note, created_at, updated_at
        FROM deposits WHERE id = $1 FOR UPDATE`, depositID)
	return scanDeposit(row)
}

func scanDeposit(row pgx.Row) (Deposit, error) {
	var (
		d         Deposit
		id        uuid.UUID
		userID    uuid.UUID
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(&id, &userID, &d.AmountUSD, &d.AmountINR, &d.Method, &d.Screenshot, &d.ExternalTxID, &d.Status, &d.AdminNote, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Deposit{}, ErrNotFound
	}
	if err != nil {
		return Deposit{}, err
	}
	d.ID = id.String()
	d.UserID = userID.String()
	d.CreatedAt = createdAt.UTC()
	d.UpdatedAt = updatedAt.UTC()
	return d, nil
}

func collectDeposits(rows pgx.Rows) ([]Deposit, error) {
	var out []Deposit
	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
