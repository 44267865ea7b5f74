package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socialboost/socialboost/internal/wallet"
)

// ErrNotFound occurs when no user exists for the requested key.
var ErrNotFound = errors.New("user not found")

// Repository persists users. Upsert provisions the wallet account in the
// same atomic unit as the user row, so every user has exactly one wallet.
type Repository interface {
	Upsert(ctx context.Context, u User) (User, error)
	FindByUID(ctx context.Context, uid string) (User, error)
	Find(ctx context.Context, id string) (User, error)
}

// PostgresRepository stores users in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert inserts the user keyed by the auth provider uid, refreshing profile
// fields on conflict, and provisions the wallet row in the same transaction.
func (r *PostgresRepository) Upsert(ctx context.Context, u User) (User, error) {
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return User{}, err
	}

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return User{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var (
		storedID  uuid.UUID
		createdAt time.Time
	)
	err = tx.QueryRow(ctx, `INSERT INTO users (id, uid, email, name, photo_url, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (uid) DO UPDATE SET email = EXCLUDED.email, name = EXCLUDED.name, photo_url = EXCLUDED.photo_url
        RETURNING id, created_at`,
		id, u.UID, u.Email, u.Name, u.PhotoURL, u.CreatedAt.UTC()).Scan(&storedID, &createdAt)
	if err != nil {
		return User{}, err
	}

	if err := wallet.CreateAccountTx(ctx, tx, storedID.String()); err != nil {
		return User{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return User{}, err
	}

	u.ID = storedID.String()
	u.CreatedAt = createdAt.UTC()
	return u, nil
}

// FindByUID fetches a user by the auth provider uid.
func (r *PostgresRepository) FindByUID(ctx context.Context, uid string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT id, uid, email, name, photo_url, created_at FROM users WHERE uid = $1`, uid)
	return scanUser(row)
}

// Find fetches a user by our internal id.
func (r *PostgresRepository) Find(ctx context.Context, id string) (User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return User{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, uid, email, name, photo_url, created_at FROM users WHERE id = $1`, userID)
	return scanUser(row)
}

func scanUser(row pgx.Row) (User, error) {
	var (
		u         User
		id        uuid.UUID
		createdAt time.Time
	)
	err := row.Scan(&id, &u.UID, &u.Email, &u.Name, &u.PhotoURL, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	u.ID = id.String()
	u.CreatedAt = createdAt.UTC()
	return u, nil
}
