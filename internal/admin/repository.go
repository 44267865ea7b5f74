package admin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound occurs when no admin account matches the lookup.
var ErrNotFound = errors.New("admin not found")

// Repository persists admin accounts.
type Repository interface {
	Create(ctx context.Context, a Admin) error
	FindByUsername(ctx context.Context, username string) (Admin, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed admin repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an admin account, replacing the password hash when the
// username already exists.
func (r *PostgresRepository) Create(ctx context.Context, a Admin) error {
	id, err := uuid.Parse(a.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO admins (id, username, password_hash, created_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (username) DO UPDATE SET password_hash = $3`, id, a.Username, a.PasswordHash, a.CreatedAt.UTC())
	return err
}

// FindByUsername fetches an admin account by username.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (Admin, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, password_hash, created_at FROM admins WHERE username = $1`, username)
	var (
		a         Admin
		id        uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&id, &a.Username, &a.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Admin{}, ErrNotFound
		}
		return Admin{}, err
	}
	a.ID = id.String()
	a.CreatedAt = createdAt.UTC()
	return a, nil
}
