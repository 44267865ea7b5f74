package settings

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore stores settings in PostgreSQL.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get fetches a setting value by key.
func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set upserts a setting value.
func (s *PostgresStore) Set(ctx context.Context, key, value string) (Setting, error) {
	now := time.Now().UTC()
	_, err := s.db.Exec(ctx, `INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, $3)
        ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = $3`, key, value, now)
	if err != nil {
		return Setting{}, err
	}
	return Setting{Key: key, Value: value, UpdatedAt: now}, nil
}

// All lists every stored setting.
func (s *PostgresStore) All(ctx context.Context) ([]Setting, error) {
	rows, err := s.db.Query(ctx, `SELECT key, value, updated_at FROM settings ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Setting
	for rows.Next() {
		var (
			setting   Setting
			updatedAt time.Time
		)
		if err := rows.Scan(&setting.Key, &setting.Value, &updatedAt); err != nil {
			return nil, err
		}
		setting.UpdatedAt = updatedAt.UTC()
		out = append(out, setting)
	}
	return out, rows.Err()
}
