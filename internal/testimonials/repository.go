package testimonials

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound occurs when no testimonial exists for the requested id.
var ErrNotFound = errors.New("testimonial not found")

// Repository persists testimonials.
type Repository interface {
	Create(ctx context.Context, t Testimonial) error
	Approve(ctx context.Context, id string) (Testimonial, error)
	Delete(ctx context.Context, id string) error
	ListApproved(ctx context.Context) ([]Testimonial, error)
	ListAll(ctx context.Context) ([]Testimonial, error)
}

// PostgresRepository stores testimonials in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectTestimonialSQL = `SELECT id, user_id, name, title, rating, content, avatar, approved, created_at FROM testimonials`

// Create inserts an unapproved testimonial.
func (r *PostgresRepository) Create(ctx context.Context, t Testimonial) error {
	id, err := uuid.Parse(t.ID)
	if err != nil {
		return err
	}
	var userID *uuid.UUID
	if t.UserID != "" {
		uid, err := uuid.Parse(t.UserID)
		if err != nil {
			return err
		}
		userID = &uid
	}
	_, err = r.db.Exec(ctx, `INSERT INTO testimonials (id, user_id, name, title, rating, content, avatar, approved, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)`,
		id, userID, t.Name, t.Title, t.Rating, t.Content, t.Avatar, t.CreatedAt.UTC())
	return err
}

// Approve marks the testimonial storefront-visible.
func (r *PostgresRepository) Approve(ctx context.Context, id string) (Testimonial, error) {
	testimonialID, err := uuid.Parse(id)
	if err != nil {
		return Testimonial{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `UPDATE testimonials SET approved = TRUE WHERE id = $1
        RETURNING id, user_id, name, title, rating, content, avatar, approved, created_at`, testimonialID)
	return scanTestimonial(row)
}

// Delete removes a rejected testimonial.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	testimonialID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM testimonials WHERE id = $1`, testimonialID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListApproved returns storefront-visible testimonials, newest first.
func (r *PostgresRepository) ListApproved(ctx context.Context) ([]Testimonial, error) {
	rows, err := r.db.Query(ctx, selectTestimonialSQL+` WHERE approved ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTestimonials(rows)
}

// ListAll returns every testimonial for the moderation queue, newest first.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]Testimonial, error) {
	rows, err := r.db.Query(ctx, selectTestimonialSQL+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTestimonials(rows)
}

func scanTestimonial(row pgx.Row) (Testimonial, error) {
	var (
		t         Testimonial
		id        uuid.UUID
		userID    *uuid.UUID
		createdAt time.Time
	)
	err := row.Scan(&id, &userID, &t.Name, &t.Title, &t.Rating, &t.Content, &t.Avatar, &t.Approved, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Testimonial{}, ErrNotFound
	}
	if err != nil {
		return Testimonial{}, err
	}
	t.ID = id.String()
	if userID != nil {
		t.UserID = userID.String()
	}
	t.CreatedAt = createdAt.UTC()
	return t, nil
}

func collectTestimonials(rows pgx.Rows) ([]Testimonial, error) {
	var out []Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
