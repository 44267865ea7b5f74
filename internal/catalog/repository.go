package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound occurs when no catalog item exists for the requested id.
var ErrNotFound = errors.New("catalog item not found")

// Repository persists catalog items. Upsert is keyed by (platform, name) so
// re-creating an existing service updates its price and reactivates it.
type Repository interface {
	Upsert(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, item Item) (Item, error)
	Deactivate(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Item, error)
	ListActive(ctx context.Context) ([]Item, error)
	ListByPlatform(ctx context.Context, platform string) ([]Item, error)
	Platforms(ctx context.Context) ([]string, error)
}

// PostgresRepository stores catalog items in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectItemSQL = `SELECT id, platform, name, price_cents, active, created_at, updated_at FROM catalog_items`

// Upsert inserts the item, updating price and reactivating on conflict.
func (r *PostgresRepository) Upsert(ctx context.Context, item Item) (Item, error) {
	id, err := uuid.Parse(item.ID)
	if err != nil {
		return Item{}, err
	}
	row := r.db.QueryRow(ctx, `INSERT INTO catalog_items (id, platform, name, price_cents, active, created_at, updated_at)
        VALUES ($1, $2, $3, $4, TRUE, $5, $5)
        ON CONFLICT (platform, name) DO UPDATE SET price_cents = EXCLUDED.price_cents, active = TRUE, updated_at = EXCLUDED.updated_at
        RETURNING id, platform, name, price_cents, active, created_at, updated_at`,
		id, item.Platform, item.Name, item.Price, time.Now().UTC())
	return scanItem(row)
}

// Update replaces the item's mutable fields.
func (r *PostgresRepository) Update(ctx context.Context, item Item) (Item, error) {
	id, err := uuid.Parse(item.ID)
	if err != nil {
		return Item{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `UPDATE catalog_items SET platform = $1, name = $2, price_cents = $3, active = $4, updated_at = $5 WHERE id = $6
        RETURNING id, platform, name, price_cents, active, created_at, updated_at`,
		item.Platform, item.Name, item.Price, item.Active, time.Now().UTC(), id)
	return scanItem(row)
}

// Deactivate hides the item from the storefront without deleting it.
func (r *PostgresRepository) Deactivate(ctx context.Context, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `UPDATE catalog_items SET active = FALSE, updated_at = $1 WHERE id = $2`, time.Now().UTC(), itemID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Get fetches one item by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Item, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return Item{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, selectItemSQL+` WHERE id = $1`, itemID)
	return scanItem(row)
}

// ListActive returns all storefront-visible items.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]Item, error) {
	rows, err := r.db.Query(ctx, selectItemSQL+` WHERE active ORDER BY platform, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// ListByPlatform returns active items for one platform.
func (r *PostgresRepository) ListByPlatform(ctx context.Context, platform string) ([]Item, error) {
	rows, err := r.db.Query(ctx, selectItemSQL+` WHERE active AND platform = $1 ORDER BY name`, platform)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectItems(rows)
}

// Platforms returns the distinct platforms with active items.
func (r *PostgresRepository) Platforms(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT platform FROM catalog_items WHERE active ORDER BY platform`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var platform string
		if err := rows.Scan(&platform); err != nil {
			return nil, err
		}
		out = append(out, platform)
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (Item, error) {
	var (
		item      Item
		id        uuid.UUID
		createdAt time.Time
		updatedAt time.Time
	)
	err := row.Scan(&id, &item.Platform, &item.Name, &item.Price, &item.Active, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, err
	}
	item.ID = id.String()
	item.CreatedAt = createdAt.UTC()
	item.UpdatedAt = updatedAt.UTC()
	return item, nil
}

func collectItems(rows pgx.Rows) ([]Item, error) {
	var out []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
