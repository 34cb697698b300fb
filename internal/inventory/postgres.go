package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema is the SQL DDL for the inventory_items table. Execute it via
// [PostgresStore.Migrate] or apply it manually during deployment.
const Schema = `
CREATE TABLE IF NOT EXISTS inventory_items (
    id                TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
    name              TEXT NOT NULL,
    quantity          INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    category          TEXT NOT NULL DEFAULT 'Other',
    location          TEXT NOT NULL DEFAULT 'Pantry',
    reorder_threshold INTEGER NOT NULL DEFAULT 5 CHECK (reorder_threshold >= 0),
    last_updated      TIMESTAMPTZ NOT NULL DEFAULT now(),
    created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_inventory_items_name ON inventory_items(lower(name));
`

// DB is the database interface used by [PostgresStore]. Both *pgxpool.Pool
// and *pgx.Conn satisfy this interface.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore is a [Store] backed by a PostgreSQL database.
type PostgresStore struct {
	db DB
}

// Compile-time interface check.
var _ Store = (*PostgresStore)(nil)

// NewPostgresStore creates a new [PostgresStore] that uses the given database
// connection or pool. The caller is responsible for calling
// [PostgresStore.Migrate] to ensure the schema exists before issuing queries.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate executes the [Schema] DDL against the database, creating the
// inventory_items table and indexes if they do not already exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("inventory: migrate: %w", err)
	}
	return nil
}

const itemColumns = `id, name, quantity, category, location, reorder_threshold, last_updated, created_at`

// List implements [Store.List]. Items are returned in creation order, which
// is the collection order the voice resolver relies on.
func (s *PostgresStore) List(ctx context.Context) ([]Item, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+itemColumns+` FROM inventory_items ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("inventory: list: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("inventory: list: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inventory: list: %w", err)
	}
	return items, nil
}

// Get implements [Store.Get].
func (s *PostgresStore) Get(ctx context.Context, id string) (Item, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, fmt.Errorf("inventory: get: %w", err)
	}
	return it, nil
}

// Create implements [Store.Create].
func (s *PostgresStore) Create(ctx context.Context, fields Fields) (Item, error) {
	if err := Validate(fields); err != nil {
		return Item{}, err
	}
	fields = applyDefaults(fields)

	row := s.db.QueryRow(ctx, `
		INSERT INTO inventory_items (name, quantity, category, location, reorder_threshold)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+itemColumns,
		fields.Name, fields.Quantity, fields.Category, fields.Location, fields.ReorderThreshold)

	it, err := scanItem(row)
	if err != nil {
		return Item{}, fmt.Errorf("inventory: create: %w", err)
	}
	return it, nil
}

// Update implements [Store.Update]. The patch is applied as a single
// conditional UPDATE so concurrent point mutations rely on the row lock,
// never on a read-modify-write in Go.
func (s *PostgresStore) Update(ctx context.Context, id string, patch Patch) (Item, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE inventory_items SET
			name              = COALESCE($2, name),
			quantity          = COALESCE($3, quantity),
			category          = COALESCE($4, category),
			location          = COALESCE($5, location),
			reorder_threshold = COALESCE($6, reorder_threshold),
			last_updated      = now()
		WHERE id = $1
		RETURNING `+itemColumns,
		id, patch.Name, patch.Quantity, patch.Category, patch.Location, patch.ReorderThreshold)

	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, fmt.Errorf("inventory: update: %w", err)
	}
	return it, nil
}

// Delete implements [Store.Delete].
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("inventory: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// scanItem reads one item from a row scanner.
func scanItem(row pgx.Row) (Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Name, &it.Quantity, &it.Category, &it.Location,
		&it.ReorderThreshold, &it.LastUpdated, &it.CreatedAt)
	return it, err
}
