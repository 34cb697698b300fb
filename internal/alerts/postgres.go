package alerts

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Schema is the SQL DDL for the notifications table.
const Schema = `
CREATE TABLE IF NOT EXISTS notifications (
    id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
    message    TEXT NOT NULL,
    severity   TEXT NOT NULL CHECK (severity IN ('info', 'warning', 'danger')),
    item_id    TEXT NOT NULL DEFAULT '',
    timestamp  TIMESTAMPTZ NOT NULL DEFAULT now(),
    read       BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_notifications_item_unread ON notifications(item_id) WHERE NOT read;
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

// NewPostgresStore creates a new [PostgresStore]. Call
// [PostgresStore.Migrate] before issuing queries.
func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate executes the [Schema] DDL against the database.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("alerts: migrate: %w", err)
	}
	return nil
}

const notificationColumns = `id, message, severity, item_id, timestamp, read`

// List implements [Store.List].
func (s *PostgresStore) List(ctx context.Context) ([]Notification, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+notificationColumns+` FROM notifications ORDER BY timestamp DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("alerts: list: %w", err)
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("alerts: list: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("alerts: list: %w", err)
	}
	return out, nil
}

// Get implements [Store.Get].
func (s *PostgresStore) Get(ctx context.Context, id string) (Notification, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
	n, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Notification{}, ErrNotFound
		}
		return Notification{}, fmt.Errorf("alerts: get: %w", err)
	}
	return n, nil
}

// Create implements [Store.Create].
func (s *PostgresStore) Create(ctx context.Context, fields Fields) (Notification, error) {
	if err := validate(fields); err != nil {
		return Notification{}, err
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO notifications (message, severity, item_id)
		VALUES ($1, $2, $3)
		RETURNING `+notificationColumns,
		fields.Message, fields.Severity, fields.ItemID)

	n, err := scanNotification(row)
	if err != nil {
		return Notification{}, fmt.Errorf("alerts: create: %w", err)
	}
	return n, nil
}

// MarkRead implements [Store.MarkRead].
func (s *PostgresStore) MarkRead(ctx context.Context, id string) (Notification, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE notifications SET read = TRUE WHERE id = $1
		RETURNING `+notificationColumns, id)

	n, err := scanNotification(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Notification{}, ErrNotFound
		}
		return Notification{}, fmt.Errorf("alerts: mark read: %w", err)
	}
	return n, nil
}

// Delete implements [Store.Delete].
func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("alerts: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// HasUnreadForItem implements [Store.HasUnreadForItem].
func (s *PostgresStore) HasUnreadForItem(ctx context.Context, itemID string) (bool, error) {
	if itemID == "" {
		return false, nil
	}

	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM notifications WHERE item_id = $1 AND NOT read)`,
		itemID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("alerts: has unread for item: %w", err)
	}
	return exists, nil
}

// scanNotification reads one notification from a row scanner.
func scanNotification(row pgx.Row) (Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.Message, &n.Severity, &n.ItemID, &n.Timestamp, &n.Read)
	return n, err
}
