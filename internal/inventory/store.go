package inventory

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an item ID does not exist in the store.
var ErrNotFound = errors.New("inventory: item not found")

// ErrInvalid wraps field validation failures from [Validate].
var ErrInvalid = errors.New("inventory: invalid fields")

// Store provides CRUD operations for inventory items.
// Implementations must be safe for concurrent use.
type Store interface {
	// List returns all items in stable creation order.
	List(ctx context.Context) ([]Item, error)

	// Get retrieves an item by ID. Returns [ErrNotFound] if absent.
	Get(ctx context.Context, id string) (Item, error)

	// Create validates fields, fills defaults, and inserts a new item.
	// The returned item carries the store-assigned ID and timestamps.
	Create(ctx context.Context, fields Fields) (Item, error)

	// Update applies a partial update to an existing item and refreshes
	// LastUpdated. Returns [ErrNotFound] if the item does not exist.
	Update(ctx context.Context, id string, patch Patch) (Item, error)

	// Delete removes an item by ID. Returns [ErrNotFound] if absent.
	Delete(ctx context.Context, id string) error
}
