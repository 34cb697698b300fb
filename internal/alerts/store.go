package alerts

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a notification ID does not exist in the store.
var ErrNotFound = errors.New("alerts: notification not found")

// Store provides notification persistence.
// Implementations must be safe for concurrent use.
type Store interface {
	// List returns all notifications, newest first.
	List(ctx context.Context) ([]Notification, error)

	// Get retrieves a notification by ID. Returns [ErrNotFound] if absent.
	Get(ctx context.Context, id string) (Notification, error)

	// Create validates fields and inserts a new unread notification.
	Create(ctx context.Context, fields Fields) (Notification, error)

	// MarkRead flips the read flag to true. Marking an already-read
	// notification is a no-op. Returns [ErrNotFound] if absent.
	MarkRead(ctx context.Context, id string) (Notification, error)

	// Delete removes a notification by ID. Returns [ErrNotFound] if absent.
	Delete(ctx context.Context, id string) error

	// HasUnreadForItem reports whether an unread notification exists for
	// the given inventory item. Used by the evaluator to suppress
	// duplicate low-stock alerts.
	HasUnreadForItem(ctx context.Context, itemID string) (bool, error)
}

// ErrInvalid wraps notification field validation failures.
var ErrInvalid = errors.New("alerts: invalid notification")

// validate checks notification fields before they reach a store.
func validate(f Fields) error {
	var errs []error
	if f.Message == "" {
		errs = append(errs, errors.New("message must not be empty"))
	}
	if !f.Severity.IsValid() {
		errs = append(errs, fmt.Errorf("severity %q is not one of info, warning, danger", f.Severity))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
