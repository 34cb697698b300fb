package inventory

import (
	"errors"
	"fmt"
)

// Validate checks [Fields] before they reach a store.
//
// Rules:
//   - Name must be non-empty.
//   - Quantity must not be negative.
//   - ReorderThreshold must not be negative.
//
// Category and Location are free text and may be empty; stores fill in
// defaults ("Other", "Pantry") on create.
func Validate(f Fields) error {
	var errs []error

	if f.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if f.Quantity < 0 {
		errs = append(errs, fmt.Errorf("quantity must not be negative, got %d", f.Quantity))
	}
	if f.ReorderThreshold < 0 {
		errs = append(errs, fmt.Errorf("reorderThreshold must not be negative, got %d", f.ReorderThreshold))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// applyDefaults fills empty Category and Location on create. A zero
// ReorderThreshold is kept as-is — callers that want the category default
// use [DefaultThresholdFor].
func applyDefaults(f Fields) Fields {
	if f.Category == "" {
		f.Category = CategoryOther
	}
	if f.Location == "" {
		f.Location = LocationPantry
	}
	return f
}
