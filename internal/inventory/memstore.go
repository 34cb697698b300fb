package inventory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"slices"
	"sync"
	"time"
)

// Compile-time assertion that MemStore satisfies the Store interface.
var _ Store = (*MemStore)(nil)

// MemStore is a thread-safe, in-memory implementation of [Store].
// Items are kept in creation order, which is the collection order the
// voice resolver relies on. Suitable for tests and single-process use.
type MemStore struct {
	mu    sync.RWMutex
	items []Item

	// now is swappable for tests.
	now func() time.Time
}

// NewMemStore returns an initialised [MemStore].
func NewMemStore() *MemStore {
	return &MemStore{now: time.Now}
}

// List implements [Store.List].
func (s *MemStore) List(ctx context.Context) ([]Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items), nil
}

// Get implements [Store.Get].
func (s *MemStore) Get(ctx context.Context, id string) (Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, it := range s.items {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, ErrNotFound
}

// Create implements [Store.Create].
func (s *MemStore) Create(ctx context.Context, fields Fields) (Item, error) {
	if err := Validate(fields); err != nil {
		return Item{}, err
	}
	fields = applyDefaults(fields)

	id, err := generateID()
	if err != nil {
		return Item{}, fmt.Errorf("inventory: generate id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	item := Item{
		ID:               id,
		Name:             fields.Name,
		Quantity:         fields.Quantity,
		Category:         fields.Category,
		Location:         fields.Location,
		ReorderThreshold: fields.ReorderThreshold,
		LastUpdated:      now,
		CreatedAt:        now,
	}
	s.items = append(s.items, item)
	return item, nil
}

// Update implements [Store.Update].
func (s *MemStore) Update(ctx context.Context, id string, patch Patch) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}

		updated := s.items[i]
		if patch.Name != nil {
			updated.Name = *patch.Name
		}
		if patch.Quantity != nil {
			updated.Quantity = *patch.Quantity
		}
		if patch.Category != nil {
			updated.Category = *patch.Category
		}
		if patch.Location != nil {
			updated.Location = *patch.Location
		}
		if patch.ReorderThreshold != nil {
			updated.ReorderThreshold = *patch.ReorderThreshold
		}

		if err := Validate(fieldsOf(updated)); err != nil {
			return Item{}, err
		}

		updated.LastUpdated = s.now()
		s.items[i] = updated
		return updated, nil
	}
	return Item{}, ErrNotFound
}

// Delete implements [Store.Delete].
func (s *MemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = slices.Delete(s.items, i, i+1)
			return nil
		}
	}
	return ErrNotFound
}

// fieldsOf projects an item back to its caller-settable fields for
// re-validation after a patch.
func fieldsOf(it Item) Fields {
	return Fields{
		Name:             it.Name,
		Quantity:         it.Quantity,
		Category:         it.Category,
		Location:         it.Location,
		ReorderThreshold: it.ReorderThreshold,
	}
}

// generateID returns a random 16-character hex string.
func generateID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
