package alerts

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
type MemStore struct {
	mu            sync.RWMutex
	notifications []Notification

	now func() time.Time
}

// NewMemStore returns an initialised [MemStore].
func NewMemStore() *MemStore {
	return &MemStore{now: time.Now}
}

// List implements [Store.List]. Newest notifications come first.
func (s *MemStore) List(ctx context.Context) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.notifications)
	slices.Reverse(out)
	return out, nil
}

// Get implements [Store.Get].
func (s *MemStore) Get(ctx context.Context, id string) (Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return Notification{}, ErrNotFound
}

// Create implements [Store.Create].
func (s *MemStore) Create(ctx context.Context, fields Fields) (Notification, error) {
	if err := validate(fields); err != nil {
		return Notification{}, err
	}

	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return Notification{}, fmt.Errorf("alerts: generate id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := Notification{
		ID:        hex.EncodeToString(b),
		Message:   fields.Message,
		Severity:  fields.Severity,
		ItemID:    fields.ItemID,
		Timestamp: s.now(),
	}
	s.notifications = append(s.notifications, n)
	return n, nil
}

// MarkRead implements [Store.MarkRead].
func (s *MemStore) MarkRead(ctx context.Context, id string) (Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return s.notifications[i], nil
		}
	}
	return Notification{}, ErrNotFound
}

// Delete implements [Store.Delete].
func (s *MemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications = slices.Delete(s.notifications, i, i+1)
			return nil
		}
	}
	return ErrNotFound
}

// HasUnreadForItem implements [Store.HasUnreadForItem].
func (s *MemStore) HasUnreadForItem(ctx context.Context, itemID string) (bool, error) {
	if itemID == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notifications {
		if n.ItemID == itemID && !n.Read {
			return true, nil
		}
	}
	return false, nil
}
