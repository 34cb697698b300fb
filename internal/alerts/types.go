// Package alerts provides low-stock notifications: the notification model,
// storage, and the evaluator that derives alerts from inventory state.
package alerts

import "time"

// Severity classifies a notification for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// IsValid reports whether s is a recognised severity.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityDanger:
		return true
	}
	return false
}

// Notification is a single alert shown to the user. The read flag only
// transitions unread → read; a read notification is never resurrected.
type Notification struct {
	// ID is the store-assigned unique identifier.
	ID string `json:"id"`

	// Message is the human-readable alert text.
	Message string `json:"message"`

	// Severity classifies the alert.
	Severity Severity `json:"type"`

	// ItemID links a low-stock alert to the inventory item that triggered
	// it. Empty for manually created notifications.
	ItemID string `json:"itemId,omitempty"`

	// Timestamp is when the alert was raised.
	Timestamp time.Time `json:"timestamp"`

	// Read is the one-way read flag.
	Read bool `json:"read"`
}

// Fields carries the caller-settable attributes of a notification.
type Fields struct {
	Message  string   `json:"message"`
	Severity Severity `json:"type"`
	ItemID   string   `json:"itemId,omitempty"`
}
