package alerts

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Harsh7114/Inventory-Tracker/internal/inventory"
	"github.com/Harsh7114/Inventory-Tracker/internal/observe"
)

// Evaluator derives low-stock notifications from inventory state. It is
// stateless; duplicate suppression is delegated to the notification store
// so deduplication works across processes.
type Evaluator struct {
	store   Store
	metrics *observe.Metrics
}

// EvaluatorOption is a functional option for [NewEvaluator].
type EvaluatorOption func(*Evaluator)

// WithMetrics records a counter increment for every notification the
// evaluator creates.
func WithMetrics(m *observe.Metrics) EvaluatorOption {
	return func(e *Evaluator) { e.metrics = m }
}

// NewEvaluator creates an [Evaluator] that writes alerts to store.
func NewEvaluator(store Store, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{store: store}
	for _, o := range opts {
		o(e)
	}
	return e
}

// CheckItem raises a notification when the item is at or below its reorder
// threshold. The severity is "warning", escalating to "danger" when the
// item is fully depleted. While an unread alert for the same item exists,
// no new alert is raised; read alerts never suppress new ones.
//
// Alert failures are logged, not propagated — a notification hiccup must
// never fail the mutation that triggered it.
func (e *Evaluator) CheckItem(ctx context.Context, item inventory.Item) {
	if !item.LowStock() {
		return
	}

	unread, err := e.store.HasUnreadForItem(ctx, item.ID)
	if err != nil {
		slog.Warn("low-stock check failed", "item", item.Name, "error", err)
		return
	}
	if unread {
		return
	}

	severity := SeverityWarning
	message := fmt.Sprintf("Low stock alert: %s is down to %d (reorder at %d)",
		item.Name, item.Quantity, item.ReorderThreshold)
	if item.Quantity == 0 {
		severity = SeverityDanger
		message = fmt.Sprintf("Out of stock: %s is fully depleted", item.Name)
	}

	if _, err := e.store.Create(ctx, Fields{
		Message:  message,
		Severity: severity,
		ItemID:   item.ID,
	}); err != nil {
		slog.Warn("failed to create low-stock notification", "item", item.Name, "error", err)
		return
	}
	e.metrics.RecordNotification(ctx, string(severity))

	slog.Info("low-stock notification raised",
		"item", item.Name,
		"quantity", item.Quantity,
		"threshold", item.ReorderThreshold,
		"severity", severity,
	)
}

// Sweep evaluates every item in the inventory. Intended for startup and for
// periodic re-checks; per-item behaviour is identical to [Evaluator.CheckItem].
func (e *Evaluator) Sweep(ctx context.Context, inv inventory.Store) error {
	items, err := inv.List(ctx)
	if err != nil {
		return fmt.Errorf("alerts: sweep: %w", err)
	}
	for _, it := range items {
		e.CheckItem(ctx, it)
	}
	return nil
}
