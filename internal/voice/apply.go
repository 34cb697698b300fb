package voice

import (
	"context"
	"log/slog"

	"github.com/Harsh7114/Inventory-Tracker/internal/inventory"
)

// Failure records one candidate that could not be applied, with a
// human-readable reason, so a partially bad batch still reports exactly what
// was kept and what was dropped.
type Failure struct {
	Input  CandidateItem `json:"input"`
	Reason string        `json:"reason"`
}

// Applier commits candidate items against the inventory store.
type Applier struct {
	store inventory.Store
}

// NewApplier creates an Applier writing to store.
func NewApplier(store inventory.Store) *Applier {
	return &Applier{store: store}
}

// Apply commits candidates independently and sequentially, preserving input
// order. A failure on one candidate (validation or store error) is captured
// and the loop continues — the batch never aborts early. Spoken input is
// only partially trustworthy; one malformed item must not sink the other
// four.
//
// Each candidate is matched against the live inventory first: a case-folded
// substring match on an existing name increments that item's stock, and only
// unmatched names create new items. The inventory is re-read per candidate
// so items created earlier in the batch are visible to later ones.
//
// Context cancellation stops the loop; candidates not yet attempted are
// reported as failures, never silently dropped.
func (a *Applier) Apply(ctx context.Context, candidates []CandidateItem) (applied []inventory.Item, failed []Failure) {
	for i, c := range candidates {
		if err := ctx.Err(); err != nil {
			for _, rest := range candidates[i:] {
				failed = append(failed, Failure{Input: rest, Reason: "cancelled before application"})
			}
			return applied, failed
		}

		item, err := a.applyOne(ctx, c)
		if err != nil {
			slog.Warn("candidate item rejected",
				"name", c.Name, "quantity", c.Quantity, "error", err)
			failed = append(failed, Failure{Input: c, Reason: err.Error()})
			continue
		}
		applied = append(applied, item)
	}
	return applied, failed
}

// applyOne upserts a single candidate: increment on match, create otherwise.
func (a *Applier) applyOne(ctx context.Context, c CandidateItem) (inventory.Item, error) {
	items, err := a.store.List(ctx)
	if err != nil {
		return inventory.Item{}, err
	}

	if matched, ok := matchItem(c.Name, items); ok {
		qty := matched.Quantity + c.Quantity
		return a.store.Update(ctx, matched.ID, inventory.Patch{Quantity: &qty})
	}

	return a.store.Create(ctx, inventory.Fields{
		Name:             c.Name,
		Quantity:         c.Quantity,
		Category:         c.Category,
		Location:         c.Location,
		ReorderThreshold: c.ReorderThreshold,
	})
}

// ApplyOperation commits a resolved deterministic-path mutation.
func (a *Applier) ApplyOperation(ctx context.Context, op Operation) (inventory.Item, error) {
	return a.store.Update(ctx, op.Item.ID, inventory.Patch{Quantity: &op.NewQuantity})
}
