package voice

import (
	"context"
	"testing"

	"github.com/Harsh7114/Inventory-Tracker/internal/inventory"
)

func newTestStore(t *testing.T) *inventory.MemStore {
	t.Helper()
	return inventory.NewMemStore()
}

func TestApply_CreatesNewItems(t *testing.T) {
	store := newTestStore(t)
	a := NewApplier(store)
	ctx := context.Background()

	candidates := []CandidateItem{
		{Name: "Apples", Quantity: 5, Category: "Fruits", Location: "Counter", ReorderThreshold: 5},
		{Name: "Milk", Quantity: 2, Category: "Dairy", Location: "Fridge", ReorderThreshold: 5},
	}

	applied, failed := a.Apply(ctx, candidates)
	if len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
	if len(applied) != 2 {
		t.Fatalf("applied = %d, want 2", len(applied))
	}
	if applied[0].Name != "Apples" || applied[0].Quantity != 5 {
		t.Errorf("first applied = %+v, want Apples x5", applied[0])
	}
	if applied[1].Name != "Milk" || applied[1].Quantity != 2 {
		t.Errorf("second applied = %+v, want Milk x2", applied[1])
	}
	if applied[0].ID == "" || applied[0].ReorderThreshold != 5 {
		t.Errorf("store did not assign identity/threshold: %+v", applied[0])
	}
}

// A matched candidate increments existing stock instead of creating a
// duplicate item.
func TestApply_MatchedCandidateIncrements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	existing, err := store.Create(ctx, inventory.Fields{
		Name: "Toned Milk", Quantity: 8, Category: "Dairy", Location: "Fridge", ReorderThreshold: 5,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	a := NewApplier(store)
	applied, failed := a.Apply(ctx, []CandidateItem{
		{Name: "milk", Quantity: 2, Category: "Dairy", Location: "Fridge", ReorderThreshold: 5},
	})
	if len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
	if len(applied) != 1 {
		t.Fatalf("applied = %d, want 1", len(applied))
	}
	if applied[0].ID != existing.ID {
		t.Errorf("expected increment of existing item %s, got new item %s", existing.ID, applied[0].ID)
	}
	if applied[0].Quantity != 10 {
		t.Errorf("quantity = %d, want 10", applied[0].Quantity)
	}

	items, _ := store.List(ctx)
	if len(items) != 1 {
		t.Errorf("store has %d items, want 1 (no duplicate)", len(items))
	}
}

// One malformed candidate in a batch of k yields k-1 applied and 1 failure;
// the surviving items are unchanged.
func TestApply_MalformedCandidateDoesNotSinkBatch(t *testing.T) {
	store := newTestStore(t)
	a := NewApplier(store)
	ctx := context.Background()

	candidates := []CandidateItem{
		{Name: "Apples", Quantity: 5, Category: "Fruits", Location: "Counter", ReorderThreshold: 5},
		{Name: "", Quantity: 3, Category: "Dairy", Location: "Fridge", ReorderThreshold: 5}, // malformed
		{Name: "Rice", Quantity: 2, Category: "Grains", Location: "Pantry", ReorderThreshold: 10},
	}

	applied, failed := a.Apply(ctx, candidates)
	if len(applied) != 2 {
		t.Fatalf("applied = %d, want 2", len(applied))
	}
	if len(failed) != 1 {
		t.Fatalf("failed = %d, want 1", len(failed))
	}
	if failed[0].Input.Quantity != 3 {
		t.Errorf("failure records wrong candidate: %+v", failed[0])
	}
	if failed[0].Reason == "" {
		t.Error("failure must carry a human-readable reason")
	}
	if applied[0].Name != "Apples" || applied[0].Quantity != 5 {
		t.Errorf("surviving item changed: %+v", applied[0])
	}
	if applied[1].Name != "Rice" || applied[1].Quantity != 2 {
		t.Errorf("surviving item changed: %+v", applied[1])
	}
}

// Later candidates see items created earlier in the same batch.
func TestApply_LaterCandidatesSeeEarlierCreations(t *testing.T) {
	store := newTestStore(t)
	a := NewApplier(store)
	ctx := context.Background()

	applied, failed := a.Apply(ctx, []CandidateItem{
		{Name: "Mangoes", Quantity: 4, Category: "Fruits", Location: "Counter", ReorderThreshold: 5},
		{Name: "mangoes", Quantity: 2, Category: "Fruits", Location: "Counter", ReorderThreshold: 5},
	})
	if len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
	if len(applied) != 2 {
		t.Fatalf("applied = %d, want 2", len(applied))
	}
	if applied[1].ID != applied[0].ID {
		t.Error("second candidate should have incremented the first")
	}
	if applied[1].Quantity != 6 {
		t.Errorf("final quantity = %d, want 6", applied[1].Quantity)
	}
}

func TestApply_CancelledContextReportsRemainder(t *testing.T) {
	store := newTestStore(t)
	a := NewApplier(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	applied, failed := a.Apply(ctx, []CandidateItem{
		{Name: "Apples", Quantity: 5, Category: "Fruits", Location: "Counter", ReorderThreshold: 5},
		{Name: "Milk", Quantity: 2, Category: "Dairy", Location: "Fridge", ReorderThreshold: 5},
	})
	if len(applied) != 0 {
		t.Errorf("applied = %d, want 0 after cancellation", len(applied))
	}
	if len(failed) != 2 {
		t.Errorf("failed = %d, want 2 (nothing silently dropped)", len(failed))
	}

	items, _ := store.List(context.Background())
	if len(items) != 0 {
		t.Errorf("store has %d items, want 0 partial commits", len(items))
	}
}

// Round-trip: create via the pipeline, then query by a case-different name.
func TestApply_RoundTripQuery(t *testing.T) {
	store := newTestStore(t)
	a := NewApplier(store)
	ctx := context.Background()

	applied, failed := a.Apply(ctx, []CandidateItem{
		{Name: "Paneer", Quantity: 3, Category: "Dairy", Location: "Fridge", ReorderThreshold: 5},
	})
	if len(failed) != 0 || len(applied) != 1 {
		t.Fatalf("apply: applied=%d failed=%d", len(applied), len(failed))
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	res := Resolve(Command{Action: ActionQuery, Item: "PANEER"}, items)
	if res.Outcome != OutcomeReport {
		t.Fatalf("outcome = %q, want report", res.Outcome)
	}
	if res.Matched.ID != applied[0].ID || res.Matched.Quantity != 3 {
		t.Errorf("round-trip query returned %+v, want the created item", res.Matched)
	}
}
