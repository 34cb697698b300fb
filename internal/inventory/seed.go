package inventory

import (
	"context"
	"fmt"
	"log/slog"
)

// starterItems is the canonical demo inventory loaded by [Seed].
var starterItems = []Fields{
	{Name: "Toned Milk", Quantity: 25, Category: CategoryDairy, Location: LocationFridge, ReorderThreshold: 10},
	{Name: "Paneer", Quantity: 12, Category: CategoryDairy, Location: LocationFridge, ReorderThreshold: 8},
	{Name: "Tomatoes", Quantity: 15, Category: CategoryVegetables, Location: LocationCounter, ReorderThreshold: 8},
	{Name: "Onions", Quantity: 4, Category: CategoryVegetables, Location: LocationPantry, ReorderThreshold: 6},
	{Name: "Potatoes", Quantity: 30, Category: CategoryVegetables, Location: LocationPantry, ReorderThreshold: 15},
	{Name: "Mangoes", Quantity: 20, Category: CategoryFruits, Location: LocationCounter, ReorderThreshold: 10},
	{Name: "Bananas", Quantity: 3, Category: CategoryFruits, Location: LocationCounter, ReorderThreshold: 8},
	{Name: "Basmati Rice", Quantity: 45, Category: CategoryGrains, Location: LocationPantry, ReorderThreshold: 20},
	{Name: "Atta (Wheat Flour)", Quantity: 6, Category: CategoryGrains, Location: LocationPantry, ReorderThreshold: 10},
	{Name: "Toor Dal", Quantity: 18, Category: CategoryGrains, Location: LocationPantry, ReorderThreshold: 10},
	{Name: "Mustard Oil", Quantity: 4, Category: CategoryOther, Location: LocationPantry, ReorderThreshold: 5},
	{Name: "Jaggery (Gur)", Quantity: 20, Category: CategoryOther, Location: LocationPantry, ReorderThreshold: 10},
}

// Seed loads the starter inventory into an empty store. It is a no-op when
// the store already contains items, so it is safe to run on every start.
func Seed(ctx context.Context, store Store) error {
	existing, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("inventory: seed: list: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("inventory already populated, skipping seed", "items", len(existing))
		return nil
	}

	for _, f := range starterItems {
		if _, err := store.Create(ctx, f); err != nil {
			return fmt.Errorf("inventory: seed %q: %w", f.Name, err)
		}
	}
	slog.Info("seeded starter inventory", "items", len(starterItems))
	return nil
}
