// Package inventory provides the inventory item data model and storage for
// the Inventory Tracker.
//
// Items are plain values validated by [Validate] before they reach a [Store].
// Two store implementations are provided: [MemStore] for tests and
// single-process deployments, and [PostgresStore] for persistent deployments.
//
// All store operations are safe for concurrent use.
package inventory

import "time"

// Item is a single tracked inventory entry. The ID and timestamps are
// assigned by the store; callers create items via [Fields].
type Item struct {
	// ID is the store-assigned unique identifier.
	ID string `json:"id"`

	// Name is the item's display name (e.g., "Basmati Rice").
	Name string `json:"name"`

	// Quantity is the number of units on hand. Never negative.
	Quantity int `json:"quantity"`

	// Category groups the item (e.g., "Fruits", "Dairy", "Grains").
	Category string `json:"category"`

	// Location is where the item is stored (e.g., "Pantry", "Fridge").
	Location string `json:"location"`

	// ReorderThreshold is the quantity at or below which the item is
	// considered low-stock.
	ReorderThreshold int `json:"reorderThreshold"`

	// LastUpdated is refreshed by the store on every mutation.
	LastUpdated time.Time `json:"lastUpdated"`

	// CreatedAt is set once by the store when the item is created.
	CreatedAt time.Time `json:"createdAt"`
}

// LowStock reports whether the item is at or below its reorder threshold.
func (i Item) LowStock() bool {
	return i.Quantity <= i.ReorderThreshold
}

// Fields carries the caller-settable attributes of an item, used for creates
// and full updates. It has no identity; the store assigns ID and timestamps.
type Fields struct {
	Name             string `json:"name"`
	Quantity         int    `json:"quantity"`
	Category         string `json:"category"`
	Location         string `json:"location"`
	ReorderThreshold int    `json:"reorderThreshold"`
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Name             *string `json:"name,omitempty"`
	Quantity         *int    `json:"quantity,omitempty"`
	Category         *string `json:"category,omitempty"`
	Location         *string `json:"location,omitempty"`
	ReorderThreshold *int    `json:"reorderThreshold,omitempty"`
}

// Canonical category vocabulary. Category is free text — the extraction
// engine is steered towards these values but the store accepts any non-empty
// string.
const (
	CategoryFruits     = "Fruits"
	CategoryVegetables = "Vegetables"
	CategoryDairy      = "Dairy"
	CategoryGrains     = "Grains"
	CategoryMeat       = "Meat"
	CategoryBeverages  = "Beverages"
	CategorySnacks     = "Snacks"
	CategoryOther      = "Other"
)

// Canonical storage locations.
const (
	LocationPantry  = "Pantry"
	LocationFridge  = "Fridge"
	LocationFreezer = "Freezer"
	LocationCounter = "Counter"
)

// Default reorder thresholds. Staples keep a deeper buffer than perishables.
const (
	DefaultThreshold       = 5
	DefaultStapleThreshold = 10
)

// DefaultThresholdFor returns the default reorder threshold for a category.
func DefaultThresholdFor(category string) int {
	if category == CategoryGrains {
		return DefaultStapleThreshold
	}
	return DefaultThreshold
}
