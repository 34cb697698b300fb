package voice

import (
	"strings"

	"github.com/Harsh7114/Inventory-Tracker/internal/inventory"
)

// Outcome classifies the result of resolving a Command against inventory.
type Outcome string

const (
	// OutcomeOperation means the command produced a fully determined
	// mutation, ready for application.
	OutcomeOperation Outcome = "operation"

	// OutcomeReport means the command was a read-only stock query.
	OutcomeReport Outcome = "report"

	// OutcomeNoMatch means a named item is absent from the inventory.
	OutcomeNoMatch Outcome = "no_match"

	// OutcomeUnrecognized means no actionable command could be extracted.
	OutcomeUnrecognized Outcome = "unrecognized"
)

// Operation is a fully determined mutation: target item and the quantity it
// should be set to.
type Operation struct {
	Item        inventory.Item
	NewQuantity int
}

// Resolution is the result of matching one Command against an inventory
// snapshot. Exactly one of Operation/Matched is populated, according to
// Outcome.
type Resolution struct {
	Outcome Outcome
	Command Command

	// Operation is set when Outcome is OutcomeOperation.
	Operation *Operation

	// Matched is the queried item when Outcome is OutcomeReport.
	Matched *inventory.Item

	// Suggestion is a close-sounding existing item name offered on
	// OutcomeNoMatch, or empty when nothing is convincingly close.
	Suggestion string
}

// Resolve matches cmd against the given inventory snapshot.
//
// The matching rule is deliberately simple: the first item in collection
// order whose case-folded name contains the command's item text wins. No
// fuzzy matching and no disambiguation between multiple matches. This path
// never creates items — an unmatched name yields OutcomeNoMatch so the
// caller can echo it back to the user.
func Resolve(cmd Command, items []inventory.Item) Resolution {
	if cmd.Action == ActionUnknown || !cmd.Action.IsValid() || cmd.Item == "" {
		return Resolution{Outcome: OutcomeUnrecognized, Command: cmd}
	}

	if (cmd.Action == ActionAdd || cmd.Action == ActionRemove) && cmd.Quantity <= 0 {
		return Resolution{Outcome: OutcomeUnrecognized, Command: cmd}
	}

	matched, ok := matchItem(cmd.Item, items)
	if !ok {
		return Resolution{
			Outcome:    OutcomeNoMatch,
			Command:    cmd,
			Suggestion: Suggest(cmd.Item, items),
		}
	}

	switch cmd.Action {
	case ActionAdd:
		return Resolution{
			Outcome: OutcomeOperation,
			Command: cmd,
			Operation: &Operation{
				Item:        matched,
				NewQuantity: matched.Quantity + cmd.Quantity,
			},
		}

	case ActionRemove:
		next := matched.Quantity - cmd.Quantity
		if next < 0 {
			next = 0
		}
		return Resolution{
			Outcome: OutcomeOperation,
			Command: cmd,
			Operation: &Operation{
				Item:        matched,
				NewQuantity: next,
			},
		}

	default: // ActionQuery
		return Resolution{Outcome: OutcomeReport, Command: cmd, Matched: &matched}
	}
}

// matchItem finds the first item in collection order whose case-folded name
// contains name as a case-folded substring.
func matchItem(name string, items []inventory.Item) (inventory.Item, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return inventory.Item{}, false
	}
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			return it, true
		}
	}
	return inventory.Item{}, false
}
