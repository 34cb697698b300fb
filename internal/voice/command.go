// Package voice implements the voice-command-to-inventory-mutation pipeline.
//
// Two independent paths convert speech into inventory mutations:
//
//  1. The deterministic path: [Parse] applies an ordered set of phrase
//     patterns to an utterance and yields a single [Command], which
//     [Resolve] matches against the live inventory. It never creates items.
//
//  2. The extraction path: [Pipeline.ProcessAudio] transcribes raw audio via
//     a remote speech-to-text engine, asks an LLM for schema-constrained
//     candidate items, then upserts the candidates — matched names increment
//     existing stock, unmatched names become new items.
//
// Both paths re-read the inventory on every call; nothing is cached across
// requests.
package voice

// Action classifies what an utterance asks the system to do.
type Action string

const (
	ActionAdd     Action = "add"
	ActionRemove  Action = "remove"
	ActionQuery   Action = "query"
	ActionUnknown Action = "unknown"
)

// IsValid reports whether a is one of the defined actions.
func (a Action) IsValid() bool {
	switch a {
	case ActionAdd, ActionRemove, ActionQuery, ActionUnknown:
		return true
	}
	return false
}

// Command is the transient result of parsing one utterance. It carries no
// identity and is never persisted.
type Command struct {
	Action Action `json:"action"`

	// Item is the spoken item name, a single whitespace-delimited token.
	// Empty when Action is ActionUnknown.
	Item string `json:"item,omitempty"`

	// Quantity is set for add and remove commands.
	Quantity int `json:"quantity,omitempty"`
}
