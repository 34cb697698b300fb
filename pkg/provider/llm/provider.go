// Package llm defines the Provider interface for Large Language Model
// backends.
//
// An LLM provider wraps a remote or local model API (e.g., OpenAI, or
// anything reachable through any-llm-go) and exposes a uniform completion
// interface. The inventory pipeline uses completions for exactly one job:
// structured extraction of item records from a transcript, constrained to a
// fixed response schema.
//
// Implementations must be safe for concurrent use and must propagate
// context cancellation promptly.
package llm

import "context"

// Message represents a single message in an LLM conversation.
type Message struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the text content of the message.
	Content string
}

// ResponseSchema constrains the model output to a JSON shape. Providers with
// native structured-output support enforce it server-side; others fold the
// schema into the prompt and rely on the caller's tolerant parsing.
type ResponseSchema struct {
	// Name labels the schema in provider APIs that require one.
	Name string

	// Schema is the JSON Schema document as a generic map.
	Schema map[string]any
}

// Usage holds token accounting information returned by the LLM backend.
type Usage struct {
	// PromptTokens is the number of tokens consumed by the input.
	PromptTokens int

	// CompletionTokens is the number of tokens generated in the response.
	CompletionTokens int

	// TotalTokens is PromptTokens + CompletionTokens.
	TotalTokens int
}

// CompletionRequest carries everything the LLM needs to produce a response.
// At minimum Messages must be non-empty.
type CompletionRequest struct {
	// Messages is the ordered conversation. The last message is typically
	// from the "user" role and drives the response.
	Messages []Message

	// SystemPrompt is an optional high-priority instruction injected
	// before the conversation.
	SystemPrompt string

	// Temperature controls output randomness in [0.0, 2.0]. Extraction
	// callers should use a low value for determinism.
	Temperature float64

	// MaxTokens caps the completion length. Zero means provider default.
	MaxTokens int

	// ResponseSchema, when non-nil, constrains the output to a JSON shape.
	ResponseSchema *ResponseSchema
}

// CompletionResponse is returned by Complete.
type CompletionResponse struct {
	// Content is the full text of the model's reply.
	Content string

	// Usage contains token accounting for this request/response pair.
	Usage Usage
}

// Provider is the abstraction over any LLM backend.
type Provider interface {
	// Complete sends req to the model and waits for the full response.
	// Returns an error if the request fails or ctx is cancelled before
	// the completion arrives.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}
