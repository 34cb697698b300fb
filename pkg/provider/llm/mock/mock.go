// Package mock provides a test double for the llm.Provider interface.
package mock

import (
	"context"
	"sync"

	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/llm"
)

// Provider is a configurable mock implementation of llm.Provider.
// All fields may be set before use; the zero value returns an empty
// response for every call.
type Provider struct {
	mu sync.Mutex

	// Content is returned as the completion content unless Err is set.
	Content string

	// Err, when non-nil, is returned by Complete.
	Err error

	// CompleteFunc, when non-nil, overrides the canned Content/Err
	// behavior entirely.
	CompleteFunc func(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error)

	// Calls records every request passed to Complete, in order.
	Calls []llm.CompletionRequest
}

var _ llm.Provider = (*Provider)(nil)

// Complete implements llm.Provider.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	p.Calls = append(p.Calls, req)
	fn := p.CompleteFunc
	content, err := p.Content, p.Err
	p.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	if err != nil {
		return nil, err
	}
	return &llm.CompletionResponse{Content: content}, nil
}

// Reset clears recorded calls and canned behavior.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls = nil
	p.Content = ""
	p.Err = nil
	p.CompleteFunc = nil
}
