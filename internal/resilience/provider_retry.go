package resilience

import (
	"context"

	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/llm"
	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/transcribe"
)

// RetryTranscriber wraps a [transcribe.Provider] with bounded retries on
// transient errors. Typically layered outside a [TranscribeFallback] so one
// retry budget covers the whole failover chain.
type RetryTranscriber struct {
	inner transcribe.Provider
	retry *Retry
}

var _ transcribe.Provider = (*RetryTranscriber)(nil)

// WrapTranscriber layers retry behaviour over inner.
func WrapTranscriber(inner transcribe.Provider, cfg RetryConfig) *RetryTranscriber {
	return &RetryTranscriber{inner: inner, retry: NewRetry(cfg)}
}

// Transcribe implements [transcribe.Provider].
func (w *RetryTranscriber) Transcribe(ctx context.Context, audio []byte, opts transcribe.Options) (string, error) {
	return DoWithResult(ctx, w.retry, func(ctx context.Context) (string, error) {
		return w.inner.Transcribe(ctx, audio, opts)
	})
}

// RetryLLM wraps an [llm.Provider] with bounded retries on transient errors.
type RetryLLM struct {
	inner llm.Provider
	retry *Retry
}

var _ llm.Provider = (*RetryLLM)(nil)

// WrapLLM layers retry behaviour over inner.
func WrapLLM(inner llm.Provider, cfg RetryConfig) *RetryLLM {
	return &RetryLLM{inner: inner, retry: NewRetry(cfg)}
}

// Complete implements [llm.Provider].
func (w *RetryLLM) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return DoWithResult(ctx, w.retry, func(ctx context.Context) (*llm.CompletionResponse, error) {
		return w.inner.Complete(ctx, req)
	})
}
