package resilience

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/transcribe"
)

// RetryConfig tunes a [Retry] wrapper.
type RetryConfig struct {
	// Name is a human-readable label used in log messages.
	Name string

	// Attempts is the total number of tries, including the first.
	// Default: 2 (one retry).
	Attempts int

	// Delay is the pause before each re-attempt. Default: 250ms.
	Delay time.Duration
}

// Retry re-runs an operation a bounded number of times on transient errors.
// Application-level outcomes ([transcribe.ErrNoSpeech]) and terminal
// conditions (context cancellation, open circuit breaker) are returned
// immediately without a re-attempt.
type Retry struct {
	name     string
	attempts int
	delay    time.Duration
}

// NewRetry creates a [Retry] with zero-value config fields replaced by
// defaults.
func NewRetry(cfg RetryConfig) *Retry {
	if cfg.Attempts <= 0 {
		cfg.Attempts = 2
	}
	if cfg.Delay <= 0 {
		cfg.Delay = 250 * time.Millisecond
	}
	return &Retry{
		name:     cfg.Name,
		attempts: cfg.Attempts,
		delay:    cfg.Delay,
	}
}

// Do runs fn until it succeeds, a non-retryable error occurs, or the attempt
// budget is exhausted. The last error is returned unwrapped so sentinel
// checks on the caller side keep working.
func (r *Retry) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		if attempt > 1 {
			slog.Debug("retrying after transient error",
				"name", r.name, "attempt", attempt, "error", lastErr)
			select {
			case <-time.After(r.delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil || !Retryable(lastErr) {
			return lastErr
		}
	}
	return lastErr
}

// DoWithResult is the value-returning variant of [Retry.Do]. It is a
// package-level function because Go does not support method-level type
// parameters.
func DoWithResult[R any](ctx context.Context, r *Retry, fn func(ctx context.Context) (R, error)) (R, error) {
	var result R
	err := r.Do(ctx, func(ctx context.Context) error {
		var innerErr error
		result, innerErr = fn(ctx)
		return innerErr
	})
	return result, err
}

// Retryable reports whether err looks like a transient transport failure
// worth one more attempt.
func Retryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return false
	case errors.Is(err, ErrCircuitOpen), errors.Is(err, ErrAllFailed):
		return false
	case errors.Is(err, transcribe.ErrNoSpeech):
		return false
	}
	return true
}
