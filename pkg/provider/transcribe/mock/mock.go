// Package mock provides a test double for the transcribe.Provider interface.
//
// Use Provider to feed controlled transcripts and inspect the audio and
// options the caller submitted, without a live speech-to-text engine.
//
// Example:
//
//	p := &mock.Provider{Text: "add 5 apples"}
//	text, err := p.Transcribe(ctx, audio, transcribe.Options{})
package mock

import (
	"context"
	"sync"

	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/transcribe"
)

// TranscribeCall records a single invocation of Provider.Transcribe.
type TranscribeCall struct {
	// Ctx is the context passed to Transcribe.
	Ctx context.Context
	// Audio is a copy of the audio bytes passed to Transcribe.
	Audio []byte
	// Opts is the Options value passed to Transcribe.
	Opts transcribe.Options
}

// Provider is a mock implementation of transcribe.Provider.
// Set Text for a successful result or Err to inject a failure.
type Provider struct {
	mu sync.Mutex

	// Text is the transcript returned by Transcribe.
	Text string

	// Err, if non-nil, is returned as the error from Transcribe.
	Err error

	// TranscribeFunc, when non-nil, overrides the canned Text/Err
	// behavior entirely.
	TranscribeFunc func(ctx context.Context, audio []byte, opts transcribe.Options) (string, error)

	// Calls records every call to Transcribe.
	Calls []TranscribeCall
}

// Ensure Provider implements transcribe.Provider at compile time.
var _ transcribe.Provider = (*Provider)(nil)

// Transcribe records the call and returns Text, Err.
func (p *Provider) Transcribe(ctx context.Context, audio []byte, opts transcribe.Options) (string, error) {
	p.mu.Lock()
	cp := make([]byte, len(audio))
	copy(cp, audio)
	p.Calls = append(p.Calls, TranscribeCall{Ctx: ctx, Audio: cp, Opts: opts})
	fn := p.TranscribeFunc
	text, err := p.Text, p.Err
	p.mu.Unlock()

	if fn != nil {
		return fn(ctx, audio, opts)
	}
	if err != nil {
		return "", err
	}
	return text, nil
}

// Reset clears all recorded calls. Thread-safe.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls = nil
}
