package resilience

import (
	"context"
	"errors"

	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/transcribe"
)

// TranscribeFallback implements [transcribe.Provider] with automatic failover
// across multiple transcription backends. Each backend has its own circuit
// breaker.
type TranscribeFallback struct {
	group *FallbackGroup[transcribe.Provider]
}

// Compile-time interface assertion.
var _ transcribe.Provider = (*TranscribeFallback)(nil)

// NewTranscribeFallback creates a [TranscribeFallback] with primary as the
// preferred backend.
func NewTranscribeFallback(primary transcribe.Provider, primaryName string, cfg FallbackConfig) *TranscribeFallback {
	return &TranscribeFallback{
		group: NewFallbackGroup(primary, primaryName, cfg),
	}
}

// AddFallback registers an additional transcription provider as a fallback.
func (f *TranscribeFallback) AddFallback(name string, provider transcribe.Provider) {
	f.group.AddFallback(name, provider)
}

// Transcribe sends the audio to the first healthy provider. A
// [transcribe.ErrNoSpeech] result is a valid transcription outcome, not a
// backend failure, so it ends the failover chain immediately without tripping
// the breaker or trying the next provider.
func (f *TranscribeFallback) Transcribe(ctx context.Context, audio []byte, opts transcribe.Options) (string, error) {
	var noSpeech bool
	text, err := ExecuteWithResult(f.group, func(p transcribe.Provider) (string, error) {
		text, err := p.Transcribe(ctx, audio, opts)
		if errors.Is(err, transcribe.ErrNoSpeech) {
			// Count as a success for breaker accounting and stop the chain.
			noSpeech = true
			return "", nil
		}
		return text, err
	})
	if noSpeech {
		return "", transcribe.ErrNoSpeech
	}
	return text, err
}
