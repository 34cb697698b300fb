// Package transcribe defines the Provider interface for speech-to-text
// backends.
//
// A transcription provider wraps a remote or local speech-to-text engine
// (e.g., the hosted OpenAI Whisper API or a self-hosted whisper.cpp server)
// and exposes a uniform one-shot interface: a complete audio recording in,
// best-effort text out. Voice submissions to the inventory pipeline are
// short utterances, so batch transcription is the right shape — streaming
// partials buy nothing here.
//
// Implementations must be safe for concurrent use and must propagate
// context cancellation promptly: an aborted upload must not keep a request
// handler waiting on the remote engine.
package transcribe

import (
	"context"
	"errors"
)

// ErrNoSpeech is returned when the engine completed successfully but
// produced an empty transcript. It is an application-level outcome, not a
// transport failure — callers must not retry it.
var ErrNoSpeech = errors.New("transcribe: no speech detected")

// Options carries recognition hints for a transcription request.
type Options struct {
	// Language is the ISO-639-1 language code (e.g., "en"). Empty lets the
	// engine auto-detect, if supported.
	Language string

	// Prompt provides domain context to improve recognition of product
	// names and quantities. Engines that do not support prompting ignore it.
	Prompt string
}

// Provider is the abstraction over any speech-to-text backend.
type Provider interface {
	// Transcribe converts a complete audio recording to text. The audio
	// bytes must be a self-describing container (WAV, MP3, WebM, ...)
	// as produced by browser recorders.
	//
	// Returns [ErrNoSpeech] when the engine reports an empty result, or a
	// transport error when the engine is unreachable or rejects the
	// request.
	Transcribe(ctx context.Context, audio []byte, opts Options) (string, error)
}
