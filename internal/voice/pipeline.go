package voice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Harsh7114/Inventory-Tracker/internal/alerts"
	"github.com/Harsh7114/Inventory-Tracker/internal/inventory"
	"github.com/Harsh7114/Inventory-Tracker/internal/observe"
	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/transcribe"
)

const defaultTranscribeTimeout = 30 * time.Second

// ProcessingResult summarizes one audio submission on the extraction path.
type ProcessingResult struct {
	Transcript string `json:"transcript"`

	// Items are the inventory records that were created or incremented,
	// in candidate order.
	Items []inventory.Item `json:"items"`

	// Count is len(Items).
	Count int `json:"count"`

	// Failed lists candidates that could not be applied.
	Failed []Failure `json:"failed,omitempty"`
}

// CommandResult summarizes one utterance on the deterministic path.
type CommandResult struct {
	Command Command `json:"command"`
	Outcome Outcome `json:"outcome"`

	// Item is the mutated item (add/remove) or the queried item (query).
	Item *inventory.Item `json:"item,omitempty"`

	// Suggestion is a close-sounding existing name offered on no_match.
	Suggestion string `json:"suggestion,omitempty"`

	// Message is a user-facing summary of what happened.
	Message string `json:"message"`
}

// ErrNotConfigured is returned by ProcessAudio when the pipeline was built
// without a transcriber or extractor.
var ErrNotConfigured = errors.New("voice: audio processing is not configured")

// Pipeline wires the two voice paths to the inventory store, the remote
// engines, and the low-stock evaluator. It holds no per-request state and is
// safe for concurrent use.
type Pipeline struct {
	store       inventory.Store
	transcriber transcribe.Provider
	extractor   *Extractor
	applier     *Applier

	evaluator         *alerts.Evaluator
	metrics           *observe.Metrics
	transcribeTimeout time.Duration
	transcribeOpts    transcribe.Options
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithEvaluator enables low-stock notification checks after each mutation.
func WithEvaluator(e *alerts.Evaluator) PipelineOption {
	return func(p *Pipeline) {
		p.evaluator = e
	}
}

// WithMetrics enables pipeline stage instrumentation.
func WithMetrics(m *observe.Metrics) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithTranscribeTimeout overrides the transcription deadline. Default: 30s.
func WithTranscribeTimeout(d time.Duration) PipelineOption {
	return func(p *Pipeline) {
		p.transcribeTimeout = d
	}
}

// WithTranscribeOptions sets language/prompt hints passed to the engine.
func WithTranscribeOptions(opts transcribe.Options) PipelineOption {
	return func(p *Pipeline) {
		p.transcribeOpts = opts
	}
}

// NewPipeline creates a Pipeline. transcriber and extractor may be nil when
// only the deterministic path is used; ProcessAudio then fails fast.
func NewPipeline(store inventory.Store, transcriber transcribe.Provider, extractor *Extractor, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		store:             store,
		transcriber:       transcriber,
		extractor:         extractor,
		applier:           NewApplier(store),
		transcribeTimeout: defaultTranscribeTimeout,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// ProcessUtterance runs the deterministic path: parse the utterance, resolve
// it against the live inventory, and apply the mutation if one was resolved.
// Only store-level failures return an error; unparsable or unmatched input
// is reported in the result.
func (p *Pipeline) ProcessUtterance(ctx context.Context, utterance string) (*CommandResult, error) {
	cmd := Parse(utterance)

	items, err := p.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("voice: list inventory: %w", err)
	}

	res := Resolve(cmd, items)
	result := &CommandResult{
		Command:    res.Command,
		Outcome:    res.Outcome,
		Suggestion: res.Suggestion,
	}

	switch res.Outcome {
	case OutcomeOperation:
		updated, err := p.applier.ApplyOperation(ctx, *res.Operation)
		if err != nil {
			return nil, fmt.Errorf("voice: apply %s: %w", cmd.Action, err)
		}
		result.Item = &updated
		p.checkLowStock(ctx, updated)
		if cmd.Action == ActionAdd {
			result.Message = fmt.Sprintf("Added %d %s (stock now %d)", cmd.Quantity, updated.Name, updated.Quantity)
		} else {
			result.Message = fmt.Sprintf("Removed %d %s (stock now %d)", cmd.Quantity, updated.Name, updated.Quantity)
		}

	case OutcomeReport:
		result.Item = res.Matched
		result.Message = fmt.Sprintf("%s: %d in stock", res.Matched.Name, res.Matched.Quantity)

	case OutcomeNoMatch:
		result.Message = fmt.Sprintf("No inventory item matching %q", cmd.Item)
		if res.Suggestion != "" {
			result.Message += fmt.Sprintf(" — did you mean %s?", res.Suggestion)
		}

	default:
		result.Message = "Could not understand the command"
	}

	slog.Info("utterance processed",
		"action", cmd.Action, "item", cmd.Item, "outcome", result.Outcome)
	return result, nil
}

// ProcessAudio runs the extraction path end to end: transcribe the audio,
// extract candidate items, and upsert them as a batch. Transcription failure
// (including no detectable speech) halts the pipeline before extraction;
// extraction uncertainty degrades to an empty batch instead.
func (p *Pipeline) ProcessAudio(ctx context.Context, audio []byte) (*ProcessingResult, error) {
	if p.transcriber == nil || p.extractor == nil {
		return nil, ErrNotConfigured
	}

	transcript, err := p.transcribeAudio(ctx, audio)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	candidates, err := p.extractor.ExtractItems(ctx, transcript)
	p.metrics.ObserveExtraction(ctx, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	applied, failed := p.applier.Apply(ctx, candidates)
	p.metrics.ObserveApply(ctx, time.Since(start), len(applied), len(failed))
	if applied == nil {
		// The items field is always a JSON array, even for an empty batch.
		applied = []inventory.Item{}
	}

	for _, item := range applied {
		p.checkLowStock(ctx, item)
	}

	slog.Info("audio processed",
		"transcript_length", len(transcript),
		"candidates", len(candidates),
		"applied", len(applied),
		"failed", len(failed))

	return &ProcessingResult{
		Transcript: transcript,
		Items:      applied,
		Count:      len(applied),
		Failed:     failed,
	}, nil
}

// transcribeAudio calls the transcription engine under the configured
// deadline.
func (p *Pipeline) transcribeAudio(ctx context.Context, audio []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.transcribeTimeout)
	defer cancel()

	start := time.Now()
	transcript, err := p.transcriber.Transcribe(ctx, audio, p.transcribeOpts)
	p.metrics.ObserveTranscription(ctx, time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("voice: transcribe: %w", err)
	}
	return transcript, nil
}

// checkLowStock runs the low-stock evaluator when one is configured.
// Evaluator errors are logged inside CheckItem and never fail the pipeline.
func (p *Pipeline) checkLowStock(ctx context.Context, item inventory.Item) {
	if p.evaluator == nil {
		return
	}
	p.evaluator.CheckItem(ctx, item)
}
