package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Harsh7114/Inventory-Tracker/internal/inventory"
	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/llm"
)

// CandidateItem is an unpersisted item record produced by the extraction
// engine, pending validation and commit. IDs and timestamps are assigned by
// the store on commit.
type CandidateItem struct {
	Name             string `json:"name"`
	Quantity         int    `json:"quantity"`
	Category         string `json:"category"`
	Location         string `json:"location"`
	ReorderThreshold int    `json:"reorderThreshold"`
}

const defaultExtractTimeout = 20 * time.Second

const extractionSystemPrompt = `You are an inventory extraction engine for a grocery tracker.
Given a spoken transcript, extract every inventory item the speaker mentions.
For each item produce: name (singular, capitalized), quantity (integer, at
least 1; use 1 when the speaker gives no number), category (one of: Fruits,
Vegetables, Dairy, Grains, Meat, Beverages, Snacks, Other), location (one of:
Pantry, Fridge, Freezer, Counter; infer from the item, default Pantry), and
reorderThreshold (10 for staples such as rice, flour, and oil; 5 otherwise).
If the transcript mentions no inventory items, return an empty list.`

// Extractor turns a transcript into candidate inventory items by invoking a
// remote generative engine constrained to a fixed response schema.
type Extractor struct {
	provider llm.Provider
	timeout  time.Duration
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithExtractTimeout overrides the per-call deadline. Default: 20s.
func WithExtractTimeout(d time.Duration) ExtractorOption {
	return func(e *Extractor) {
		e.timeout = d
	}
}

// NewExtractor creates an Extractor backed by provider.
func NewExtractor(provider llm.Provider, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		provider: provider,
		timeout:  defaultExtractTimeout,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// ExtractItems asks the engine for the inventory items mentioned in
// transcript. A transport-level failure is returned as an error; a response
// that contains no parsable JSON degrades to an empty candidate list so the
// pipeline stays usable when extraction is uncertain.
func (e *Extractor) ExtractItems(ctx context.Context, transcript string) ([]CandidateItem, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.provider.Complete(ctx, llm.CompletionRequest{
		SystemPrompt: extractionSystemPrompt,
		Messages: []llm.Message{
			{Role: "user", Content: transcript},
		},
		Temperature:    0.1,
		MaxTokens:      1024,
		ResponseSchema: itemListSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("voice: extract items: %w", err)
	}

	items := parseCandidates(resp.Content)
	for i := range items {
		normalizeCandidate(&items[i])
	}
	return items, nil
}

// itemListSchema is the fixed response shape for extraction. The array is
// wrapped in an object because strict structured-output modes require an
// object at the top level; parseCandidates accepts both forms.
func itemListSchema() *llm.ResponseSchema {
	itemSchema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":             map[string]any{"type": "string"},
			"quantity":         map[string]any{"type": "integer"},
			"category":         map[string]any{"type": "string"},
			"location":         map[string]any{"type": "string"},
			"reorderThreshold": map[string]any{"type": "integer"},
		},
		"required":             []string{"name", "quantity", "category", "location", "reorderThreshold"},
		"additionalProperties": false,
	}
	return &llm.ResponseSchema{
		Name: "inventory_items",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"items": map[string]any{
					"type":  "array",
					"items": itemSchema,
				},
			},
			"required":             []string{"items"},
			"additionalProperties": false,
		},
	}
}

// parseCandidates extracts the candidate list from raw model output. It
// tolerates a wrapping object, a bare array, surrounding prose, and code
// fences; anything unparsable yields an empty list.
func parseCandidates(content string) []CandidateItem {
	raw := strings.TrimSpace(content)
	if raw == "" {
		return nil
	}
	raw = stripCodeFences(raw)

	var wrapper struct {
		Items []CandidateItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(raw), &wrapper); err == nil && wrapper.Items != nil {
		return wrapper.Items
	}

	var list []CandidateItem
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		return list
	}

	// Last resort: pull the first JSON array out of surrounding prose.
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &list); err == nil {
			return list
		}
	}

	slog.Warn("extraction returned no parsable JSON, treating as empty",
		"content_length", len(content))
	return nil
}

// stripCodeFences removes a surrounding markdown code fence if present.
func stripCodeFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// normalizeCandidate fills schema defaults the engine may have omitted or
// violated: quantity at least 1, category/location canonical fallbacks, and
// the per-category reorder threshold policy.
func normalizeCandidate(c *CandidateItem) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Quantity < 1 {
		c.Quantity = 1
	}
	if strings.TrimSpace(c.Category) == "" {
		c.Category = inventory.CategoryOther
	}
	if strings.TrimSpace(c.Location) == "" {
		c.Location = inventory.LocationPantry
	}
	if c.ReorderThreshold <= 0 {
		c.ReorderThreshold = inventory.DefaultThresholdFor(c.Category)
	}
}
