package resilience

import (
	"context"
	"errors"
	"testing"

	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/llm"
	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/llm/mock"
)

func TestLLMFallback_PrimarySuccess(t *testing.T) {
	primary := &mock.Provider{Content: `[{"name":"Milk","quantity":2}]`}
	backup := &mock.Provider{Content: "unused"}

	f := NewLLMFallback(primary, "primary", FallbackConfig{})
	f.AddFallback("backup", backup)

	resp, err := f.Complete(context.Background(), llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: "add 2 milk"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != `[{"name":"Milk","quantity":2}]` {
		t.Errorf("unexpected content: %q", resp.Content)
	}
	if len(backup.Calls) != 0 {
		t.Errorf("expected backup untouched, got %d calls", len(backup.Calls))
	}
}

func TestLLMFallback_FailsOver(t *testing.T) {
	primary := &mock.Provider{Err: errors.New("rate limited")}
	backup := &mock.Provider{Content: "[]"}

	f := NewLLMFallback(primary, "primary", FallbackConfig{})
	f.AddFallback("backup", backup)

	resp, err := f.Complete(context.Background(), llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: "hello"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "[]" {
		t.Errorf("expected backup content, got %q", resp.Content)
	}
}

func TestLLMFallback_AllFailed(t *testing.T) {
	primary := &mock.Provider{Err: errors.New("boom")}

	f := NewLLMFallback(primary, "primary", FallbackConfig{})

	_, err := f.Complete(context.Background(), llm.CompletionRequest{
		Messages: []llm.Message{{Role: "user", Content: "hello"}},
	})
	if !errors.Is(err, ErrAllFailed) {
		t.Fatalf("expected ErrAllFailed, got %v", err)
	}
}
