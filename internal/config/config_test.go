package config_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Harsh7114/Inventory-Tracker/internal/config"
	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/llm"
	llmmock "github.com/Harsh7114/Inventory-Tracker/pkg/provider/llm/mock"
	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/transcribe"
	stmock "github.com/Harsh7114/Inventory-Tracker/pkg/provider/transcribe/mock"
)

func TestLogLevel_IsValid(t *testing.T) {
	t.Parallel()
	cases := []struct {
		level config.LogLevel
		want  bool
	}{
		{config.LogDebug, true},
		{config.LogInfo, true},
		{config.LogWarn, true},
		{config.LogError, true},
		{config.LogLevel("verbose"), false},
		{config.LogLevel(""), false},
	}
	for _, tc := range cases {
		if got := tc.level.IsValid(); got != tc.want {
			t.Errorf("LogLevel(%q).IsValid() = %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestDuration_Unmarshal(t *testing.T) {
	t.Parallel()
	yaml := `
pipeline:
  transcribe_timeout: 45s
  extract_timeout: 1m30s
  retry_delay: 250ms
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := cfg.Pipeline.TranscribeTimeout.Std(); got != 45*time.Second {
		t.Errorf("transcribe_timeout = %v, want 45s", got)
	}
	if got := cfg.Pipeline.ExtractTimeout.Std(); got != 90*time.Second {
		t.Errorf("extract_timeout = %v, want 1m30s", got)
	}
	if got := cfg.Pipeline.RetryDelay.Std(); got != 250*time.Millisecond {
		t.Errorf("retry_delay = %v, want 250ms", got)
	}
}

func TestDuration_UnmarshalRejectsGarbage(t *testing.T) {
	t.Parallel()
	yaml := `
pipeline:
  transcribe_timeout: soon
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for invalid duration, got nil")
	}
	if !strings.Contains(err.Error(), "soon") {
		t.Errorf("error should mention the bad value, got: %v", err)
	}
}

func TestRegistry_CreateTranscribe(t *testing.T) {
	t.Parallel()
	reg := config.NewRegistry()
	reg.RegisterTranscribe("mock", func(e config.ProviderEntry) (transcribe.Provider, error) {
		return &stmock.Provider{Text: e.Model}, nil
	})

	p, err := reg.CreateTranscribe(config.ProviderEntry{Name: "mock", Model: "tiny"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := p.Transcribe(t.Context(), []byte("pcm"), transcribe.Options{})
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if text != "tiny" {
		t.Errorf("factory should receive the entry, got transcript %q", text)
	}
}

func TestRegistry_CreateLLM(t *testing.T) {
	t.Parallel()
	reg := config.NewRegistry()
	reg.RegisterLLM("mock", func(config.ProviderEntry) (llm.Provider, error) {
		return &llmmock.Provider{Content: "[]"}, nil
	})

	if _, err := reg.CreateLLM(config.ProviderEntry{Name: "mock"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegistry_UnknownProvider(t *testing.T) {
	t.Parallel()
	reg := config.NewRegistry()

	_, err := reg.CreateTranscribe(config.ProviderEntry{Name: "nope"})
	if !errors.Is(err, config.ErrProviderNotRegistered) {
		t.Errorf("CreateTranscribe err = %v, want ErrProviderNotRegistered", err)
	}
	_, err = reg.CreateLLM(config.ProviderEntry{Name: "nope"})
	if !errors.Is(err, config.ErrProviderNotRegistered) {
		t.Errorf("CreateLLM err = %v, want ErrProviderNotRegistered", err)
	}
}
