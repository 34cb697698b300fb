package config_test

import (
	"testing"

	"github.com/Harsh7114/Inventory-Tracker/internal/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			ListenAddr: ":8080",
			LogLevel:   config.LogInfo,
		},
		Providers: config.ProvidersConfig{
			LLM: []config.ProviderEntry{{Name: "openai", Model: "gpt-4o-mini"}},
		},
		Storage: config.StorageConfig{PostgresDSN: "postgres://localhost/invtrack"},
	}
}

func TestDiff_NoChanges(t *testing.T) {
	t.Parallel()
	old, new := baseConfig(), baseConfig()
	d := config.Diff(old, new)
	if d.Changed() {
		t.Errorf("identical configs should produce no diff, got %+v", d)
	}
}

func TestDiff_LogLevel(t *testing.T) {
	t.Parallel()
	old, new := baseConfig(), baseConfig()
	new.Server.LogLevel = config.LogDebug

	d := config.Diff(old, new)
	if !d.LogLevelChanged {
		t.Error("LogLevelChanged should be true")
	}
	if d.NewLogLevel != config.LogDebug {
		t.Errorf("NewLogLevel = %q, want debug", d.NewLogLevel)
	}
	if d.ProvidersChanged || d.StorageChanged {
		t.Errorf("unrelated flags should stay false, got %+v", d)
	}
}

func TestDiff_Providers(t *testing.T) {
	t.Parallel()
	old, new := baseConfig(), baseConfig()
	new.Providers.LLM = append(new.Providers.LLM, config.ProviderEntry{Name: "ollama"})

	d := config.Diff(old, new)
	if !d.ProvidersChanged {
		t.Error("ProvidersChanged should be true when a fallback is added")
	}
}

func TestDiff_Storage(t *testing.T) {
	t.Parallel()
	old, new := baseConfig(), baseConfig()
	new.Storage.PostgresDSN = ""

	d := config.Diff(old, new)
	if !d.StorageChanged {
		t.Error("StorageChanged should be true")
	}
}

func TestDiff_Pipeline(t *testing.T) {
	t.Parallel()
	old, new := baseConfig(), baseConfig()
	new.Pipeline.RetryAttempts = 3

	d := config.Diff(old, new)
	if !d.PipelineChanged {
		t.Error("PipelineChanged should be true")
	}
	if !d.Changed() {
		t.Error("Changed() should be true")
	}
}
