package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// ValidProviderNames lists known provider names per provider kind.
// Used by [Validate] to warn about unrecognised provider names.
var ValidProviderNames = map[string][]string{
	"transcribe": {"openai", "whisper-server"},
	"llm":        {"openai", "anthropic", "ollama", "gemini", "deepseek", "mistral", "groq", "llamacpp", "llamafile"},
}

// envRefPattern matches ${VAR_NAME} references in the raw config text.
var envRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. ${VAR} references anywhere in the file are replaced with the
// corresponding environment variable before parsing, so API keys can stay
// out of the file itself.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg, err := LoadFromReader(bytes.NewReader(ExpandEnv(data)))
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// ExpandEnv replaces ${VAR} references in data with the value of the named
// environment variable. Unset variables are left as-is with a warning, so a
// missing key surfaces in the provider error rather than as silent emptiness.
func ExpandEnv(data []byte) []byte {
	return envRefPattern.ReplaceAllFunc(data, func(ref []byte) []byte {
		name := string(envRefPattern.FindSubmatch(ref)[1])
		val, ok := os.LookupEnv(name)
		if !ok {
			slog.Warn("config: environment variable referenced but not set", "var", name)
			return ref
		}
		return []byte(val)
	})
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
// No environment expansion is performed; use [Load] for that.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Server
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if tls := cfg.Server.TLS; tls != nil {
		if tls.CertFile == "" {
			errs = append(errs, errors.New("server.tls.cert_file is required when tls is set"))
		}
		if tls.KeyFile == "" {
			errs = append(errs, errors.New("server.tls.key_file is required when tls is set"))
		}
	}

	// Providers
	errs = append(errs, validateProviderList("transcribe", cfg.Providers.Transcribe)...)
	errs = append(errs, validateProviderList("llm", cfg.Providers.LLM)...)

	// The REST inventory surface still works without engines, so a missing
	// provider is a warning, not an error.
	if len(cfg.Providers.Transcribe) == 0 || len(cfg.Providers.LLM) == 0 {
		slog.Warn("voice processing disabled: both a transcribe and an llm provider are required",
			"transcribe_configured", len(cfg.Providers.Transcribe) > 0,
			"llm_configured", len(cfg.Providers.LLM) > 0,
		)
	}

	// Pipeline
	if cfg.Pipeline.TranscribeTimeout < 0 {
		errs = append(errs, fmt.Errorf("pipeline.transcribe_timeout %v must not be negative", cfg.Pipeline.TranscribeTimeout.Std()))
	}
	if cfg.Pipeline.ExtractTimeout < 0 {
		errs = append(errs, fmt.Errorf("pipeline.extract_timeout %v must not be negative", cfg.Pipeline.ExtractTimeout.Std()))
	}
	if cfg.Pipeline.RetryAttempts < 0 {
		errs = append(errs, fmt.Errorf("pipeline.retry_attempts %d must not be negative", cfg.Pipeline.RetryAttempts))
	}
	if cfg.Pipeline.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("pipeline.retry_delay %v must not be negative", cfg.Pipeline.RetryDelay.Std()))
	}

	if cfg.Storage.PostgresDSN == "" {
		slog.Warn("storage.postgres_dsn is empty; inventory and notifications will not survive restarts")
	}

	return errors.Join(errs...)
}

// validateProviderList checks one ordered provider list: every entry needs a
// name, names must not repeat within a kind, and unknown names get a warning.
func validateProviderList(kind string, entries []ProviderEntry) []error {
	var errs []error
	seen := make(map[string]int, len(entries))
	for i, e := range entries {
		prefix := fmt.Sprintf("providers.%s[%d]", kind, i)
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
			continue
		}
		if prev, ok := seen[e.Name]; ok {
			errs = append(errs, fmt.Errorf("%s.name %q is a duplicate of providers.%s[%d]", prefix, e.Name, kind, prev))
		}
		seen[e.Name] = i
		validateProviderName(kind, e.Name)
	}
	return errs
}

// validateProviderName logs a warning if name is non-empty and not found in
// the [ValidProviderNames] list for the given kind.
func validateProviderName(kind, name string) {
	known, ok := ValidProviderNames[kind]
	if !ok {
		return
	}
	if slices.Contains(known, name) {
		return
	}
	slog.Warn("unknown provider name — may be a typo or third-party provider",
		"kind", kind,
		"name", name,
		"known", known,
	)
}
