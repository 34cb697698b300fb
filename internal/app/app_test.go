package app_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Harsh7114/Inventory-Tracker/internal/alerts"
	"github.com/Harsh7114/Inventory-Tracker/internal/app"
	"github.com/Harsh7114/Inventory-Tracker/internal/config"
	"github.com/Harsh7114/Inventory-Tracker/internal/inventory"
	llmmock "github.com/Harsh7114/Inventory-Tracker/pkg/provider/llm/mock"
	stmock "github.com/Harsh7114/Inventory-Tracker/pkg/provider/transcribe/mock"
)

// testConfig returns a minimal config without postgres so New uses the
// in-memory stores.
func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			ListenAddr: ":0",
			LogLevel:   config.LogInfo,
		},
	}
}

// testProviders returns one mock backend per engine kind.
func testProviders() *app.Providers {
	return &app.Providers{
		Transcribe: []app.NamedTranscriber{{Name: "mock", Provider: &stmock.Provider{Text: "add two onions"}}},
		LLM:        []app.NamedLLM{{Name: "mock", Provider: &llmmock.Provider{Content: `{"items": []}`}}},
	}
}

func TestNew_WithMocks(t *testing.T) {
	t.Parallel()

	application, err := app.New(t.Context(), testConfig(), testProviders())
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if application == nil {
		t.Fatal("New() returned nil app")
	}
	if application.Handler() == nil {
		t.Fatal("Handler() should be wired after New()")
	}
}

func TestNew_NoProviders(t *testing.T) {
	t.Parallel()

	// Without engines the REST surface must still come up; only the audio
	// endpoint reports unavailability.
	application, err := app.New(t.Context(), testConfig(), nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/inventory", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/inventory status = %d, want 200", rec.Code)
	}
}

func TestNew_SweepsExistingLowStock(t *testing.T) {
	t.Parallel()

	// A store that already holds low stock, as after a restart over postgres.
	inv := inventory.NewMemStore()
	if _, err := inv.Create(t.Context(), inventory.Fields{
		Name: "Olive Oil", Quantity: 1, ReorderThreshold: 2,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	notes := alerts.NewMemStore()

	if _, err := app.New(t.Context(), testConfig(), nil,
		app.WithInventoryStore(inv), app.WithAlertStore(notes)); err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	ns, err := notes.List(t.Context())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ns) != 1 {
		t.Fatalf("expected 1 notification from the startup sweep, got %d", len(ns))
	}
	if ns[0].Severity != alerts.SeverityWarning {
		t.Errorf("severity = %q, want warning", ns[0].Severity)
	}
}

func TestApp_HealthEndpoints(t *testing.T) {
	t.Parallel()

	application, err := app.New(t.Context(), testConfig(), nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestApp_MetricsEndpoint(t *testing.T) {
	t.Parallel()

	application, err := app.New(t.Context(), testConfig(), nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	rec := httptest.NewRecorder()
	application.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET /metrics status = %d, want 200", rec.Code)
	}
}

func TestApp_Seed(t *testing.T) {
	t.Parallel()

	store := inventory.NewMemStore()
	application, err := app.New(t.Context(), testConfig(), nil, app.WithInventoryStore(store))
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	if err := application.Seed(t.Context()); err != nil {
		t.Fatalf("Seed() returned error: %v", err)
	}
	items, err := store.List(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) == 0 {
		t.Fatal("seed should populate an empty store")
	}

	// Seeding again must not duplicate.
	if err := application.Seed(t.Context()); err != nil {
		t.Fatalf("second Seed() returned error: %v", err)
	}
	again, err := store.List(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != len(items) {
		t.Errorf("second seed changed item count from %d to %d", len(items), len(again))
	}
}

func TestApp_VoiceEndToEnd(t *testing.T) {
	t.Parallel()

	providers := &app.Providers{
		Transcribe: []app.NamedTranscriber{{Name: "mock", Provider: &stmock.Provider{Text: "buy five bananas"}}},
		LLM: []app.NamedLLM{{Name: "mock", Provider: &llmmock.Provider{
			Content: `{"items": [{"name": "Bananas", "quantity": 5, "category": "Fruits", "location": "Counter"}]}`,
		}}},
	}
	application, err := app.New(t.Context(), testConfig(), providers)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/voice/command",
		strings.NewReader(`{"utterance": "how many bananas"}`))
	application.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("voice command status = %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Outcome string `json:"outcome"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Outcome != "no_match" {
		t.Errorf("outcome = %q, want no_match against an empty inventory", result.Outcome)
	}
}

func TestApp_ShutdownIsIdempotent(t *testing.T) {
	t.Parallel()

	application, err := app.New(t.Context(), testConfig(), nil)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	if err := application.Shutdown(t.Context()); err != nil {
		t.Errorf("Shutdown() returned error: %v", err)
	}
	if err := application.Shutdown(t.Context()); err != nil {
		t.Errorf("second Shutdown() returned error: %v", err)
	}
}
