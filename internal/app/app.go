// Package app wires all inventory tracker subsystems into a running server.
//
// The App struct owns the full lifecycle: New creates and connects all
// subsystems, Run serves HTTP until the context is cancelled, and Shutdown
// tears everything down in order.
//
// For testing, inject mock implementations via functional options
// (WithInventoryStore, WithAlertStore, etc.). When an option is not
// provided, New creates real implementations from the config.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Harsh7114/Inventory-Tracker/internal/alerts"
	"github.com/Harsh7114/Inventory-Tracker/internal/api"
	"github.com/Harsh7114/Inventory-Tracker/internal/config"
	"github.com/Harsh7114/Inventory-Tracker/internal/health"
	"github.com/Harsh7114/Inventory-Tracker/internal/inventory"
	"github.com/Harsh7114/Inventory-Tracker/internal/observe"
	"github.com/Harsh7114/Inventory-Tracker/internal/resilience"
	"github.com/Harsh7114/Inventory-Tracker/internal/voice"
	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/llm"
	"github.com/Harsh7114/Inventory-Tracker/pkg/provider/transcribe"
)

// NamedTranscriber pairs a transcription backend with its config name, used
// for circuit breaker and log labels.
type NamedTranscriber struct {
	Name     string
	Provider transcribe.Provider
}

// NamedLLM pairs an LLM backend with its config name.
type NamedLLM struct {
	Name     string
	Provider llm.Provider
}

// Providers holds the ordered remote engine backends: the first entry of each
// list is the primary, the rest are fallbacks. Empty lists disable the audio
// path. Populated by main.go via the config registry.
type Providers struct {
	Transcribe []NamedTranscriber
	LLM        []NamedLLM
}

// App owns all subsystem lifetimes and serves the REST + voice API.
type App struct {
	cfg       *config.Config
	providers *Providers

	// Subsystems. Initialised in New, torn down in Shutdown.
	inv       inventory.Store
	notes     alerts.Store
	evaluator *alerts.Evaluator
	pipeline  *voice.Pipeline
	metrics   *observe.Metrics
	handler   http.Handler
	server    *http.Server
	pool      *pgxpool.Pool

	// closers are called in reverse order during Shutdown.
	closers []func() error

	// stopOnce guards the Shutdown path.
	stopOnce sync.Once
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*App)

// WithInventoryStore injects an inventory store instead of creating one from
// config.
func WithInventoryStore(s inventory.Store) Option {
	return func(a *App) { a.inv = s }
}

// WithAlertStore injects a notification store instead of creating one from
// config.
func WithAlertStore(s alerts.Store) Option {
	return func(a *App) { a.notes = s }
}

// WithMetrics injects a metrics set instead of using the package default.
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// ─── New ─────────────────────────────────────────────────────────────────────

// New creates an App by wiring all subsystems together. The providers struct
// comes from main.go (populated via the config registry). Use Option functions
// to inject test doubles for any subsystem.
func New(ctx context.Context, cfg *config.Config, providers *Providers, opts ...Option) (*App, error) {
	a := &App{
		cfg:       cfg,
		providers: providers,
	}
	if a.providers == nil {
		a.providers = &Providers{}
	}
	for _, o := range opts {
		o(a)
	}

	// ── 1. Storage ───────────────────────────────────────────────────────
	if err := a.initStorage(ctx); err != nil {
		return nil, fmt.Errorf("app: init storage: %w", err)
	}

	// ── 2. Metrics ───────────────────────────────────────────────────────
	if a.metrics == nil {
		a.metrics = observe.DefaultMetrics()
	}

	// ── 3. Low-stock evaluator ───────────────────────────────────────────
	a.evaluator = alerts.NewEvaluator(a.notes, alerts.WithMetrics(a.metrics))

	// Catch up on stock that went low while the server was down.
	if err := a.evaluator.Sweep(ctx, a.inv); err != nil {
		slog.Warn("startup low-stock sweep failed", "err", err)
	}

	// ── 4. Voice pipeline ────────────────────────────────────────────────
	a.initPipeline()

	// ── 5. HTTP surface ──────────────────────────────────────────────────
	a.initHTTP()

	return a, nil
}

// ─── Init helpers ────────────────────────────────────────────────────────────

// initStorage connects the inventory and notification stores: PostgreSQL
// when a DSN is configured, in-memory otherwise. Injected stores win.
func (a *App) initStorage(ctx context.Context) error {
	if a.inv != nil && a.notes != nil {
		return nil // both injected
	}

	dsn := a.cfg.Storage.PostgresDSN
	if dsn == "" {
		if a.inv == nil {
			a.inv = inventory.NewMemStore()
		}
		if a.notes == nil {
			a.notes = alerts.NewMemStore()
		}
		slog.Info("using in-memory storage")
		return nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}
	a.pool = pool
	a.closers = append(a.closers, func() error {
		pool.Close()
		return nil
	})

	if a.inv == nil {
		store := inventory.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate inventory schema: %w", err)
		}
		a.inv = store
	}
	if a.notes == nil {
		store := alerts.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate notifications schema: %w", err)
		}
		a.notes = store
	}
	slog.Info("connected to postgres")
	return nil
}

// initPipeline wraps the configured engine backends in resilience layers and
// builds the voice pipeline. Without engines the pipeline still serves the
// deterministic command path.
func (a *App) initPipeline() {
	transcriber := a.buildTranscriber()
	extractor := a.buildExtractor()

	pipelineOpts := []voice.PipelineOption{
		voice.WithEvaluator(a.evaluator),
		voice.WithMetrics(a.metrics),
	}
	if d := a.cfg.Pipeline.TranscribeTimeout.Std(); d > 0 {
		pipelineOpts = append(pipelineOpts, voice.WithTranscribeTimeout(d))
	}

	a.pipeline = voice.NewPipeline(a.inv, transcriber, extractor, pipelineOpts...)
}

// buildTranscriber layers retry over an ordered failover group of the
// configured transcription backends. Returns nil when none are configured.
func (a *App) buildTranscriber() transcribe.Provider {
	backends := a.providers.Transcribe
	if len(backends) == 0 {
		return nil
	}

	group := resilience.NewTranscribeFallback(backends[0].Provider, backends[0].Name, resilience.FallbackConfig{})
	for _, b := range backends[1:] {
		group.AddFallback(b.Name, b.Provider)
		slog.Info("registered transcription fallback", "name", b.Name)
	}

	return resilience.WrapTranscriber(group, a.retryConfig("transcribe"))
}

// buildExtractor layers retry over an ordered failover group of the
// configured LLM backends. Returns nil when none are configured.
func (a *App) buildExtractor() *voice.Extractor {
	backends := a.providers.LLM
	if len(backends) == 0 {
		return nil
	}

	group := resilience.NewLLMFallback(backends[0].Provider, backends[0].Name, resilience.FallbackConfig{})
	for _, b := range backends[1:] {
		group.AddFallback(b.Name, b.Provider)
		slog.Info("registered llm fallback", "name", b.Name)
	}

	var extractorOpts []voice.ExtractorOption
	if d := a.cfg.Pipeline.ExtractTimeout.Std(); d > 0 {
		extractorOpts = append(extractorOpts, voice.WithExtractTimeout(d))
	}

	return voice.NewExtractor(resilience.WrapLLM(group, a.retryConfig("llm")), extractorOpts...)
}

// retryConfig derives the engine retry budget from config.
func (a *App) retryConfig(name string) resilience.RetryConfig {
	return resilience.RetryConfig{
		Name:     name,
		Attempts: a.cfg.Pipeline.RetryAttempts,
		Delay:    a.cfg.Pipeline.RetryDelay.Std(),
	}
}

// initHTTP assembles the full route table: the REST API, health endpoints,
// and the Prometheus scrape endpoint, all behind the telemetry middleware.
func (a *App) initHTTP() {
	apiSrv := api.NewServer(a.inv, a.notes, a.pipeline, api.WithEvaluator(a.evaluator))

	mux := http.NewServeMux()
	mux.Handle("/api/", apiSrv.Handler())
	mux.Handle("GET /metrics", promhttp.Handler())

	var checkers []health.Checker
	if a.pool != nil {
		checkers = append(checkers, health.DatabaseChecker(a.pool))
	}
	health.New(checkers...).Register(mux)

	a.handler = observe.Middleware(a.metrics)(mux)
}

// ─── Run / Shutdown ──────────────────────────────────────────────────────────

// Handler returns the fully wired HTTP handler. Useful for tests that drive
// the app through httptest without binding a socket.
func (a *App) Handler() http.Handler {
	return a.handler
}

// Seed loads the starter inventory into an empty store.
func (a *App) Seed(ctx context.Context) error {
	return inventory.Seed(ctx, a.inv)
}

// Run binds the listen address and serves HTTP until ctx is cancelled, then
// drains in-flight requests. It returns nil on clean shutdown.
func (a *App) Run(ctx context.Context) error {
	addr := a.cfg.Server.ListenAddr
	if addr == "" {
		addr = ":8080"
	}

	a.server = &http.Server{
		Addr:              addr,
		Handler:           a.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("http server listening", "addr", addr, "tls", a.cfg.Server.TLS != nil)
		var err error
		if tls := a.cfg.Server.TLS; tls != nil {
			err = a.server.ListenAndServeTLS(tls.CertFile, tls.KeyFile)
		} else {
			err = a.server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("app: serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return a.server.Shutdown(drainCtx)
	})

	return g.Wait()
}

// Shutdown releases all resources acquired in New. Safe to call more than
// once and safe to call after Run has returned.
func (a *App) Shutdown(ctx context.Context) error {
	var err error
	a.stopOnce.Do(func() {
		for i := len(a.closers) - 1; i >= 0; i-- {
			if cerr := a.closers[i](); cerr != nil && err == nil {
				err = cerr
			}
		}
	})
	return err
}
