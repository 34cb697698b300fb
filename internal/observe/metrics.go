// Package observe provides application-wide observability primitives for the
// inventory tracker: OpenTelemetry metrics, distributed tracing, structured
// logging, and HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all metrics.
const meterName = "github.com/Harsh7114/Inventory-Tracker"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation. The convenience Observe* methods accept a nil
// receiver so components can run uninstrumented (e.g., in tests).
type Metrics struct {
	// --- Latency histograms per pipeline stage ---

	// TranscriptionDuration tracks speech-to-text transcription latency.
	TranscriptionDuration metric.Float64Histogram

	// ExtractionDuration tracks LLM item-extraction latency.
	ExtractionDuration metric.Float64Histogram

	// ApplyDuration tracks batch application latency against the store.
	ApplyDuration metric.Float64Histogram

	// --- Counters ---

	// ItemsApplied counts inventory items created or incremented by the
	// voice pipeline.
	ItemsApplied metric.Int64Counter

	// ItemsFailed counts candidate items rejected during application.
	ItemsFailed metric.Int64Counter

	// ProviderErrors counts remote engine errors. Use with attributes:
	//   attribute.String("kind", "transcribe"|"llm")
	ProviderErrors metric.Int64Counter

	// NotificationsCreated counts low-stock notifications by severity.
	NotificationsCreated metric.Int64Counter

	// --- HTTP middleware ---

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// remote engine round trips.
var latencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.TranscriptionDuration, err = m.Float64Histogram("invtrack.transcription.duration",
		metric.WithDescription("Latency of speech-to-text transcription."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ExtractionDuration, err = m.Float64Histogram("invtrack.extraction.duration",
		metric.WithDescription("Latency of LLM item extraction."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ApplyDuration, err = m.Float64Histogram("invtrack.apply.duration",
		metric.WithDescription("Latency of batch application against the store."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.ItemsApplied, err = m.Int64Counter("invtrack.items.applied",
		metric.WithDescription("Total inventory items created or incremented by the voice pipeline."),
	); err != nil {
		return nil, err
	}
	if met.ItemsFailed, err = m.Int64Counter("invtrack.items.failed",
		metric.WithDescription("Total candidate items rejected during application."),
	); err != nil {
		return nil, err
	}
	if met.ProviderErrors, err = m.Int64Counter("invtrack.provider.errors",
		metric.WithDescription("Total remote engine errors by kind."),
	); err != nil {
		return nil, err
	}
	if met.NotificationsCreated, err = m.Int64Counter("invtrack.notifications.created",
		metric.WithDescription("Total low-stock notifications created by severity."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("invtrack.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// ObserveTranscription records one transcription round trip.
func (m *Metrics) ObserveTranscription(ctx context.Context, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.TranscriptionDuration.Record(ctx, d.Seconds())
	if err != nil {
		m.ProviderErrors.Add(ctx, 1,
			metric.WithAttributes(attribute.String("kind", "transcribe")))
	}
}

// ObserveExtraction records one extraction round trip.
func (m *Metrics) ObserveExtraction(ctx context.Context, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.ExtractionDuration.Record(ctx, d.Seconds())
	if err != nil {
		m.ProviderErrors.Add(ctx, 1,
			metric.WithAttributes(attribute.String("kind", "llm")))
	}
}

// ObserveApply records one batch application pass.
func (m *Metrics) ObserveApply(ctx context.Context, d time.Duration, applied, failed int) {
	if m == nil {
		return
	}
	m.ApplyDuration.Record(ctx, d.Seconds())
	if applied > 0 {
		m.ItemsApplied.Add(ctx, int64(applied))
	}
	if failed > 0 {
		m.ItemsFailed.Add(ctx, int64(failed))
	}
}

// RecordNotification counts one created notification by severity.
func (m *Metrics) RecordNotification(ctx context.Context, severity string) {
	if m == nil {
		return
	}
	m.NotificationsCreated.Add(ctx, 1,
		metric.WithAttributes(attribute.String("severity", severity)))
}
