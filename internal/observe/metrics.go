// Package observe provides observability primitives for ramblefix:
// OpenTelemetry metrics with a Prometheus exporter bridge.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A package-level
// default [Metrics] instance ([DefaultMetrics]) is provided for convenience;
// tests should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all ramblefix metrics.
const meterName = "github.com/ashishact/ramblefix"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// AnalyzeDuration tracks how long a full analysis pass over one text
	// buffer takes.
	AnalyzeDuration metric.Float64Histogram

	// DiffDuration tracks word-level diff latency.
	DiffDuration metric.Float64Histogram

	// Suggestions counts corrections offered for review. Use with attribute:
	//   attribute.String("source", "learned"|"entity")
	Suggestions metric.Int64Counter

	// CorrectionsApplied counts corrections spliced into output text.
	CorrectionsApplied metric.Int64Counter

	// LearnedSaves counts confirmed changes persisted to the learn store.
	// Use with attribute:
	//   attribute.String("status", "ok"|"error")
	LearnedSaves metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds). Analysis
// of a dictation buffer is fast, so the buckets skew small.
var latencyBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.AnalyzeDuration, err = m.Float64Histogram("ramblefix.analyze.duration",
		metric.WithDescription("Latency of one analysis pass over a text buffer."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.DiffDuration, err = m.Float64Histogram("ramblefix.diff.duration",
		metric.WithDescription("Latency of word-level diffing between shown and submitted text."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	if met.Suggestions, err = m.Int64Counter("ramblefix.suggestions",
		metric.WithDescription("Total corrections offered for review, by source."),
	); err != nil {
		return nil, err
	}
	if met.CorrectionsApplied, err = m.Int64Counter("ramblefix.corrections.applied",
		metric.WithDescription("Total corrections spliced into output text."),
	); err != nil {
		return nil, err
	}
	if met.LearnedSaves, err = m.Int64Counter("ramblefix.learned.saves",
		metric.WithDescription("Total confirmed changes persisted, by status."),
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

// RecordSuggestion records one offered correction with its source attribute.
func (m *Metrics) RecordSuggestion(ctx context.Context, source string) {
	m.Suggestions.Add(ctx, 1,
		metric.WithAttributes(attribute.String("source", source)),
	)
}

// RecordLearnedSave records one persistence attempt with its status.
func (m *Metrics) RecordLearnedSave(ctx context.Context, status string) {
	m.LearnedSaves.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", status)),
	)
}
