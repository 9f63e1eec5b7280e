// Package observability records metrics and traces for reg.exe invocations.
//
// Features:
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// Both are opt-in and have no-op implementations when disabled.
package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// InstrumentationName names regkit's meter and tracer.
const InstrumentationName = "regkit"

// Outcome labels for recorded invocations.
const (
	OutcomeSuccess = "success"
	OutcomeAbsent  = "absent"
	OutcomeFailure = "failure"
)

// MetricsRecorder records regkit metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordInvocation records one reg.exe run with its verb, outcome and duration.
	RecordInvocation(ctx context.Context, verb, outcome string, duration time.Duration)

	// RecordBootstrap records the locale discovery phase.
	RecordBootstrap(ctx context.Context, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	invocations metric.Int64Counter
	latency     metric.Float64Histogram
	failures    metric.Int64Counter
	bootstraps  metric.Int64Counter
	bootLatency metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics(otel.Meter(InstrumentationName))
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics(meter metric.Meter) (*otelMetrics, error) {
	invocations, err := meter.Int64Counter("regkit.exec.invocations",
		metric.WithDescription("Number of reg.exe invocations"),
	)
	if err != nil {
		return nil, err
	}

	latency, err := meter.Float64Histogram("regkit.exec.latency_ms",
		metric.WithDescription("reg.exe invocation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter("regkit.exec.failures",
		metric.WithDescription("Number of reg.exe invocations that reported an error"),
	)
	if err != nil {
		return nil, err
	}

	bootstraps, err := meter.Int64Counter("regkit.locale.bootstraps",
		metric.WithDescription("Number of locale discovery phases"),
	)
	if err != nil {
		return nil, err
	}

	bootLatency, err := meter.Float64Histogram("regkit.locale.latency_ms",
		metric.WithDescription("Locale discovery latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		invocations: invocations,
		latency:     latency,
		failures:    failures,
		bootstraps:  bootstraps,
		bootLatency: bootLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// NewMetricsRecorderFrom builds a recorder on a specific meter, bypassing
// the global provider.
func NewMetricsRecorderFrom(meter metric.Meter) (MetricsRecorder, error) {
	return newOtelMetrics(meter)
}

// RecordInvocation records a reg.exe invocation.
func (m *otelMetrics) RecordInvocation(ctx context.Context, verb, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("verb", verb),
		attribute.String("outcome", outcome),
	)
	m.invocations.Add(ctx, 1, attrs)
	m.latency.Record(ctx, float64(duration.Milliseconds()), attrs)
	if outcome == OutcomeFailure {
		m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("verb", verb)))
	}
}

// RecordBootstrap records the locale discovery phase.
func (m *otelMetrics) RecordBootstrap(ctx context.Context, duration time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.Bool("success", err == nil))
	m.bootstraps.Add(ctx, 1, attrs)
	m.bootLatency.Record(ctx, float64(duration.Milliseconds()), attrs)
}
