package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

// Compile-time interface check.
var _ MetricsRecorder = NoopMetrics{}

// RecordInvocation does nothing.
func (NoopMetrics) RecordInvocation(_ context.Context, _, _ string, _ time.Duration) {}

// RecordBootstrap does nothing.
func (NoopMetrics) RecordBootstrap(_ context.Context, _ time.Duration, _ error) {}

// NoopSpanManager is a SpanManager that does nothing.
type NoopSpanManager struct{}

// Compile-time interface check.
var _ SpanManager = NoopSpanManager{}

var noopSpan = noop.Span{}

// StartExecSpan returns the context unchanged and a no-op span.
func (NoopSpanManager) StartExecSpan(ctx context.Context, _, _ string) (context.Context, trace.Span) {
	return ctx, noopSpan
}

// EndSpan does nothing.
func (NoopSpanManager) EndSpan(_ trace.Span, _ string, _ error) {}
