package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartExecSpan starts a span for one reg.exe invocation.
	StartExecSpan(ctx context.Context, command, invocationID string) (context.Context, trace.Span)

	// EndSpan completes a span with its outcome, recording err if non-nil.
	EndSpan(span trace.Span, outcome string, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct {
	tracer trace.Tracer
}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{tracer: otel.Tracer(InstrumentationName)}
}

// NewSpanManagerFrom builds a span manager on a specific tracer provider.
func NewSpanManagerFrom(tp trace.TracerProvider) SpanManager {
	return &otelSpanManager{tracer: tp.Tracer(InstrumentationName)}
}

// StartExecSpan starts a span for one reg.exe invocation.
func (m *otelSpanManager) StartExecSpan(ctx context.Context, command, invocationID string) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "regkit.exec",
		trace.WithAttributes(
			attribute.String("reg.command", command),
			attribute.String("invocation.id", invocationID),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// EndSpan completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpan(span trace.Span, outcome string, err error) {
	if span == nil {
		return
	}
	span.SetAttributes(attribute.String("reg.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
