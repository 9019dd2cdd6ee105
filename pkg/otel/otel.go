// Package otel configures OpenTelemetry tracing and carries the request
// tracer through contexts.
package otel

import (
	"context"
	"net/http"

	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"cupstory/pkg/logger"
)

// Config controls tracer provider construction.
type Config struct {
	ServiceName string
	// Host is the OTLP/gRPC collector address. Empty disables export; spans
	// are still created so trace ids reach the logs.
	Host        string
	Probability float64
}

// InitTracing installs a global tracer provider and W3C propagator. The
// returned func flushes and stops the provider.
func InitTracing(log *logger.Logger, cfg Config) (*sdktrace.TracerProvider, func(context.Context) error, error) {
	ctx := context.Background()
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.Probability))),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))),
	}
	if cfg.Host != "" {
		exp, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.Host),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
		log.Info(ctx, "otel exporter configured", "host", cfg.Host, "probability", cfg.Probability)
	} else {
		log.Warn(ctx, "otel exporter disabled, no collector host")
	}
	tp := sdktrace.NewTracerProvider(opts...)
	otelapi.SetTracerProvider(tp)
	otelapi.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp, tp.Shutdown, nil
}

type tracerKey struct{}

// InjectTracing stores tracer in ctx for AddSpan.
func InjectTracing(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, tracerKey{}, tracer)
}

// ExtractHTTP continues a trace propagated in the request headers.
func ExtractHTTP(ctx context.Context, h http.Header) context.Context {
	return otelapi.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(h))
}

// AddSpan starts a child span using the tracer injected in ctx, falling back
// to the global provider.
func AddSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer, ok := ctx.Value(tracerKey{}).(trace.Tracer)
	if !ok {
		tracer = otelapi.Tracer("cupstory")
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// GetTraceID returns the hex trace id of the span in ctx, or "".
func GetTraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
