package otel

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otelapi "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestAddSpanUsesInjectedTracer(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	assert.Empty(t, GetTraceID(context.Background()))

	ctx := InjectTracing(context.Background(), tp.Tracer("test"))
	ctx, span := AddSpan(ctx, "parent")
	defer span.End()
	id := GetTraceID(ctx)
	require.Len(t, id, 32)

	child, childSpan := AddSpan(ctx, "child")
	defer childSpan.End()
	assert.Equal(t, id, GetTraceID(child))
}

func TestExtractHTTP(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "client")
	h := http.Header{}
	propagation.TraceContext{}.Inject(ctx, propagation.HeaderCarrier(h))
	span.End()

	otelapi.SetTextMapPropagator(propagation.TraceContext{})
	got := ExtractHTTP(context.Background(), h)
	assert.Equal(t, GetTraceID(ctx), GetTraceID(got))
}
