package telemetry_test

import (
	"context"
	"testing"

	"github.com/rigzba21/conda-vendor/internal/adapters/telemetry"
	"github.com/rigzba21/conda-vendor/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, tp
}

func TestOTelTracer_StartAttributes(t *testing.T) {
	sr, tp := newRecorder(t)
	tracer := telemetry.NewOTelTracer(tp, "test")

	_, span := tracer.Start(context.Background(), "download",
		ports.WithAttribute("url", "https://conda.anaconda.org/main/noarch/six-1.16.0-pyhd3eb1b0_1.tar.bz2"),
		ports.WithAttribute("size", int64(18807)),
	)
	span.SetAttribute("verified", true)
	span.SetAttribute("attempts", 2)
	span.SetAttribute("specs", []string{"six"})
	span.SetAttribute("platform", struct{ Name string }{"linux-64"})
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	attrs := ended[0].Attributes()
	assert.Contains(t, attrs, attribute.String("url", "https://conda.anaconda.org/main/noarch/six-1.16.0-pyhd3eb1b0_1.tar.bz2"))
	assert.Contains(t, attrs, attribute.Int64("size", 18807))
	assert.Contains(t, attrs, attribute.Bool("verified", true))
	assert.Contains(t, attrs, attribute.Int("attempts", 2))
	assert.Contains(t, attrs, attribute.StringSlice("specs", []string{"six"}))
	assert.Contains(t, attrs, attribute.String("platform", "{linux-64}"))
}

func TestOTelTracer_RecordError(t *testing.T) {
	sr, tp := newRecorder(t)
	tracer := telemetry.NewOTelTracer(tp, "test")

	_, span := tracer.Start(context.Background(), "verify")
	span.RecordError(assert.AnError)
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, assert.AnError.Error(), ended[0].Status().Description)
}

func TestOTelTracer_EmitPlan(t *testing.T) {
	sr, tp := newRecorder(t)
	tracer := telemetry.NewOTelTracer(tp, "test")

	// No active span and no renderer: nothing to record.
	tracer.EmitPlan(context.Background(), []string{"a.conda"})

	ctx, span := tracer.Start(context.Background(), "plan")
	tracer.EmitPlan(ctx, []string{"a.conda", "b.tar.bz2"})
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	events := ended[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "plan_emitted", events[0].Name)
}

func TestOTelTracer_ShutdownWithoutSetup(t *testing.T) {
	tracer := telemetry.NewOTelTracer(nil, "test")
	assert.NoError(t, tracer.Shutdown(context.Background()))
}
