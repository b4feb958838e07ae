// Package telemetry adapts OpenTelemetry spans to the vendoring progress renderer.
package telemetry

import (
	"context"
	"errors"

	"github.com/rigzba21/conda-vendor/internal/core/ports"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// defaultFailure describes an errored span that carries no status description.
const defaultFailure = "stage failed"

// Bridge is an sdktrace.SpanProcessor that turns stage and artifact spans
// into renderer events.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a Bridge feeding renderer. A nil renderer drops all spans.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart reports a started span together with its parent.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}

	var parentID string
	if p := trace.SpanContextFromContext(parent); p.IsValid() {
		parentID = p.SpanID().String()
	}

	b.renderer.OnTaskStart(s.SpanContext().SpanID().String(), parentID, s.Name(), s.StartTime())
}

// OnEnd reports the outcome of a span along with its final attributes.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.renderer == nil || !s.SpanContext().IsValid() {
		return
	}

	b.renderer.OnTaskComplete(s.SpanContext().SpanID().String(), s.EndTime(), spanError(s.Status()), spanAttributes(s.Attributes()))
}

func spanError(status sdktrace.Status) error {
	if status.Code != codes.Error {
		return nil
	}
	if status.Description == "" {
		return errors.New(defaultFailure)
	}
	return errors.New(status.Description)
}

// spanAttributes flattens attributes to strings. Later keys win.
func spanAttributes(kvs []attribute.KeyValue) map[string]string {
	if len(kvs) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	return attrs
}

// ForceFlush does nothing; events are delivered synchronously.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
