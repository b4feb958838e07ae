package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for progress output.
// It decouples telemetry collection from presentation, so the same span
// stream drives either the interactive TUI or linear CI logs.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start begins the renderer lifecycle. Asynchronous renderers launch
	// their event loop here.
	Start(ctx context.Context) error

	// Stop signals that no further events will arrive.
	Stop() error

	// Wait blocks until the renderer has terminated.
	Wait() error

	// OnPlanEmit is called once the fetch plan is known.
	OnPlanEmit(artifacts []string)

	// OnTaskStart is called when a stage or download begins.
	// parentID is empty for top-level spans.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskComplete is called when a stage or download finishes.
	// err is nil on success. attrs holds the span attributes, such as the
	// url, subdir and path of a downloaded artifact.
	OnTaskComplete(spanID string, endTime time.Time, err error, attrs map[string]string)
}
