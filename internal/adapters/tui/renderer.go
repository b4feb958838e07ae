package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/zerr"
)

// Renderer drives the Model from a Bubble Tea program and implements ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewRenderer creates a renderer for model.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start runs the program in the background.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop asks the program to draw its last frame and exit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the program has exited. Quitting from the keyboard
// reports context.Canceled so the run stops too.
func (r *Renderer) Wait() error {
	if err := <-r.errCh; err != nil {
		return zerr.Wrap(err, "progress display failed")
	}
	if r.model.Interrupted {
		return zerr.Wrap(context.Canceled, "interrupted")
	}
	return nil
}

// OnPlanEmit forwards the fetch plan.
func (r *Renderer) OnPlanEmit(artifacts []string) {
	r.program.Send(MsgPlan{Artifacts: artifacts})
}

// OnTaskStart forwards a span start.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.program.Send(MsgSpanStart{SpanID: spanID, ParentID: parentID, Name: name, StartTime: startTime})
}

// OnTaskComplete forwards a span end with its attributes.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error, attrs map[string]string) {
	r.program.Send(MsgSpanEnd{SpanID: spanID, EndTime: endTime, Err: err, Attrs: attrs})
}

// Program returns the underlying program for tests.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
