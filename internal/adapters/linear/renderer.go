// Package linear provides a synchronous, line-oriented progress renderer.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"github.com/rigzba21/conda-vendor/internal/ui/output"
	"github.com/rigzba21/conda-vendor/internal/ui/style"
)

// Renderer implements ports.Renderer. It prints one line when a stage starts
// and one when it finishes, indenting nested spans such as single downloads.
type Renderer struct {
	w      io.Writer
	output *termenv.Output

	mu    sync.Mutex
	tasks map[string]*taskState
}

type taskState struct {
	name      string
	depth     int
	startTime time.Time
}

// NewRenderer creates a Renderer writing to w, or stderr when w is nil.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stderr
	}
	return &Renderer{
		w:      w,
		output: output.New(w, output.ForceANSI),
		tasks:  make(map[string]*taskState),
	}
}

// Start does nothing; lines are written as events arrive.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop does nothing.
func (r *Renderer) Stop() error {
	return nil
}

// Wait returns immediately.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints the number of artifacts about to be vendored.
func (r *Renderer) OnPlanEmit(artifacts []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.w, "Planning to vendor %d artifact(s)\n", len(artifacts))
}

// OnTaskStart prints a stage start message.
func (r *Renderer) OnTaskStart(spanID, parentID, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	depth := 0
	if parent, ok := r.tasks[parentID]; ok {
		depth = parent.depth + 1
	}
	r.tasks[spanID] = &taskState{name: name, depth: depth, startTime: startTime}

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.w, "%s%s Starting...\n", indent(depth), prefix)
}

// OnTaskComplete prints the outcome and duration of a stage. Downloads also
// show where the artifact was written, or the URL that failed.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error, attrs map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	delete(r.tasks, spanID)

	duration := endTime.Sub(task.startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("%s[%s]", indent(task.depth), task.name)

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(r.output.Color(string(style.Failure))).String()
		_, _ = fmt.Fprintf(r.w, "%s %s Failed after %v: %v%s\n", prefix, symbol, duration, err, r.detail("url", attrs["url"]))
		return
	}

	symbol := r.output.String(style.Check).Foreground(r.output.Color(string(style.Success))).String()
	_, _ = fmt.Fprintf(r.w, "%s %s Completed in %v%s\n", prefix, symbol, duration, r.detail(style.Arrow, attrs["path"]))
}

func (r *Renderer) detail(label, value string) string {
	if value == "" {
		return ""
	}
	return " " + r.output.String(label+" "+value).Faint().String()
}

func indent(depth int) string {
	s := ""
	for range depth {
		s += "  "
	}
	return s
}
