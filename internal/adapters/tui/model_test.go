package tui_test

import (
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rigzba21/conda-vendor/internal/adapters/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newModel(t *testing.T) *tui.Model {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	m := tui.NewModel(io.Discard).WithDisableTick()
	m.Now = func() time.Time { return start.Add(time.Second) }
	return &m
}

func update(t *testing.T, m *tui.Model, msgs ...tea.Msg) (*tui.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(*tui.Model)
	}
	return m, cmd
}

func TestModel_BuildsSpanTree(t *testing.T) {
	m, _ := update(t, newModel(t),
		tui.MsgSpanStart{SpanID: "root", Name: "vendor", StartTime: start},
		tui.MsgSpanStart{SpanID: "dl", ParentID: "root", Name: "download", StartTime: start},
		tui.MsgSpanStart{SpanID: "a", ParentID: "dl", Name: "six-1.16.0-pyhd3eb1b0_1.tar.bz2", StartTime: start},
		tui.MsgSpanStart{SpanID: "b", ParentID: "dl", Name: "python-3.9.5-h12debd9_4.tar.bz2", StartTime: start},
	)

	require.Len(t, m.Roots, 1)
	rows := m.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"vendor", "download", "six-1.16.0-pyhd3eb1b0_1.tar.bz2", "python-3.9.5-h12debd9_4.tar.bz2"},
		[]string{rows[0].Name, rows[1].Name, rows[2].Name, rows[3].Name})
	assert.Equal(t, 2, rows[2].Depth)
	assert.Equal(t, tui.StatusRunning, rows[3].Status)
}

func TestModel_CountsArtifacts(t *testing.T) {
	m, _ := update(t, newModel(t),
		tui.MsgPlan{Artifacts: []string{"six-1.16.0-pyhd3eb1b0_1.tar.bz2", "python-3.9.5-h12debd9_4.tar.bz2"}},
		tui.MsgSpanStart{SpanID: "dl", Name: "download", StartTime: start},
		tui.MsgSpanStart{SpanID: "a", ParentID: "dl", Name: "six-1.16.0-pyhd3eb1b0_1.tar.bz2", StartTime: start},
		tui.MsgSpanStart{SpanID: "b", ParentID: "dl", Name: "python-3.9.5-h12debd9_4.tar.bz2", StartTime: start},
		tui.MsgSpanEnd{SpanID: "a", EndTime: start.Add(250 * time.Millisecond), Attrs: map[string]string{
			"url":  "https://conda.anaconda.org/main/noarch/six-1.16.0-pyhd3eb1b0_1.tar.bz2",
			"path": "out/env/noarch/six-1.16.0-pyhd3eb1b0_1.tar.bz2",
		}},
		tui.MsgSpanEnd{SpanID: "b", EndTime: start.Add(time.Second), Err: errors.New("sha256 checksum validation failed"),
			Attrs: map[string]string{"url": "https://conda.anaconda.org/main/linux-64/python-3.9.5-h12debd9_4.tar.bz2"}},
		tui.MsgSpanEnd{SpanID: "dl", EndTime: start.Add(time.Second), Err: errors.New("stage failed")},
		tui.MsgSpanEnd{SpanID: "unknown", EndTime: start},
	)

	assert.Equal(t, 2, m.Planned)
	assert.Equal(t, 1, m.Downloaded)
	assert.Equal(t, 1, m.Failed)
	assert.Equal(t, tui.StatusDone, m.Spans["a"].Status)
	assert.Equal(t, tui.StatusError, m.Spans["b"].Status)

	view := m.View()
	assert.Contains(t, view, "1/2 artifacts (1 failed)")
	assert.Contains(t, view, "  ✓ six-1.16.0-pyhd3eb1b0_1.tar.bz2 250ms → out/env/noarch/six-1.16.0-pyhd3eb1b0_1.tar.bz2")
	assert.Contains(t, view, "  ✗ python-3.9.5-h12debd9_4.tar.bz2 1s sha256 checksum validation failed")
}

func TestModel_ViewBeforePlan(t *testing.T) {
	m, _ := update(t, newModel(t), tui.MsgSpanStart{SpanID: "solve", Name: "solve", StartTime: start})

	view := m.View()
	assert.Contains(t, view, "resolving environment")
	assert.Contains(t, view, "● solve 1s")
}

func TestModel_Scrolling(t *testing.T) {
	m := newModel(t)
	msgs := []tea.Msg{tea.WindowSizeMsg{Width: 80, Height: 5}}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		msgs = append(msgs, tui.MsgSpanStart{SpanID: id, Name: "stage-" + id, StartTime: start})
	}
	m, _ = update(t, m, msgs...)

	// Three rows fit below the header; following keeps the newest visible.
	assert.Equal(t, 2, m.Offset)
	assert.NotContains(t, m.View(), "stage-a")
	assert.Contains(t, m.View(), "stage-e")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.False(t, m.Follow)
	assert.Equal(t, 0, m.Offset)
	assert.Contains(t, m.View(), "stage-a")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Offset, "offset never goes negative")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 1, m.Offset)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.Follow)
	assert.Equal(t, 2, m.Offset)
}

func TestModel_Quit(t *testing.T) {
	m, cmd := update(t, newModel(t), tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	assert.True(t, m.Interrupted)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_Tick(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	m := tui.NewModel(io.Discard)

	assert.NotNil(t, m.Init())
	disabled := m.WithDisableTick()
	assert.Nil(t, disabled.Init())
}
