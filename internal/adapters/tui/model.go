// Package tui renders vendoring progress as an interactive span tree.
package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rigzba21/conda-vendor/internal/ui/output"
)

const (
	defaultTickInterval = 100 * time.Millisecond

	// headerHeight is the title line plus the blank line below it.
	headerHeight = 2
)

// Status is the state of a span in the tree.
type Status int

const (
	// StatusRunning marks a span that has not ended.
	StatusRunning Status = iota
	// StatusDone marks a span that ended without error.
	StatusDone
	// StatusError marks a span that recorded an error.
	StatusError
)

// Node is a stage or artifact download in the progress tree.
type Node struct {
	SpanID   string
	Name     string
	Status   Status
	Depth    int
	Start    time.Time
	End      time.Time
	Err      error
	Attrs    map[string]string
	Children []*Node
}

// Model holds the progress tree. Stages are roots and downloads hang off
// the download stage.
type Model struct {
	Roots []*Node
	Spans map[string]*Node

	Planned    int
	Downloaded int
	Failed     int

	Width  int
	Height int
	Offset int
	Follow bool

	Interrupted  bool
	TickInterval time.Duration
	Now          func() time.Time
}

// NewModel creates a Model whose colors match the terminal behind w.
func NewModel(w io.Writer) Model {
	out := output.New(w, output.Detect)
	lipgloss.SetColorProfile(out.Profile)

	return Model{
		Spans:        make(map[string]*Node),
		Follow:       true,
		TickInterval: defaultTickInterval,
		Now:          time.Now,
	}
}

// WithDisableTick stops the periodic refresh of running durations.
func (m Model) WithDisableTick() Model {
	m.TickInterval = 0
	return m
}

// Init starts the refresh ticker.
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	if m.TickInterval <= 0 {
		return nil
	}
	return tea.Tick(m.TickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update applies span events and key presses to the tree.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Interrupted = true
			return m, tea.Quit
		case "k", "up":
			m.scroll(-1)
		case "j", "down":
			m.scroll(1)
		case "esc":
			m.Follow = true
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case tickMsg:
		return m, m.tick()

	case MsgPlan:
		m.Planned = len(msg.Artifacts)

	case MsgSpanStart:
		m.start(msg)

	case MsgSpanEnd:
		m.end(msg)
	}

	if m.Follow {
		m.Offset = m.maxOffset()
	}
	return m, nil
}

func (m *Model) start(msg MsgSpanStart) {
	if m.Spans == nil {
		m.Spans = make(map[string]*Node)
	}

	node := &Node{SpanID: msg.SpanID, Name: msg.Name, Status: StatusRunning, Start: msg.StartTime}
	if parent, ok := m.Spans[msg.ParentID]; ok {
		node.Depth = parent.Depth + 1
		parent.Children = append(parent.Children, node)
	} else {
		m.Roots = append(m.Roots, node)
	}
	m.Spans[msg.SpanID] = node
}

func (m *Model) end(msg MsgSpanEnd) {
	node, ok := m.Spans[msg.SpanID]
	if !ok {
		return
	}

	node.End = msg.EndTime
	node.Err = msg.Err
	node.Attrs = msg.Attrs
	node.Status = StatusDone
	if msg.Err != nil {
		node.Status = StatusError
	}

	// Only artifact spans carry a url.
	if _, artifact := msg.Attrs["url"]; artifact {
		if msg.Err != nil {
			m.Failed++
		} else {
			m.Downloaded++
		}
	}
}

// Rows returns the tree in display order, parents before their children.
func (m *Model) Rows() []*Node {
	rows := make([]*Node, 0, len(m.Spans))
	var walk func(n *Node)
	walk = func(n *Node) {
		rows = append(rows, n)
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, root := range m.Roots {
		walk(root)
	}
	return rows
}

func (m *Model) visibleRows() int {
	if m.Height <= headerHeight {
		return 0
	}
	return m.Height - headerHeight
}

func (m *Model) maxOffset() int {
	visible := m.visibleRows()
	if visible == 0 {
		return 0
	}
	return max(len(m.Spans)-visible, 0)
}

func (m *Model) scroll(delta int) {
	m.Follow = false
	m.Offset = min(max(m.Offset+delta, 0), m.maxOffset())
}
