package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/rigzba21/conda-vendor/internal/ui/style"
)

const runningIcon = "●"

// View renders the header and the visible part of the span tree.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("conda-vendor") + " " + m.progress() + "\n\n")

	rows := m.Rows()
	start, end := 0, len(rows)
	if visible := m.visibleRows(); visible > 0 && len(rows) > visible {
		start = min(m.Offset, len(rows)-visible)
		end = start + visible
	}

	for _, node := range rows[start:end] {
		b.WriteString(m.renderRow(node) + "\n")
	}
	return b.String()
}

func (m *Model) progress() string {
	if m.Planned == 0 {
		return mutedStyle.Render("resolving environment")
	}

	s := fmt.Sprintf("%d/%d artifacts", m.Downloaded, m.Planned)
	if m.Failed > 0 {
		return s + " " + errorStyle.Render(fmt.Sprintf("(%d failed)", m.Failed))
	}
	return s
}

func (m *Model) renderRow(n *Node) string {
	row := strings.Repeat("  ", n.Depth) + m.icon(n) + " " + n.Name + " " + mutedStyle.Render(m.elapsed(n).String())

	switch n.Status {
	case StatusError:
		row += " " + errorStyle.Render(n.Err.Error())
	case StatusDone:
		if path := n.Attrs["path"]; path != "" {
			row += " " + mutedStyle.Render(style.Arrow+" "+path)
		}
	}
	return row
}

func (m *Model) icon(n *Node) string {
	switch n.Status {
	case StatusDone:
		return doneStyle.Render(style.Check)
	case StatusError:
		return errorStyle.Render(style.Cross)
	default:
		return runningStyle.Render(runningIcon)
	}
}

func (m *Model) elapsed(n *Node) time.Duration {
	end := n.End
	if n.Status == StatusRunning {
		end = m.now()
	}
	return end.Sub(n.Start).Round(time.Millisecond)
}

func (m *Model) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}
