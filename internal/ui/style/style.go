// Package style holds the colors and icons shared by log and progress output.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Muted   = lipgloss.Color("#667085")
	Accent  = lipgloss.Color("#8B5CF6")
	Success = lipgloss.Color("#22A06B")
	Failure = lipgloss.Color("#D93025")
	Caution = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
)
