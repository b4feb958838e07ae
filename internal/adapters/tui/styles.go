package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rigzba21/conda-vendor/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Accent).
			Foreground(lipgloss.Color("#FFFFFF"))

	runningStyle = lipgloss.NewStyle().
			Foreground(style.Accent).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(style.Success)

	errorStyle = lipgloss.NewStyle().
			Foreground(style.Failure)

	mutedStyle = lipgloss.NewStyle().
			Foreground(style.Muted)
)
