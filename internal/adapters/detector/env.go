// Package detector picks the progress renderer for the current terminal.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for progress output.
type OutputMode int

const (
	// ModeAuto detects the mode from the environment.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive renderer.
	ModeTUI
	// ModeLinear forces line-oriented output.
	ModeLinear
)

// DetectEnvironment returns ModeTUI only when stderr, where progress is
// drawn, is an interactive terminal outside CI.
func DetectEnvironment() OutputMode {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return ModeLinear
	}

	ci := os.Getenv("CI")
	if ci == "true" || ci == "1" || os.Getenv("TERM") == "dumb" {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the --output-mode flag on top of detection.
// Unknown values fall back to the detected mode.
func ResolveMode(detected OutputMode, flag string) OutputMode {
	switch flag {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	default:
		return detected
	}
}
