// Package output builds termenv outputs that honour NO_COLOR.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Mode selects how the color profile is chosen when NO_COLOR is unset.
type Mode int

const (
	// Detect inspects the terminal capabilities.
	Detect Mode = iota
	// ForceANSI uses the basic 16 color palette, which renders in CI logs.
	ForceANSI
)

// Profile returns the color profile for mode. NO_COLOR always yields Ascii.
func Profile(mode Mode) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if mode == ForceANSI {
		return termenv.ANSI
	}
	return termenv.EnvColorProfile()
}

// New creates a termenv.Output writing to w. A nil writer means stderr.
func New(w io.Writer, mode Mode) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w,
		termenv.WithProfile(Profile(mode)),
		termenv.WithTTY(true),
	)
}
