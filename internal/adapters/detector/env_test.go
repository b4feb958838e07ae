package detector_test

import (
	"testing"

	"github.com/rigzba21/conda-vendor/internal/adapters/detector"
	"github.com/stretchr/testify/assert"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		flag     string
		detected detector.OutputMode
		want     detector.OutputMode
	}{
		{flag: "tui", detected: detector.ModeLinear, want: detector.ModeTUI},
		{flag: "linear", detected: detector.ModeTUI, want: detector.ModeLinear},
		{flag: "ci", detected: detector.ModeTUI, want: detector.ModeLinear},
		{flag: "auto", detected: detector.ModeTUI, want: detector.ModeTUI},
		{flag: "", detected: detector.ModeLinear, want: detector.ModeLinear},
		{flag: "fancy", detected: detector.ModeLinear, want: detector.ModeLinear},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			assert.Equal(t, tt.want, detector.ResolveMode(tt.detected, tt.flag))
		})
	}
}

func TestDetectEnvironment_CI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment())
}

func TestDetectEnvironment_DumbTerminal(t *testing.T) {
	t.Setenv("TERM", "dumb")
	assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment())
}
