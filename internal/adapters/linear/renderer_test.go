package linear_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rigzba21/conda-vendor/internal/adapters/linear"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_StageLifecycle(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := linear.NewRenderer(&buf)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	r.OnTaskStart("root", "", "vendor", start)
	r.OnPlanEmit([]string{"python-3.9.5-h12debd9_4.tar.bz2", "six-1.16.0-pyhd3eb1b0_1.tar.bz2"})
	r.OnTaskStart("dl", "root", "six-1.16.0-pyhd3eb1b0_1.tar.bz2", start)
	r.OnTaskStart("bad", "root", "python-3.9.5-h12debd9_4.tar.bz2", start)
	r.OnTaskComplete("dl", start.Add(250*time.Millisecond), nil, map[string]string{
		"url":    "https://conda.anaconda.org/main/noarch/six-1.16.0-pyhd3eb1b0_1.tar.bz2",
		"subdir": "noarch",
		"path":   "out/env/noarch/six-1.16.0-pyhd3eb1b0_1.tar.bz2",
	})
	r.OnTaskComplete("bad", start.Add(time.Second), errors.New("sha256 checksum validation failed"), map[string]string{
		"url":    "https://conda.anaconda.org/main/linux-64/python-3.9.5-h12debd9_4.tar.bz2",
		"subdir": "linux-64",
	})
	r.OnTaskComplete("root", start.Add(2*time.Second), errors.New("sha256 checksum validation failed"), nil)

	want := "[vendor] Starting...\n" +
		"Planning to vendor 2 artifact(s)\n" +
		"  [six-1.16.0-pyhd3eb1b0_1.tar.bz2] Starting...\n" +
		"  [python-3.9.5-h12debd9_4.tar.bz2] Starting...\n" +
		"  [six-1.16.0-pyhd3eb1b0_1.tar.bz2] ✓ Completed in 250ms → out/env/noarch/six-1.16.0-pyhd3eb1b0_1.tar.bz2\n" +
		"  [python-3.9.5-h12debd9_4.tar.bz2] ✗ Failed after 1s: sha256 checksum validation failed " +
		"url https://conda.anaconda.org/main/linux-64/python-3.9.5-h12debd9_4.tar.bz2\n" +
		"[vendor] ✗ Failed after 2s: sha256 checksum validation failed\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderer_UnknownSpan(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	r := linear.NewRenderer(&buf)

	r.OnTaskComplete("missing", time.Now(), nil, nil)
	assert.Empty(t, buf.String())
}

func TestRenderer_Lifecycle(t *testing.T) {
	r := linear.NewRenderer(&bytes.Buffer{})

	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop())
	require.NoError(t, r.Wait())
}
