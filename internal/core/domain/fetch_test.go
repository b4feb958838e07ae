package domain_test

import (
	"testing"

	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestSolveRequest_Fingerprint(t *testing.T) {
	base := domain.SolveRequest{
		Backend:  "conda",
		Channels: []string{"main", "conda-forge"},
		Specs:    []string{"python==3.9.5"},
		Platform: "linux-64",
	}

	assert.Equal(t, base.Fingerprint(), base.Fingerprint())
	assert.NotEmpty(t, base.Fingerprint())

	reordered := base
	reordered.Channels = []string{"conda-forge", "main"}
	assert.NotEqual(t, base.Fingerprint(), reordered.Fingerprint())

	// Field boundaries must not collide.
	a := domain.SolveRequest{Channels: []string{"ab"}, Specs: []string{"c"}}
	b := domain.SolveRequest{Channels: []string{"a"}, Specs: []string{"bc"}}
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestLinkEntry_Dist(t *testing.T) {
	assert.Equal(t, "python-3.9.5-h12debd9_4", domain.LinkEntry{DistName: "python-3.9.5-h12debd9_4"}.Dist())
	assert.Equal(t, "zlib-1.2.13-h53f4e23_5", domain.LinkEntry{Filename: "zlib-1.2.13-h53f4e23_5.conda"}.Dist())
	assert.Equal(t, "six-1.16.0-pyhd3eb1b0_1", domain.LinkEntry{Filename: "six-1.16.0-pyhd3eb1b0_1.tar.bz2"}.Dist())
}
