package domain_test

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sha256Hex(p []byte) string {
	sum := sha256.Sum256(p)
	return hex.EncodeToString(sum[:])
}

func TestVerifyDigest(t *testing.T) {
	payload := []byte("python-3.9.5 package bytes")

	t.Run("match returns payload", func(t *testing.T) {
		got, err := domain.VerifyDigest(payload, sha256Hex(payload))
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("uppercase digest accepted", func(t *testing.T) {
		got, err := domain.VerifyDigest(payload, strings.ToUpper(sha256Hex(payload)))
		require.NoError(t, err)
		assert.Equal(t, payload, got)
	})

	t.Run("empty payload", func(t *testing.T) {
		got, err := domain.VerifyDigest([]byte{}, sha256Hex(nil))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("mismatch", func(t *testing.T) {
		_, err := domain.VerifyDigest(payload, sha256Hex([]byte("something else")))
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrDigestMismatch))
	})

	t.Run("malformed digest", func(t *testing.T) {
		_, err := domain.VerifyDigest(payload, "not-a-digest")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidDigest))
		assert.False(t, errors.Is(err, domain.ErrDigestMismatch))
	})
}
