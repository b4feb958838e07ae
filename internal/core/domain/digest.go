package domain

import (
	_ "crypto/sha256" // registers sha256 for go-digest
	"errors"
	"strings"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/zerr"
)

// ParseSHA256 converts a hex encoded sha256 value into a digest.
func ParseSHA256(hex string) (digest.Digest, error) {
	encoded := strings.ToLower(strings.TrimSpace(hex))
	if err := digest.SHA256.Validate(encoded); err != nil {
		return "", zerr.With(errors.Join(ErrInvalidDigest, err), "sha256", hex)
	}
	return digest.NewDigestFromEncoded(digest.SHA256, encoded), nil
}

// VerifyDigest returns payload unchanged when its sha256 equals expectedHex.
func VerifyDigest(payload []byte, expectedHex string) ([]byte, error) {
	expected, err := ParseSHA256(expectedHex)
	if err != nil {
		return nil, err
	}

	verifier := expected.Verifier()
	if _, err := verifier.Write(payload); err != nil {
		return nil, zerr.Wrap(err, "failed to hash payload")
	}

	if !verifier.Verified() {
		actual := digest.SHA256.FromBytes(payload)
		err := zerr.With(zerr.Wrap(ErrDigestMismatch, "calculated sha256 does not match repodata sha256"), "expected", expected.Encoded())
		return nil, zerr.With(err, "actual", actual.Encoded())
	}

	return payload, nil
}
