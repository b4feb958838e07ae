package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"go.trai.ch/zerr"
)

// WriteOption configures WriteFileAtomic.
type WriteOption func(*writeConfig)

type writeConfig struct {
	noClobber bool
}

// NoClobber makes WriteFileAtomic fail with domain.ErrDestinationExists
// instead of replacing an existing file.
func NoClobber() WriteOption {
	return func(c *writeConfig) { c.noClobber = true }
}

// WriteFileAtomic writes data to a temp file next to path and moves it into place,
// so readers never observe a partially written file. With NoClobber the temp
// file is hard-linked to path, which fails if path already exists even when
// another writer creates it concurrently.
func WriteFileAtomic(path string, data []byte, opts ...WriteOption) error {
	cfg := &writeConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create temp file"), "dir", dir)
	}
	tmpName := tmpFile.Name()

	// Gone already after a rename.
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, "failed to write temp file")
	}

	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp file")
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to chmod temp file")
	}

	if cfg.noClobber {
		return link(tmpName, path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to rename temp file"), "path", path)
	}

	return nil
}

func link(tmpName, path string) error {
	err := os.Link(tmpName, path)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrExist):
		return zerr.With(zerr.Wrap(domain.ErrDestinationExists, "refusing to overwrite file"), "path", path)
	default:
		return zerr.With(zerr.Wrap(err, "failed to link temp file"), "path", path)
	}
}
