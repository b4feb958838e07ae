// Package fs implements the on-disk channel layout.
package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"go.trai.ch/zerr"
)

// LayoutManager implements ports.LayoutManager on the local filesystem.
type LayoutManager struct{}

// NewLayoutManager creates a new LayoutManager.
func NewLayoutManager() *LayoutManager {
	return &LayoutManager{}
}

// Create makes the environment directory and its platform and noarch
// subdirectories. Existing directories are never reused, and nothing created
// before a failure is removed.
func (m *LayoutManager) Create(
	root, environmentName string,
	platform domain.PlatformTag,
) (*domain.ChannelLayout, error) {
	if err := domain.ValidateEnvironmentName(environmentName); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create output root"), "path", root)
	}

	layout := domain.NewChannelLayout(root, environmentName, platform)
	for _, dir := range []string{layout.Root, layout.PlatformDir, layout.NoarchDir} {
		if err := mkdir(dir); err != nil {
			return nil, err
		}
	}

	return layout, nil
}

func mkdir(dir string) error {
	err := os.Mkdir(dir, domain.DirPerm)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrExist):
		return zerr.With(zerr.Wrap(domain.ErrDestinationExists, "directory already exists"), "path", dir)
	default:
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", dir)
	}
}

// WriteArtifact stores a verified payload under the entry's subdir.
func (m *LayoutManager) WriteArtifact(
	layout *domain.ChannelLayout,
	entry domain.FetchEntry,
	payload []byte,
) (*domain.VendoredArtifact, error) {
	name := filepath.Base(entry.Filename)
	if entry.Filename == "" || name != entry.Filename || name == "." || name == ".." {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidArtifactName, "artifact file name must be a plain name"), "filename", entry.Filename)
	}

	path := layout.PathFor(entry)
	if err := WriteFileAtomic(path, payload); err != nil {
		return nil, zerr.With(err, "filename", entry.Filename)
	}

	return &domain.VendoredArtifact{Entry: entry, Path: path}, nil
}
