// Package manifest persists vendored channel manifests and provenance records.
package manifest

import (
	"bytes"
	_ "crypto/sha256" // registers sha256 for go-digest
	"encoding/json"

	"github.com/gowebpki/jcs"
	"github.com/opencontainers/go-digest"
	fsadapter "github.com/rigzba21/conda-vendor/internal/adapters/fs"
	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Store implements ports.ManifestStore on the local filesystem.
// It never overwrites an existing file.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// WriteManifest encodes the manifest, or the resources list for the
// resources format, and writes it to path. It returns the sha256 of the
// document's JCS canonical JSON form.
func (s *Store) WriteManifest(
	path string,
	format domain.ManifestFormat,
	manifest *domain.Manifest,
	resources []domain.Resource,
) (string, error) {
	var (
		node *yaml.Node
		err  error
	)
	if format == domain.ManifestResources {
		node, err = resourcesNode(resources)
	} else {
		node, err = manifestNode(manifest)
	}
	if err != nil {
		return "", err
	}

	compact, err := encodeJSON(node)
	if err != nil {
		return "", err
	}

	var data []byte
	switch format {
	case domain.ManifestJSON:
		var indented bytes.Buffer
		if err := json.Indent(&indented, compact, "", "  "); err != nil {
			return "", zerr.Wrap(err, "failed to indent manifest")
		}
		indented.WriteByte('\n')
		data = indented.Bytes()
	case domain.ManifestYAML, domain.ManifestResources:
		data, err = encodeYAML(node)
		if err != nil {
			return "", err
		}
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownManifestFormat, "cannot encode manifest"), "format", string(format))
	}

	sum, err := CanonicalDigest(compact)
	if err != nil {
		return "", err
	}

	if err := fsadapter.WriteFileAtomic(path, data, fsadapter.NoClobber()); err != nil {
		return "", zerr.With(err, "stage", "manifest")
	}

	return sum, nil
}

// WriteProvenance writes the provenance record as YAML.
func (s *Store) WriteProvenance(path string, provenance *domain.Provenance) error {
	data, err := yaml.Marshal(provenance)
	if err != nil {
		return zerr.Wrap(err, "failed to encode provenance")
	}

	if err := fsadapter.WriteFileAtomic(path, data, fsadapter.NoClobber()); err != nil {
		return zerr.With(err, "stage", "provenance")
	}
	return nil
}

// CanonicalDigest returns the hex sha256 of the JCS (RFC 8785) form of a JSON document.
func CanonicalDigest(jsonDoc []byte) (string, error) {
	canonical, err := jcs.Transform(jsonDoc)
	if err != nil {
		return "", zerr.Wrap(err, "failed to canonicalize manifest")
	}
	return digest.SHA256.FromBytes(canonical).Encoded(), nil
}
