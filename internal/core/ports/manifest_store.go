package ports

import "github.com/rigzba21/conda-vendor/internal/core/domain"

// ManifestStore persists manifests and provenance records.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// WriteManifest encodes the manifest in the given format at path and
	// returns the sha256 of its canonical JSON form. The resources format
	// encodes resources instead of the grouped manifest.
	WriteManifest(
		path string,
		format domain.ManifestFormat,
		manifest *domain.Manifest,
		resources []domain.Resource,
	) (string, error)

	// WriteProvenance records how the vendored channel was produced.
	WriteProvenance(path string, provenance *domain.Provenance) error
}
