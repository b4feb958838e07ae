package ports

import "github.com/rigzba21/conda-vendor/internal/core/domain"

// LayoutManager owns the on-disk structure of a vendored channel.
//
//go:generate go run go.uber.org/mock/mockgen -source=layout.go -destination=mocks/mock_layout.go -package=mocks
type LayoutManager interface {
	// Create makes {root}/{environmentName} with its platform and noarch
	// subdirectories. It fails if any of them already exists.
	Create(root, environmentName string, platform domain.PlatformTag) (*domain.ChannelLayout, error)

	// WriteArtifact atomically stores a verified payload in the subdir chosen by the entry.
	WriteArtifact(layout *domain.ChannelLayout, entry domain.FetchEntry, payload []byte) (*domain.VendoredArtifact, error)
}
