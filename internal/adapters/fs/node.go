package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rigzba21/conda-vendor/internal/core/ports"
)

// NodeID is the unique identifier for the layout manager Graft node.
const NodeID graft.ID = "adapter.fs"

func init() {
	graft.Register(graft.Node[ports.LayoutManager]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LayoutManager, error) {
			return NewLayoutManager(), nil
		},
	})
}
