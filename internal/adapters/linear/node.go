package linear

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rigzba21/conda-vendor/internal/core/ports"
)

// NodeID is the unique identifier for the progress renderer Graft node.
const NodeID graft.ID = "adapter.linear"

func init() {
	graft.Register(graft.Node[ports.Renderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Renderer, error) {
			return NewRenderer(nil), nil
		},
	})
}
