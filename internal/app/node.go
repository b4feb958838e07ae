package app

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/rigzba21/conda-vendor/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"github.com/rigzba21/conda-vendor/internal/adapters/fs"       //nolint:depguard // Wired in app layer
	"github.com/rigzba21/conda-vendor/internal/adapters/linear"   //nolint:depguard // Wired in app layer
	"github.com/rigzba21/conda-vendor/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"github.com/rigzba21/conda-vendor/internal/adapters/manifest" //nolint:depguard // Wired in app layer
	"github.com/rigzba21/conda-vendor/internal/adapters/solver"   //nolint:depguard // Wired in app layer
	"github.com/rigzba21/conda-vendor/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			solver.NodeID,
			fs.NodeID,
			manifest.NodeID,
			linear.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.EnvironmentLoader](ctx)
	if err != nil {
		return nil, err
	}

	solv, err := graft.Dep[ports.Solver](ctx)
	if err != nil {
		return nil, err
	}

	layout, err := graft.Dep[ports.LayoutManager](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, solv, layout, store, renderer, log), nil
}
