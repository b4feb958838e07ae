// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/rigzba21/conda-vendor/internal/adapters/config"
	_ "github.com/rigzba21/conda-vendor/internal/adapters/fs"
	_ "github.com/rigzba21/conda-vendor/internal/adapters/linear"
	_ "github.com/rigzba21/conda-vendor/internal/adapters/logger"
	_ "github.com/rigzba21/conda-vendor/internal/adapters/manifest"
	_ "github.com/rigzba21/conda-vendor/internal/adapters/solver"
	// Register app nodes.
	_ "github.com/rigzba21/conda-vendor/internal/app"
)
