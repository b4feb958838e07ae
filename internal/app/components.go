package app

import "github.com/rigzba21/conda-vendor/internal/core/ports"

// Components contains all the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}
