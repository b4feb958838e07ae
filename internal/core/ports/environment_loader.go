// Package ports defines the core interfaces for the application.
package ports

import "github.com/rigzba21/conda-vendor/internal/core/domain"

// EnvironmentLoader defines the interface for reading conda environment files.
//
//go:generate go run go.uber.org/mock/mockgen -source=environment_loader.go -destination=mocks/mock_environment_loader.go -package=mocks
type EnvironmentLoader interface {
	// Load parses and validates the environment file at path.
	Load(path string) (*domain.EnvironmentSpec, error)
}
