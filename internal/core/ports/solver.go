package ports

import (
	"context"

	"github.com/rigzba21/conda-vendor/internal/core/domain"
)

// Solver runs an external dependency solver in dry-run mode.
//
//go:generate go run go.uber.org/mock/mockgen -source=solver.go -destination=mocks/mock_solver.go -package=mocks
type Solver interface {
	// Solve performs a single dry-run solve for the request.
	// An unsuccessful solve is reported through SolveResult.Success, not the error.
	Solve(ctx context.Context, req domain.SolveRequest) (*domain.SolveResult, error)

	// ReconstructFetchActions returns a copy of result whose FETCH list also
	// covers packages the solver only reported as LINK actions, typically
	// because they were already present in a local package cache.
	ReconstructFetchActions(
		ctx context.Context,
		backend string,
		platform domain.PlatformTag,
		result *domain.SolveResult,
	) (*domain.SolveResult, error)
}
