package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/rigzba21/conda-vendor/internal/core/ports"
	"go.trai.ch/zerr"
)

// Orchestrator turns an environment into a solve request and a fetch plan.
type Orchestrator struct {
	solver ports.Solver
}

// NewOrchestrator creates an Orchestrator backed by solver.
func NewOrchestrator(solver ports.Solver) *Orchestrator {
	return &Orchestrator{solver: solver}
}

// Request builds the solve request for spec.
func Request(spec *domain.EnvironmentSpec, backend string, platform domain.PlatformTag) domain.SolveRequest {
	return domain.SolveRequest{
		Backend:  backend,
		Channels: spec.SolveChannels(),
		Specs:    spec.Specs(),
		Platform: platform,
	}
}

// Solve invokes the solver once. An unsuccessful solve is returned as
// domain.ErrSolveFailed carrying the backend, platform and specs.
func (o *Orchestrator) Solve(
	ctx context.Context,
	spec *domain.EnvironmentSpec,
	backend string,
	platform domain.PlatformTag,
) (*domain.SolveResult, error) {
	req := Request(spec, backend, platform)

	result, err := o.solver.Solve(ctx, req)
	if err != nil {
		return nil, err
	}

	if !result.Success {
		msg := fmt.Sprintf("Failed to Solve for %v Using %s for %s", req.Specs, backend, platform)
		if result.Message != "" {
			msg += ": " + result.Message
		}
		failed := zerr.With(zerr.Wrap(domain.ErrSolveFailed, msg), "backend", backend)
		failed = zerr.With(failed, "platform", string(platform))
		return nil, zerr.With(failed, "specs", strings.Join(req.Specs, " "))
	}

	return result, nil
}

// ExtractFetchPlan completes the solve result with entries for cache-linked
// packages and returns the fetch entries in solver order.
func (o *Orchestrator) ExtractFetchPlan(
	ctx context.Context,
	backend string,
	platform domain.PlatformTag,
	result *domain.SolveResult,
) ([]domain.FetchEntry, error) {
	patched, err := o.solver.ReconstructFetchActions(ctx, backend, platform, result)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to reconstruct fetch actions")
	}
	return patched.Actions.Fetch, nil
}
