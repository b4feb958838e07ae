package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/rigzba21/conda-vendor/internal/core/ports/mocks"
	"github.com/rigzba21/conda-vendor/internal/engine/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestRequest(t *testing.T) {
	spec := &domain.EnvironmentSpec{
		Name:     "minimal_env",
		Channels: []string{"conda-forge", "nodefaults", "bioconda"},
		Dependencies: []domain.Dependency{
			{Name: "python", Version: "3.9.5"},
			{Name: "numpy", Version: ">=1.20"},
			{Name: "six"},
		},
	}

	req := pipeline.Request(spec, "micromamba", "osx-arm64")

	assert.Equal(t, domain.SolveRequest{
		Backend:  "micromamba",
		Channels: []string{"conda-forge", "bioconda"},
		Specs:    []string{"python==3.9.5", "numpy>=1.20", "six"},
		Platform: "osx-arm64",
	}, req)
}

func TestOrchestrator_SolveError(t *testing.T) {
	ctrl := gomock.NewController(t)
	solver := mocks.NewMockSolver(ctrl)
	solver.EXPECT().Solve(gomock.Any(), gomock.Any()).
		Return(nil, zerr.Wrap(domain.ErrSolverUnavailable, "conda not found"))

	_, err := pipeline.NewOrchestrator(solver).Solve(context.Background(), minimalEnv(), "conda", "linux-64")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSolverUnavailable))
	assert.False(t, errors.Is(err, domain.ErrSolveFailed))
}

func TestOrchestrator_ExtractFetchPlan(t *testing.T) {
	ctrl := gomock.NewController(t)
	solver := mocks.NewMockSolver(ctrl)

	result := &domain.SolveResult{
		Success: true,
		Actions: domain.SolveActions{
			Fetch: fetchPlan()[:1],
			Link:  []domain.LinkEntry{{Name: "python"}, {Name: "six"}},
		},
	}
	patched := &domain.SolveResult{Success: true, Actions: domain.SolveActions{Fetch: fetchPlan()}}
	solver.EXPECT().ReconstructFetchActions(gomock.Any(), "conda", domain.PlatformTag("linux-64"), result).
		Return(patched, nil)

	entries, err := pipeline.NewOrchestrator(solver).ExtractFetchPlan(context.Background(), "conda", "linux-64", result)
	require.NoError(t, err)
	assert.Equal(t, fetchPlan(), entries)
}

func TestOrchestrator_ExtractFetchPlan_MissingRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	solver := mocks.NewMockSolver(ctrl)
	solver.EXPECT().ReconstructFetchActions(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, zerr.Wrap(domain.ErrMissingPackageRecord, "no repodata_record.json"))

	_, err := pipeline.NewOrchestrator(solver).ExtractFetchPlan(context.Background(), "conda", "linux-64", &domain.SolveResult{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingPackageRecord))
}
