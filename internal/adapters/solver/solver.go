// Package solver drives conda, mamba and micromamba dry-run solves.
package solver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rigzba21/conda-vendor/internal/adapters/process"
	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/rigzba21/conda-vendor/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Backends lists the supported solver executables.
var Backends = []string{"conda", "mamba", "micromamba"}

// Solver implements ports.Solver by shelling out to a conda-compatible backend.
type Solver struct {
	runner process.CommandRunner
	logger ports.Logger

	group    singleflight.Group
	mu       sync.Mutex
	pkgsDirs map[string][]string
	checked  map[string]bool
}

// Option configures a Solver.
type Option func(*Solver)

// WithRunner replaces the command runner.
func WithRunner(r process.CommandRunner) Option {
	return func(s *Solver) { s.runner = r }
}

// New creates a Solver.
func New(logger ports.Logger, opts ...Option) *Solver {
	s := &Solver{
		runner:   process.ExecRunner{},
		logger:   logger,
		pkgsDirs: make(map[string][]string),
		checked:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateBackend returns domain.ErrUnknownSolver unless backend is supported.
func ValidateBackend(backend string) error {
	for _, b := range Backends {
		if backend == b {
			return nil
		}
	}
	return zerr.With(zerr.Wrap(domain.ErrUnknownSolver, "expected one of "+strings.Join(Backends, ", ")), "backend", backend)
}

// solveOutput is the union of the success and error documents a backend prints with --json.
type solveOutput struct {
	Success       bool                `json:"success"`
	Message       string              `json:"message"`
	Error         string              `json:"error"`
	ExceptionName string              `json:"exception_name"`
	Actions       domain.SolveActions `json:"actions"`
}

// Solve runs a dry-run create into a throwaway prefix and decodes the result.
// A solve the backend rejects is returned as an unsuccessful result, not an error.
func (s *Solver) Solve(ctx context.Context, req domain.SolveRequest) (*domain.SolveResult, error) {
	if err := ValidateBackend(req.Backend); err != nil {
		return nil, err
	}

	if err := s.checkVersion(ctx, req.Backend); err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "conda-vendor-solve-")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create solve prefix")
	}
	defer func() {
		_ = os.RemoveAll(tmpDir)
	}()

	args := []string{
		"create",
		"--prefix", filepath.Join(tmpDir, "prefix"),
		"--dry-run",
		"--json",
		"--override-channels",
	}
	for _, ch := range req.Channels {
		args = append(args, "--channel", ch)
	}
	if req.Backend == "micromamba" {
		args = append(args, "--yes")
	}
	args = append(args, req.Specs...)

	stdout, runErr := s.runner.Run(ctx, subdirEnv(req.Platform), req.Backend, args...)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	var out solveOutput
	if err := json.Unmarshal(stdout, &out); err != nil {
		if runErr != nil {
			return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrSolverUnavailable, runErr), "solver did not produce a result"), "backend", req.Backend)
		}
		return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrSolverUnavailable, err), "failed to decode solver output"), "backend", req.Backend)
	}

	result := &domain.SolveResult{
		Success: out.Success && runErr == nil,
		Message: firstNonEmpty(out.Error, out.Message, out.ExceptionName),
		Actions: out.Actions,
	}
	if !result.Success && result.Message == "" && runErr != nil {
		result.Message = runErr.Error()
	}

	return result, nil
}

// ReconstructFetchActions adds a fetch entry for every linked package the
// backend chose to link from its package cache instead of downloading.
func (s *Solver) ReconstructFetchActions(
	ctx context.Context,
	backend string,
	platform domain.PlatformTag,
	result *domain.SolveResult,
) (*domain.SolveResult, error) {
	fetched := make(map[string]struct{}, len(result.Actions.Fetch))
	for _, f := range result.Actions.Fetch {
		fetched[f.Name] = struct{}{}
	}

	patched := *result
	patched.Actions.Fetch = append([]domain.FetchEntry(nil), result.Actions.Fetch...)

	var pkgsDirs []string
	for _, link := range result.Actions.Link {
		if _, ok := fetched[link.Name]; ok {
			continue
		}
		fetched[link.Name] = struct{}{}

		if entry, ok := fetchFromLink(link); ok {
			patched.Actions.Fetch = append(patched.Actions.Fetch, entry)
			continue
		}

		if pkgsDirs == nil {
			dirs, err := s.packageCacheDirs(ctx, backend, platform)
			if err != nil {
				return nil, err
			}
			pkgsDirs = dirs
		}

		entry, err := readPackageRecord(pkgsDirs, link.Dist())
		if err != nil {
			return nil, err
		}
		patched.Actions.Fetch = append(patched.Actions.Fetch, entry)
	}

	return &patched, nil
}

// fetchFromLink converts a link entry that already carries full package metadata.
func fetchFromLink(link domain.LinkEntry) (domain.FetchEntry, bool) {
	if link.URL == "" || link.SHA256 == "" || link.Filename == "" {
		return domain.FetchEntry{}, false
	}
	return domain.FetchEntry{
		Filename: link.Filename,
		URL:      link.URL,
		SHA256:   link.SHA256,
		Subdir:   firstNonEmpty(link.Subdir, link.Platform),
		Name:     link.Name,
		Version:  link.Version,
		Build:    link.BuildString,
		Channel:  link.Channel,
	}, true
}

func readPackageRecord(pkgsDirs []string, dist string) (domain.FetchEntry, error) {
	for _, dir := range pkgsDirs {
		path := filepath.Join(dir, dist, "info", "repodata_record.json")
		//nolint:gosec // path is built from the solver's own package cache
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		var entry domain.FetchEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return domain.FetchEntry{}, zerr.With(zerr.Wrap(err, "failed to decode package record"), "path", path)
		}
		return entry, nil
	}

	missing := zerr.With(zerr.Wrap(domain.ErrMissingPackageRecord, "distribution not found in package cache"), "dist", dist)
	return domain.FetchEntry{}, zerr.With(missing, "pkgs_dirs", strings.Join(pkgsDirs, string(os.PathListSeparator)))
}

// infoOutput covers both conda's and micromamba's `info --json` documents.
type infoOutput struct {
	PkgsDirs     []string `json:"pkgs_dirs"`
	PackageCache []string `json:"package cache"`
}

// packageCacheDirs asks the backend for its package cache directories once per backend and platform.
func (s *Solver) packageCacheDirs(ctx context.Context, backend string, platform domain.PlatformTag) ([]string, error) {
	key := backend + "/" + string(platform)

	s.mu.Lock()
	cached, ok := s.pkgsDirs[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		stdout, runErr := s.runner.Run(ctx, subdirEnv(platform), backend, "info", "--json")
		if runErr != nil {
			return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrSolverUnavailable, runErr), "failed to query package cache"), "backend", backend)
		}

		var info infoOutput
		if err := json.Unmarshal(stdout, &info); err != nil {
			return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrSolverUnavailable, err), "failed to decode solver info"), "backend", backend)
		}

		dirs := info.PkgsDirs
		if len(dirs) == 0 {
			dirs = info.PackageCache
		}

		s.mu.Lock()
		s.pkgsDirs[key] = dirs
		s.mu.Unlock()
		return dirs, nil
	})
	if err != nil {
		return nil, err
	}

	dirs, _ := v.([]string)
	return dirs, nil
}

func subdirEnv(platform domain.PlatformTag) []string {
	return []string{fmt.Sprintf("CONDA_SUBDIR=%s", platform)}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
