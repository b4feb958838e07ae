// Package pipeline runs the vendoring stages: resolve, plan, download,
// manifest and index.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/rigzba21/conda-vendor/internal/core/ports"
	"go.trai.ch/zerr"
)

// Stage names, also used as span names.
const (
	StageLoad      = "load"
	StageLayout    = "layout"
	StageSolve     = "solve"
	StagePlan      = "fetch-plan"
	StageDownload  = "download"
	StageManifest  = "manifest"
	StageIndex     = "index"
	rootSpanVendor = "vendor"
	rootSpanPlan   = "manifest-plan"
)

// VendorRequest configures one vendoring run.
type VendorRequest struct {
	EnvironmentFile string
	Solver          string
	Platform        string
	OutputRoot      string
	Jobs            int
	ManifestFormat  domain.ManifestFormat
	SkipIndex       bool
}

// VendorResult describes a completed vendoring run.
type VendorResult struct {
	Environment    string
	Platform       domain.PlatformTag
	Layout         *domain.ChannelLayout
	Artifacts      []domain.VendoredArtifact
	ManifestPath   string
	ManifestSHA256 string
	Fingerprint    string
}

// PlanRequest configures a manifest-only run.
type PlanRequest struct {
	EnvironmentFile string
	Solver          string
	Platform        string
	OutputPath      string
	ManifestFormat  domain.ManifestFormat
}

// PlanResult describes a manifest written without downloading.
type PlanResult struct {
	Entries        []domain.FetchEntry
	ManifestPath   string
	ManifestSHA256 string
}

// Pipeline wires the ports needed to vendor an environment.
type Pipeline struct {
	loader       ports.EnvironmentLoader
	orchestrator *Orchestrator
	downloader   ports.Downloader
	layout       ports.LayoutManager
	store        ports.ManifestStore
	indexer      ports.Indexer
	tracer       ports.Tracer
	logger       ports.Logger
}

// New creates a new Pipeline. downloader and indexer may be nil for
// manifest-only runs.
func New(
	loader ports.EnvironmentLoader,
	solver ports.Solver,
	downloader ports.Downloader,
	layout ports.LayoutManager,
	store ports.ManifestStore,
	indexer ports.Indexer,
	tracer ports.Tracer,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		loader:       loader,
		orchestrator: NewOrchestrator(solver),
		downloader:   downloader,
		layout:       layout,
		store:        store,
		indexer:      indexer,
		tracer:       tracer,
		logger:       logger,
	}
}

// Vendor resolves the environment, downloads and verifies every artifact
// into a new channel directory, writes the manifest and indexes the channel.
// The first failing stage aborts the run.
func (p *Pipeline) Vendor(ctx context.Context, req VendorRequest) (*VendorResult, error) {
	ctx, span := p.tracer.Start(ctx, rootSpanVendor)
	defer span.End()

	result, err := p.vendor(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result, nil
}

//nolint:funlen // stages are sequential and read best in one place
func (p *Pipeline) vendor(ctx context.Context, req VendorRequest) (*VendorResult, error) {
	var (
		spec     *domain.EnvironmentSpec
		platform domain.PlatformTag
		layout   *domain.ChannelLayout
		solved   *domain.SolveResult
		entries  []domain.FetchEntry
		vendored []domain.VendoredArtifact
		sum      string
	)

	err := p.stage(ctx, StageLoad, func(context.Context, ports.Span) error {
		var err error
		spec, platform, err = p.load(req.EnvironmentFile, req.Platform)
		return err
	})
	if err != nil {
		return nil, err
	}

	solveReq := Request(spec, req.Solver, platform)

	err = p.stage(ctx, StageLayout, func(_ context.Context, span ports.Span) error {
		var err error
		layout, err = p.layout.Create(req.OutputRoot, spec.Name, platform)
		if err == nil {
			span.SetAttribute("root", layout.Root)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageSolve, func(ctx context.Context, _ ports.Span) error {
		p.logger.Info(fmt.Sprintf("Using %s to solve %v for %s", req.Solver, solveReq.Specs, platform))
		var err error
		solved, err = p.orchestrator.Solve(ctx, spec, req.Solver, platform)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StagePlan, func(ctx context.Context, span ports.Span) error {
		var err error
		entries, err = p.orchestrator.ExtractFetchPlan(ctx, req.Solver, platform, solved)
		span.SetAttribute("artifacts", len(entries))
		return err
	})
	if err != nil {
		return nil, err
	}
	p.emitPlan(ctx, entries)

	err = p.stage(ctx, StageDownload, func(ctx context.Context, _ ports.Span) error {
		var err error
		vendored, err = p.downloadAll(ctx, layout, entries, req.Jobs)
		return err
	})
	if err != nil {
		return nil, err
	}

	manifestPath := layout.ManifestPath(req.ManifestFormat)
	err = p.stage(ctx, StageManifest, func(_ context.Context, span ports.Span) error {
		manifest := domain.BuildManifest(entries, domain.WithChannels(spec.Channels, platform))
		var err error
		sum, err = p.store.WriteManifest(manifestPath, req.ManifestFormat, manifest, domain.BuildResources(entries))
		if err != nil {
			return err
		}
		span.SetAttribute("sha256", sum)

		return p.store.WriteProvenance(layout.ProvenancePath(), &domain.Provenance{
			Environment:    spec.Name,
			Channels:       solveReq.Channels,
			Specs:          solveReq.Specs,
			Platform:       platform,
			Solver:         req.Solver,
			Fingerprint:    solveReq.Fingerprint(),
			Artifacts:      len(vendored),
			ManifestSHA256: sum,
		})
	})
	if err != nil {
		return nil, err
	}

	if req.SkipIndex {
		p.logger.Info("skipping channel index")
	} else {
		err = p.stage(ctx, StageIndex, func(ctx context.Context, _ ports.Span) error {
			return p.indexer.Index(ctx, layout.Root)
		})
		if err != nil {
			return nil, err
		}
	}

	p.logger.Info(fmt.Sprintf("Vendored %d artifact(s) into %s", len(vendored), layout.Root))

	return &VendorResult{
		Environment:    spec.Name,
		Platform:       platform,
		Layout:         layout,
		Artifacts:      vendored,
		ManifestPath:   manifestPath,
		ManifestSHA256: sum,
		Fingerprint:    solveReq.Fingerprint(),
	}, nil
}

// Plan resolves the environment and writes its manifest to req.OutputPath
// without downloading anything.
func (p *Pipeline) Plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	ctx, span := p.tracer.Start(ctx, rootSpanPlan)
	defer span.End()

	result, err := p.plan(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return result, nil
}

func (p *Pipeline) plan(ctx context.Context, req PlanRequest) (*PlanResult, error) {
	var (
		spec     *domain.EnvironmentSpec
		platform domain.PlatformTag
		solved   *domain.SolveResult
		entries  []domain.FetchEntry
		sum      string
	)

	err := p.stage(ctx, StageLoad, func(context.Context, ports.Span) error {
		var err error
		spec, platform, err = p.load(req.EnvironmentFile, req.Platform)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StageSolve, func(ctx context.Context, _ ports.Span) error {
		var err error
		solved, err = p.orchestrator.Solve(ctx, spec, req.Solver, platform)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(ctx, StagePlan, func(ctx context.Context, _ ports.Span) error {
		var err error
		entries, err = p.orchestrator.ExtractFetchPlan(ctx, req.Solver, platform, solved)
		return err
	})
	if err != nil {
		return nil, err
	}
	p.emitPlan(ctx, entries)

	err = p.stage(ctx, StageManifest, func(context.Context, ports.Span) error {
		manifest := domain.BuildManifest(entries, domain.WithChannels(spec.Channels, platform))
		var err error
		sum, err = p.store.WriteManifest(req.OutputPath, req.ManifestFormat, manifest, domain.BuildResources(entries))
		return err
	})
	if err != nil {
		return nil, err
	}

	return &PlanResult{Entries: entries, ManifestPath: req.OutputPath, ManifestSHA256: sum}, nil
}

func (p *Pipeline) load(path, platformOverride string) (*domain.EnvironmentSpec, domain.PlatformTag, error) {
	spec, err := p.loader.Load(path)
	if err != nil {
		return nil, "", err
	}

	platform, err := domain.HostPlatform(platformOverride)
	if err != nil {
		return nil, "", err
	}

	return spec, platform, nil
}

// emitPlan logs every fetch entry and announces the plan to the tracer.
func (p *Pipeline) emitPlan(ctx context.Context, entries []domain.FetchEntry) {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		p.logger.Info(fmt.Sprintf("FETCH %s subdir=%s url=%s sha256=%s timestamp=%d",
			entry.Filename, entry.Subdir, entry.URL, entry.SHA256, entry.Timestamp))
		names = append(names, entry.Filename)
	}
	p.tracer.EmitPlan(ctx, names)
}

// stage runs fn inside a span named after the stage and tags failures with it.
func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context, ports.Span) error) error {
	ctx, span := p.tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		return zerr.With(err, "stage", name)
	}
	return nil
}
