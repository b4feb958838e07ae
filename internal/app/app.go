// Package app implements the application layer for conda-vendor.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rigzba21/conda-vendor/internal/adapters/detector"
	"github.com/rigzba21/conda-vendor/internal/adapters/download"
	"github.com/rigzba21/conda-vendor/internal/adapters/indexer"
	"github.com/rigzba21/conda-vendor/internal/adapters/solver"
	"github.com/rigzba21/conda-vendor/internal/adapters/telemetry"
	"github.com/rigzba21/conda-vendor/internal/adapters/tui"
	"github.com/rigzba21/conda-vendor/internal/build"
	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/rigzba21/conda-vendor/internal/core/ports"
	"github.com/rigzba21/conda-vendor/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// App represents the main application logic.
type App struct {
	loader      ports.EnvironmentLoader
	solver      ports.Solver
	layout      ports.LayoutManager
	store       ports.ManifestStore
	renderer    ports.Renderer
	logger      ports.Logger
	downloadOps []download.Option
	indexerOps  []indexer.Option
	teaOptions  []tea.ProgramOption
	disableTick bool
}

// New creates a new App instance.
func New(
	loader ports.EnvironmentLoader,
	solv ports.Solver,
	layout ports.LayoutManager,
	store ports.ManifestStore,
	renderer ports.Renderer,
	log ports.Logger,
) *App {
	return &App{
		loader:   loader,
		solver:   solv,
		layout:   layout,
		store:    store,
		renderer: renderer,
		logger:   log,
	}
}

// WithDownloadOptions appends options applied to the downloader of every run.
// This is primarily used for testing to swap the transport.
func (a *App) WithDownloadOptions(opts ...download.Option) *App {
	a.downloadOps = append(a.downloadOps, opts...)
	return a
}

// WithIndexerOptions appends options applied to the indexer of every run.
func (a *App) WithIndexerOptions(opts ...indexer.Option) *App {
	a.indexerOps = append(a.indexerOps, opts...)
	return a
}

// WithTeaOptions appends options for the interactive progress display.
// This is primarily used for testing to run it headless.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithDisableTick stops the interactive display from refreshing on a timer.
func (a *App) WithDisableTick() *App {
	a.disableTick = true
	return a
}

// SetJSONLogs switches the logger to JSON output when it supports it.
func (a *App) SetJSONLogs(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// VendorOptions configures the Vendor method.
type VendorOptions struct {
	EnvironmentFile string
	Solver          string
	Platform        string
	OutputDir       string
	Jobs            int
	MaxAttempts     int
	RetryDelay      time.Duration
	RateLimit       float64
	SkipIndex       bool
	IndexCommand    string
	ManifestFormat  string
	OutputMode      string
}

// DefaultVendorOptions returns the options used when no flags are given.
func DefaultVendorOptions() VendorOptions {
	return VendorOptions{
		Solver:         "conda",
		OutputDir:      ".",
		Jobs:           1,
		MaxAttempts:    download.DefaultMaxAttempts,
		RetryDelay:     download.DefaultBaseDelay,
		RateLimit:      float64(download.DefaultRateLimit),
		IndexCommand:   indexer.DefaultCommand,
		ManifestFormat: string(domain.ManifestYAML),
		OutputMode:     "auto",
	}
}

// Vendor builds a local channel from the environment file.
func (a *App) Vendor(ctx context.Context, opts VendorOptions) (*pipeline.VendorResult, error) {
	if err := solver.ValidateBackend(opts.Solver); err != nil {
		return nil, err
	}

	format, err := domain.ParseManifestFormat(opts.ManifestFormat)
	if err != nil {
		return nil, err
	}

	var idx ports.Indexer
	if !opts.SkipIndex {
		idx = indexer.New(opts.IndexCommand, a.logger, a.indexerOps...)
	}

	var result *pipeline.VendorResult
	err = a.withProgress(ctx, opts.OutputMode, func(ctx context.Context, tracer ports.Tracer) error {
		p := pipeline.New(a.loader, a.solver, a.newDownloader(opts), a.layout, a.store, idx, tracer, a.logger)

		var runErr error
		result, runErr = p.Vendor(ctx, pipeline.VendorRequest{
			EnvironmentFile: opts.EnvironmentFile,
			Solver:          opts.Solver,
			Platform:        opts.Platform,
			OutputRoot:      opts.OutputDir,
			Jobs:            opts.Jobs,
			ManifestFormat:  format,
			SkipIndex:       opts.SkipIndex,
		})
		return runErr
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to vendor environment")
	}

	a.logger.Info(fmt.Sprintf("Wrote %s (sha256 %s)", result.ManifestPath, result.ManifestSHA256))
	return result, nil
}

// ManifestOptions configures the Manifest method.
type ManifestOptions struct {
	EnvironmentFile string
	Solver          string
	Platform        string
	Output          string
	ManifestFormat  string
	OutputMode      string
}

// Manifest solves the environment and writes its manifest without downloading.
// An empty Output writes the format's default file name to the working directory.
func (a *App) Manifest(ctx context.Context, opts ManifestOptions) (*pipeline.PlanResult, error) {
	if err := solver.ValidateBackend(opts.Solver); err != nil {
		return nil, err
	}

	format, err := domain.ParseManifestFormat(opts.ManifestFormat)
	if err != nil {
		return nil, err
	}

	output := opts.Output
	if output == "" {
		output = format.FileName()
	}

	var result *pipeline.PlanResult
	err = a.withProgress(ctx, opts.OutputMode, func(ctx context.Context, tracer ports.Tracer) error {
		p := pipeline.New(a.loader, a.solver, nil, a.layout, a.store, nil, tracer, a.logger)

		var runErr error
		result, runErr = p.Plan(ctx, pipeline.PlanRequest{
			EnvironmentFile: opts.EnvironmentFile,
			Solver:          opts.Solver,
			Platform:        opts.Platform,
			OutputPath:      output,
			ManifestFormat:  format,
		})
		return runErr
	})
	if err != nil {
		return nil, zerr.Wrap(err, "failed to write manifest")
	}

	a.logger.Info(fmt.Sprintf("Wrote %s (sha256 %s)", result.ManifestPath, result.ManifestSHA256))
	return result, nil
}

// withProgress runs fn while a renderer, chosen from mode and the terminal,
// displays its spans. The renderer is stopped once fn returns.
func (a *App) withProgress(ctx context.Context, mode string, fn func(context.Context, ports.Tracer) error) error {
	renderer := a.rendererFor(ctx, mode)

	tracer := telemetry.Setup(renderer)
	defer func() {
		_ = tracer.Shutdown(context.WithoutCancel(ctx))
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := renderer.Start(gctx); err != nil {
			return err
		}
		return renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = renderer.Stop()
		}()
		return fn(gctx, tracer)
	})

	return g.Wait()
}

// rendererFor returns the interactive display when mode or detection asks
// for it, and the injected renderer otherwise.
func (a *App) rendererFor(ctx context.Context, mode string) ports.Renderer {
	if detector.ResolveMode(detector.DetectEnvironment(), mode) != detector.ModeTUI {
		return a.renderer
	}

	model := tui.NewModel(os.Stderr)
	if a.disableTick {
		model = model.WithDisableTick()
	}
	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(os.Stderr)}, a.teaOptions...)
	return tui.NewRenderer(&model, opts...)
}

func (a *App) newDownloader(opts VendorOptions) *download.Downloader {
	policy := download.DefaultRetryPolicy()
	if opts.MaxAttempts > 0 {
		policy.MaxAttempts = opts.MaxAttempts
	}
	if opts.RetryDelay > 0 {
		policy.BaseDelay = opts.RetryDelay
	}

	limit := rate.Limit(opts.RateLimit)
	if opts.RateLimit <= 0 {
		limit = rate.Inf
	}

	dlOpts := []download.Option{
		download.WithLogger(a.logger),
		download.WithRetryPolicy(policy),
		download.WithRateLimit(limit, download.DefaultBurst),
		download.WithUserAgent(build.UserAgent()),
	}
	return download.New(append(dlOpts, a.downloadOps...)...)
}
