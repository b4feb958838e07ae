package pipeline

import (
	"context"

	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/rigzba21/conda-vendor/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// downloadAll fetches, verifies and stores every entry. With jobs <= 1 the
// entries are processed one at a time in plan order. Otherwise up to jobs
// entries are in flight and the first failure cancels the rest.
func (p *Pipeline) downloadAll(
	ctx context.Context,
	layout *domain.ChannelLayout,
	entries []domain.FetchEntry,
	jobs int,
) ([]domain.VendoredArtifact, error) {
	artifacts := make([]domain.VendoredArtifact, len(entries))

	if jobs <= 1 {
		for i, entry := range entries {
			artifact, err := p.vendorArtifact(ctx, layout, entry)
			if err != nil {
				return nil, err
			}
			artifacts[i] = *artifact
		}
		return artifacts, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, entry := range entries {
		g.Go(func() error {
			artifact, err := p.vendorArtifact(ctx, layout, entry)
			if err != nil {
				return err
			}
			artifacts[i] = *artifact
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// vendorArtifact downloads one entry and writes it only after its digest matched.
func (p *Pipeline) vendorArtifact(
	ctx context.Context,
	layout *domain.ChannelLayout,
	entry domain.FetchEntry,
) (*domain.VendoredArtifact, error) {
	ctx, span := p.tracer.Start(ctx, entry.Filename,
		ports.WithAttribute("url", entry.URL),
		ports.WithAttribute("subdir", entry.Subdir),
	)
	defer span.End()

	artifact, err := p.fetchVerifyWrite(ctx, layout, entry)
	if err != nil {
		span.RecordError(err)
		err = zerr.With(err, "filename", entry.Filename)
		return nil, zerr.With(err, "url", entry.URL)
	}

	span.SetAttribute("path", artifact.Path)
	return artifact, nil
}

func (p *Pipeline) fetchVerifyWrite(
	ctx context.Context,
	layout *domain.ChannelLayout,
	entry domain.FetchEntry,
) (*domain.VendoredArtifact, error) {
	payload, err := p.downloader.Fetch(ctx, entry.URL)
	if err != nil {
		return nil, err
	}

	verified, err := domain.VerifyDigest(payload, entry.SHA256)
	if err != nil {
		return nil, err
	}

	return p.layout.WriteArtifact(layout, entry, verified)
}
