// Package indexer rebuilds the repodata of a vendored channel with an external tool.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rigzba21/conda-vendor/internal/adapters/process"
	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/rigzba21/conda-vendor/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultCommand is the indexer used when none is configured.
const DefaultCommand = "conda index"

// Indexer implements ports.Indexer by running a command with the channel root
// appended as its last argument.
type Indexer struct {
	command []string
	runner  process.CommandRunner
	logger  ports.Logger
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithRunner replaces the command runner.
func WithRunner(r process.CommandRunner) Option {
	return func(i *Indexer) { i.runner = r }
}

// New creates an Indexer for a command line such as "conda index".
// An empty command selects DefaultCommand.
func New(command string, logger ports.Logger, opts ...Option) *Indexer {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = strings.Fields(DefaultCommand)
	}
	i := &Indexer{
		command: fields,
		runner:  process.ExecRunner{},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Index runs the indexer over channelRoot.
func (i *Indexer) Index(ctx context.Context, channelRoot string) error {
	args := append(append([]string(nil), i.command[1:]...), channelRoot)

	i.logger.Info(fmt.Sprintf("indexing %s", channelRoot))
	if _, err := i.runner.Run(ctx, nil, i.command[0], args...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		indexErr := zerr.Wrap(errors.Join(domain.ErrIndexFailed, err), "indexer exited with an error")
		return zerr.With(indexErr, "channel_root", channelRoot)
	}
	return nil
}
