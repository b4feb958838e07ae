package ports

import "context"

// Indexer rebuilds the channel index of a vendored channel.
//
//go:generate go run go.uber.org/mock/mockgen -source=indexer.go -destination=mocks/mock_indexer.go -package=mocks
type Indexer interface {
	// Index generates repodata for every subdir under channelRoot.
	Index(ctx context.Context, channelRoot string) error
}
