package ports

import "context"

// Downloader retrieves artifact bytes from a URL.
//
//go:generate go run go.uber.org/mock/mockgen -source=downloader.go -destination=mocks/mock_downloader.go -package=mocks
type Downloader interface {
	// Fetch returns the full response body of url.
	// Connection failures are retried according to the downloader's policy.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
