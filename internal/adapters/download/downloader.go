// Package download fetches package artifacts over HTTP(S) and file:// URLs.
package download

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rigzba21/conda-vendor/internal/core/domain"
	"github.com/rigzba21/conda-vendor/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/time/rate"
	"oras.land/oras-go/v2/registry/remote/retry"
)

const (
	defaultUserAgent = "conda-vendor"

	// DefaultRateLimit bounds the artifact requests issued per second.
	DefaultRateLimit rate.Limit = 20

	// DefaultBurst is the number of requests allowed above the rate limit at once.
	DefaultBurst = 4
)

// Downloader implements ports.Downloader.
type Downloader struct {
	client    *http.Client
	logger    ports.Logger
	userAgent string
}

type options struct {
	base      http.RoundTripper
	logger    ports.Logger
	policy    *RetryPolicy
	limit     rate.Limit
	burst     int
	userAgent string
}

// Option configures a Downloader.
type Option func(*options)

// WithTransport replaces the base round tripper that retries and rate limiting wrap.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.base = rt }
}

// WithLogger reports retries to logger.
func WithLogger(logger ports.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRetryPolicy replaces DefaultRetryPolicy.
func WithRetryPolicy(p *RetryPolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithRateLimit bounds outgoing requests. rate.Inf disables the limit.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(o *options) {
		o.limit = limit
		o.burst = burst
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// New creates a Downloader. The transport stack is, from the outside in:
// retry, rate limit, base transport.
func New(opts ...Option) *Downloader {
	o := &options{
		policy:    DefaultRetryPolicy(),
		limit:     DefaultRateLimit,
		burst:     DefaultBurst,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(o)
	}

	base := o.base
	if base == nil {
		base = defaultTransport()
	}

	policy := &loggingPolicy{
		Policy: o.policy,
		logger: o.logger,
	}

	transport := retry.NewTransport(&rateLimitedTransport{
		base:    base,
		limiter: rate.NewLimiter(o.limit, o.burst),
	})
	transport.Policy = func() retry.Policy { return policy }

	return &Downloader{
		client:    &http.Client{Transport: transport},
		logger:    o.logger,
		userAgent: o.userAgent,
	}
}

// defaultTransport is the standard HTTP transport that also serves file:// URLs.
func defaultTransport() http.RoundTripper {
	t, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return http.DefaultTransport
	}
	t = t.Clone()
	t.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	return t
}

// Fetch downloads url and returns its body. Only connection failures are
// retried. Any HTTP response is returned as is, so a 4xx or 5xx body reaches
// the caller and fails digest verification there.
func (d *Downloader) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to build request"), "url", url)
	}
	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrTransientNetworkFailure, err.Error()), "url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if (resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices) && d.logger != nil {
		d.logger.Warn(fmt.Sprintf("%s answered %s", url, resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrTransientNetworkFailure, "failed to read response body"), "url", url)
	}

	return body, nil
}

// rateLimitedTransport waits for the limiter before every round trip, retries included.
type rateLimitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}
