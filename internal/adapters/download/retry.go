package download

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rigzba21/conda-vendor/internal/core/ports"
	"oras.land/oras-go/v2/registry/remote/retry"
)

const (
	// DefaultMaxAttempts is the first attempt plus five retries.
	DefaultMaxAttempts = 6

	// DefaultBaseDelay is the first backoff delay; each retry doubles it.
	DefaultBaseDelay = 500 * time.Millisecond

	// DefaultMaxDelay caps a single backoff delay.
	DefaultMaxDelay = 30 * time.Second
)

// RetryPolicy decides which failed requests are retried and how long to wait
// before the next attempt. It implements retry.Policy.
type RetryPolicy struct {
	// MaxAttempts counts the first attempt. Values below 1 mean a single attempt.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Retryable defaults to ConnectionFailure.
	Retryable retry.Predicate
}

// DefaultRetryPolicy retries connection failures five times, waiting 0.5s, 1s, 2s, 4s and 8s.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
		Retryable:   ConnectionFailure,
	}
}

// Retry implements retry.Policy. A negative duration stops retrying.
func (p *RetryPolicy) Retry(attempt int, resp *http.Response, err error) (time.Duration, error) {
	retryable := p.Retryable
	if retryable == nil {
		retryable = ConnectionFailure
	}
	maxDelay := p.MaxDelay
	if maxDelay < p.BaseDelay {
		maxDelay = p.BaseDelay
	}

	policy := &retry.GenericPolicy{
		Retryable: retryable,
		Backoff:   exponentialBackoff(p.BaseDelay),
		MinWait:   p.BaseDelay,
		MaxWait:   maxDelay,
		MaxRetry:  max(p.MaxAttempts-1, 0),
	}
	return policy.Retry(attempt, resp, err)
}

// ConnectionFailure retries requests that produced no HTTP response at all.
// Any response, whatever its status, is final. Cancellation is never retried.
func ConnectionFailure(resp *http.Response, err error) (bool, error) {
	if err == nil || resp != nil {
		return false, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false, nil
	}
	return true, nil
}

func exponentialBackoff(base time.Duration) retry.Backoff {
	return func(attempt int, _ *http.Response) time.Duration {
		if attempt > 30 {
			attempt = 30
		}
		return base << attempt
	}
}

// loggingPolicy reports every scheduled retry before sleeping.
type loggingPolicy struct {
	retry.Policy
	logger ports.Logger
}

func (p *loggingPolicy) Retry(attempt int, resp *http.Response, err error) (time.Duration, error) {
	wait, policyErr := p.Policy.Retry(attempt, resp, err)
	if policyErr == nil && wait >= 0 && p.logger != nil {
		p.logger.Warn(fmt.Sprintf("connection failed, retrying in %s (attempt %d): %v", wait, attempt+2, err))
	}
	return wait, policyErr
}
