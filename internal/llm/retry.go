package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retryPolicy says how often a failed call may be repeated.
type retryPolicy int

const (
	retryNever retryPolicy = iota
	retryOnce
	retryTransient
)

// classify maps a Generate error to its retry policy. Cancellation and
// rejected requests are final; an empty answer gets one more try since a
// second sample usually produces text; everything else is transient.
func classify(err error) retryPolicy {
	if IsCanceled(err) {
		return retryNever
	}
	var rejected *ErrRequestRejected
	if errors.As(err, &rejected) {
		return retryNever
	}
	var empty *ErrEmptyResponse
	if errors.As(err, &empty) {
		return retryOnce
	}
	return retryTransient
}

// RetryProvider is a decorator that retries failed calls with exponential
// backoff and jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic. A MaxAttempts below one is
// treated as a single attempt.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		lastErr   error
		emptySeen bool
	)
	for attempt := range r.config.MaxAttempts {
		if attempt > 0 {
			if err := sleep(ctx, r.backoff(attempt-1, lastErr)); err != nil {
				return nil, err
			}
		}

		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch classify(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if emptySeen {
				return nil, err
			}
			emptySeen = true
		}
	}
	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff is the wait before retrying after the given attempt. A server
// supplied Retry-After wins over the computed delay.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.config.MaxWait))
	wait *= 0.8 + 0.4*rand.Float64()
	return time.Duration(wait)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
