// Package retry is the single retry-with-backoff wrapper used at the fetch
// boundary. Call sites pass a retryability predicate instead of re-implementing
// backoff loops inline.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultMaxAttempts     = 4
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxInterval     = 10 * time.Second
)

type Options struct {
	MaxAttempts     uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

type Option func(*Options)

func WithMaxAttempts(n uint64) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxAttempts = n
		}
	}
}

func WithInitialInterval(d time.Duration) Option {
	return func(o *Options) {
		if d > 0 {
			o.InitialInterval = d
		}
	}
}

// Do runs op with bounded exponential backoff. retryable decides whether a
// failure is worth another attempt; a non-retryable error returns immediately.
// Context cancellation stops the wait between attempts.
func Do[T any](ctx context.Context, op func() (T, error), retryable func(error) bool, opts ...Option) (T, error) {
	o := Options{
		MaxAttempts:     defaultMaxAttempts,
		InitialInterval: defaultInitialInterval,
		MaxInterval:     defaultMaxInterval,
	}
	for _, opt := range opts {
		opt(&o)
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = o.InitialInterval
	exp.MaxInterval = o.MaxInterval

	var result T
	operation := func() error {
		v, err := op()
		if err != nil {
			if retryable != nil && !retryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = v
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(exp, o.MaxAttempts-1), ctx)
	if err := backoff.Retry(operation, b); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
