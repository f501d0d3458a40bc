// Package retry provides the retry orchestrator implementation
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/goretry/goretry/pkg/backoff"
	"github.com/goretry/goretry/pkg/types"
)

// DefaultRetries is the retry budget used when WithRetries is not given.
// The budget counts additional attempts after the first, so the default
// allows 11 invocations in total.
const DefaultRetries = 10

// Validation errors reported before the attempt loop starts
var (
	// ErrInvalidOperation indicates the operation is nil
	ErrInvalidOperation = errors.New("retry: operation must not be nil")

	// ErrInvalidObserver indicates WithOnRetry was given a nil observer
	ErrInvalidObserver = errors.New("retry: onRetry observer must not be nil")
)

// Operation is the function to retry. It receives the bail token and the
// 1-based attempt number.
type Operation[T any] func(ctx context.Context, bail *Bail, attempt int) (T, error)

// OnRetryFunc observes a failed attempt that is about to be retried. It
// receives the attempt's error, the 1-based attempt number and the computed
// delay before the next attempt. Returning a non-nil error aborts the
// sequence with that error instead of the attempt's, which lets an observer
// implement selective non-retry policies.
type OnRetryFunc func(err error, attempt int, delay time.Duration) error

// Do runs op until it succeeds, bails, or the retry budget is exhausted.
//
// Attempts are strictly serialized. After each attempt the bail token is
// inspected first: a latched bail terminates the sequence with its reason
// even when the attempt also returned a value or an error. A successful
// attempt returns its value. A failed attempt consumes one unit of the retry
// budget; once the budget is exhausted the attempt's error is returned
// unwrapped, with no delay and no observer call. Otherwise the observer (if
// any) runs, and the loop suspends for the delay computed by the backoff
// generator (if any) before the next attempt.
//
// Cancelling ctx aborts the sequence with ctx.Err(), checked before each
// attempt and while waiting out a delay.
func Do[T any](ctx context.Context, op Operation[T], opts ...Option) (T, error) {
	var zero T

	cfg := newConfig(opts...)

	if op == nil {
		return zero, ErrInvalidOperation
	}
	if cfg.onRetrySet && cfg.onRetry == nil {
		return zero, ErrInvalidObserver
	}

	clock := cfg.resolveClock(ctx)
	bail := &Bail{}
	attempt := 0

	for {
		attempt++

		// check if context is cancelled
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := op(ctx, bail, attempt)

		// a latched bail wins over the attempt's own outcome
		if bail.Bailed() {
			return zero, bail.Reason()
		}

		if err == nil {
			return result, nil
		}

		var delay time.Duration
		if cfg.backoff != nil {
			delay = cfg.backoff(attempt)
		}

		// budget counts attempts after the first
		if attempt > cfg.retries {
			return zero, err
		}

		if cfg.onRetry != nil {
			if obsErr := cfg.onRetry(err, attempt, delay); obsErr != nil {
				return zero, obsErr
			}
		}

		// wait for retry delay
		if delay > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-clock.After(delay):
				// continue retrying
			}
		}
	}
}

// DoAsync runs op with retry in a goroutine and delivers the outcome on the
// returned channel. The channel is buffered and closed after the single send.
func DoAsync[T any](ctx context.Context, op Operation[T], opts ...Option) <-chan types.Result[T] {
	clock := newConfig(opts...).resolveClock(ctx)
	resultChan := make(chan types.Result[T], 1)

	go func() {
		defer close(resultChan)

		start := clock.Now()
		value, err := Do(ctx, op, opts...)
		duration := clock.Since(start)

		resultChan <- types.Result[T]{
			Value:    value,
			Error:    err,
			Duration: duration,
		}
	}()

	return resultChan
}

// config holds the orchestrator configuration for one call
type config struct {
	retries    int
	backoff    backoff.DelayFunc
	onRetry    OnRetryFunc
	onRetrySet bool
	clock      types.Clock
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		retries: DefaultRetries,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// resolveClock prefers an explicitly configured clock, then one carried by
// the context, then the real clock
func (cfg *config) resolveClock(ctx context.Context) types.Clock {
	if cfg.clock != nil {
		return cfg.clock
	}
	return types.ClockFromContext(ctx)
}

// Option is a configuration option for a Do call
type Option func(*config)

// WithRetries sets the retry budget: the number of additional attempts
// allowed after the first. Negative values are clamped to zero, meaning a
// single attempt with no retry.
func WithRetries(retries int) Option {
	return func(cfg *config) {
		if retries < 0 {
			retries = 0
		}
		cfg.retries = retries
	}
}

// WithBackoff sets the delay generator consulted after each failed attempt.
// Without one, retries happen with zero delay.
func WithBackoff(fn backoff.DelayFunc) Option {
	return func(cfg *config) {
		cfg.backoff = fn
	}
}

// WithOnRetry sets the observer invoked once per failed-but-retriable
// attempt. Passing nil makes Do fail with ErrInvalidObserver before any
// attempt runs.
func WithOnRetry(fn OnRetryFunc) Option {
	return func(cfg *config) {
		cfg.onRetry = fn
		cfg.onRetrySet = true
	}
}

// WithClock sets the clock for time operations
func WithClock(clock types.Clock) Option {
	return func(cfg *config) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}
