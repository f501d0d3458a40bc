// Package backoff provides delay generator implementations
package backoff

import (
	"math/rand"
	"time"
)

// DelayFunc maps a 1-based attempt number to the delay before the next attempt
type DelayFunc func(attempt int) time.Duration

// Default generator parameters
const (
	// DefaultConstantDelay is the delay used by Constant when none is given
	DefaultConstantDelay = 5 * time.Second

	// DefaultBase is the first-attempt delay of the exponential family
	DefaultBase = 1 * time.Second

	// DefaultCap is the upper bound of the exponential family
	DefaultCap = 60 * time.Second

	// DefaultFactor is the per-attempt growth factor of the exponential family
	DefaultFactor = 2

	// DefaultTimes is the spread multiplier of the decorrelated jitter generator
	DefaultTimes = 3
)

// Constant creates a generator that returns the same delay for every attempt.
// A non-positive delay falls back to DefaultConstantDelay.
func Constant(delay time.Duration) DelayFunc {
	if delay <= 0 {
		delay = DefaultConstantDelay
	}

	return func(int) time.Duration {
		return delay
	}
}

// Exponential creates a generator growing by factor each attempt, bounded by
// the cap: base for attempt 1, base*factor for attempt 2, and so on. All
// arithmetic is over whole milliseconds.
func Exponential(opts ...Option) DelayFunc {
	o := newOptions(opts...)

	return o.exponential
}

// FullJitter creates a generator drawing uniformly from [0, e], where e is the
// exponential delay for the attempt. Both bounds are inclusive.
func FullJitter(opts ...Option) DelayFunc {
	o := newOptions(opts...)

	return func(attempt int) time.Duration {
		upper := o.exponential(attempt).Milliseconds()
		return time.Duration(randInt(0, upper)) * time.Millisecond
	}
}

// EqualJitter creates a generator drawing uniformly from [e/2, e], where e is
// the exponential delay for the attempt: half the delay is kept, the other
// half is jittered.
func EqualJitter(opts ...Option) DelayFunc {
	o := newOptions(opts...)

	return func(attempt int) time.Duration {
		half := o.exponential(attempt).Milliseconds() / 2
		return time.Duration(half+randInt(0, half)) * time.Millisecond
	}
}

// exponential calculates min(cap, base * factor^(attempt-1)) in whole
// milliseconds, guarding against overflow before the cap applies
func (o *options) exponential(attempt int) time.Duration {
	if attempt <= 0 {
		attempt = 1
	}

	delay := o.base.Milliseconds()
	capMS := o.cap.Milliseconds()

	for i := 1; i < attempt; i++ {
		delay *= o.factor
		if delay >= capMS || delay < 0 {
			return time.Duration(capMS) * time.Millisecond
		}
	}

	if delay > capMS {
		delay = capMS
	}

	return time.Duration(delay) * time.Millisecond
}

// DecorrelatedJitter is a stateful delay generator: each draw is taken from
// [base, lastSleep*times] capped, and becomes the next draw's upper-bound
// seed. The sequence belongs to one instance; sharing an instance across
// concurrent retry sequences interleaves their draws with no synchronization.
// Construct a fresh instance per sequence that needs isolation.
type DecorrelatedJitter struct {
	base      time.Duration
	capDelay  time.Duration
	times     int64
	lastSleep time.Duration
}

// NewDecorrelatedJitter creates a decorrelated jitter generator. Defaults:
// base 1s, cap 60s, times 3.
func NewDecorrelatedJitter(opts ...Option) *DecorrelatedJitter {
	o := newOptions(opts...)

	return &DecorrelatedJitter{
		base:      o.base,
		capDelay:  o.cap,
		times:     o.times,
		lastSleep: o.base,
	}
}

// Next advances the sequence and returns the next delay
func (j *DecorrelatedJitter) Next() time.Duration {
	baseMS := j.base.Milliseconds()
	capMS := j.capDelay.Milliseconds()

	upper := j.lastSleep.Milliseconds() * j.times
	if upper < baseMS {
		upper = baseMS
	}

	sleep := randInt(baseMS, upper)
	if sleep > capMS {
		sleep = capMS
	}

	j.lastSleep = time.Duration(sleep) * time.Millisecond
	return j.lastSleep
}

// Delay satisfies DelayFunc. The attempt number is ignored; the internal
// sequence advances on every call.
func (j *DecorrelatedJitter) Delay(int) time.Duration {
	return j.Next()
}

// Reset rewinds the sequence to its initial state
func (j *DecorrelatedJitter) Reset() {
	j.lastSleep = j.base
}

// randInt returns a uniform random integer in [min, max], inclusive of both
// bounds
func randInt(min, max int64) int64 {
	if max <= min {
		return min
	}
	return rand.Int63n(max-min+1) + min
}

// Option configures the exponential family of generators
type Option func(*options)

type options struct {
	base  time.Duration
	cap   time.Duration
	times int64
	// factor only applies to the exponential family
	factor int64
}

func newOptions(opts ...Option) *options {
	o := &options{
		base:   DefaultBase,
		cap:    DefaultCap,
		factor: DefaultFactor,
		times:  DefaultTimes,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithBase sets the first-attempt delay
func WithBase(base time.Duration) Option {
	return func(o *options) {
		if base > 0 {
			o.base = base
		}
	}
}

// WithCap sets the maximum delay
func WithCap(capDelay time.Duration) Option {
	return func(o *options) {
		if capDelay > 0 {
			o.cap = capDelay
		}
	}
}

// WithFactor sets the growth factor (exponential family only)
func WithFactor(factor int) Option {
	return func(o *options) {
		if factor > 0 {
			o.factor = int64(factor)
		}
	}
}

// WithTimes sets the spread multiplier (decorrelated jitter only)
func WithTimes(times int) Option {
	return func(o *options) {
		if times > 0 {
			o.times = int64(times)
		}
	}
}
