// Package backoff provides delay generators for retry loops, including the
// jittered variants that avoid thundering herd problems.
//
// Available generators:
//
// 1. Deterministic:
//   - Constant: same delay for every attempt
//   - Exponential: base * factor^(attempt-1), bounded by a cap
//
// 2. Jittered (randomized over whole milliseconds, bounds inclusive):
//   - FullJitter: uniform in [0, exponential(attempt)]
//   - EqualJitter: exponential(attempt)/2 plus uniform jitter over the other half
//   - DecorrelatedJitter: each draw seeds the next draw's range
//
// Every generator except DecorrelatedJitter is a pure function of the attempt
// number (modulo the random source) and safe for concurrent use.
//
// Basic usage example:
//
//	// Exponential: 100ms, 200ms, 400ms, ... capped at 5s
//	delay := backoff.Exponential(
//		backoff.WithBase(100*time.Millisecond),
//		backoff.WithCap(5*time.Second))
//
//	fmt.Println(delay(3)) // 400ms
//
// Decorrelated jitter keeps state between calls:
//
//	jitter := backoff.NewDecorrelatedJitter(
//		backoff.WithBase(100*time.Millisecond),
//		backoff.WithCap(10*time.Second))
//
//	jitter.Next() // in [100ms, 300ms]
//	jitter.Next() // in [100ms, 3*previous], capped
//
// Its Delay method plugs into anything accepting a DelayFunc, but the
// instance's sequence is a single mutable resource: callers sharing one
// instance across concurrent retry sequences observe interleaved draws.
package backoff
