// Package retry provides a generic retry orchestrator with bail support and
// pluggable backoff delay generators.
//
// Key features:
//
// 1. Bounded retry loop:
//   - 1-based attempt numbering visible to the operation and the observer
//   - retry budget counts additional attempts after the first (default 10)
//   - the final error on exhaustion is the last attempt's error, unwrapped
//
// 2. Bail:
//   - each attempt receives a Bail token to terminate the sequence early
//   - a latched bail wins over the attempt's own outcome, success included
//   - bailing with no reason yields the ErrBailedWithoutReason sentinel
//
// 3. Observer hook:
//   - invoked once per failed-but-retriable attempt with error, attempt and delay
//   - an observer error aborts the sequence with that error, enabling
//     selective non-retry policies
//
// 4. Execution:
//   - synchronous Do and channel-based DoAsync variants
//   - context cancellation honored before each attempt and during delays
//   - time operations go through a Clock, mockable in tests
//
// Basic usage example:
//
//	result, err := retry.Do(ctx, func(ctx context.Context, bail *retry.Bail, attempt int) (string, error) {
//		resp, err := fetch(ctx)
//		if errors.Is(err, errForbidden) {
//			bail.Bail(err) // no point retrying
//			return "", err
//		}
//		return resp, err
//	},
//		retry.WithRetries(5),
//		retry.WithBackoff(backoff.FullJitter(backoff.WithBase(100*time.Millisecond))),
//	)
//
// Observer-driven policies:
//
//	retry.WithOnRetry(func(err error, attempt int, delay time.Duration) error {
//		if errors.Is(err, errCorrupt) {
//			return err // stop retrying, surface this error
//		}
//		log.Printf("attempt %d failed (%v), next in %s", attempt, err, delay)
//		return nil
//	})
//
// Thread safety:
//
// All state is scoped to one Do call; independent calls may run concurrently.
// The one caveat is a shared stateful backoff generator (see package backoff),
// whose internal sequence is not synchronized.
package retry
