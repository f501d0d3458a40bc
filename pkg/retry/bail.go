package retry

import (
	"errors"
	"sync"
)

// ErrBailedWithoutReason is recorded when Bail is called with a nil reason.
// The message is part of the contract callers match on.
var ErrBailedWithoutReason = errors.New("Bailed without giving a reason.")

// Bail is the cancellation token handed to each attempt. Calling Bail marks
// the sequence for termination with the given reason; it does not interrupt
// the running operation, which must return on its own. The orchestrator
// inspects the token once the attempt returns, and a latched bail wins over
// whatever the attempt itself produced.
//
// A token is scoped to a single Do call.
type Bail struct {
	mu     sync.Mutex
	bailed bool
	reason error
}

// Bail marks the sequence for termination. Only the first call takes effect;
// a nil reason records ErrBailedWithoutReason.
func (b *Bail) Bail(reason error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bailed {
		return
	}

	if reason == nil {
		reason = ErrBailedWithoutReason
	}

	b.bailed = true
	b.reason = reason
}

// Bailed reports whether Bail has been called
func (b *Bail) Bailed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bailed
}

// Reason returns the error recorded by the first Bail call, nil if none
func (b *Bail) Reason() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reason
}
