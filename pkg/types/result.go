package types

import "time"

// Result carries the outcome of an asynchronous execution
type Result[T any] struct {
	// Value is the value produced on success
	Value T

	// Error is the terminal error, nil on success
	Error error

	// Duration is the total wall-clock time of the execution
	Duration time.Duration
}
