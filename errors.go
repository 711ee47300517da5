package gocoro

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrChannelClosed is observed by any awaiter that touches a [Channel]
// after it has been closed, whether because it was already parked when
// Close ran or because it arrived afterward.
var ErrChannelClosed = errors.New("gocoro: channel closed")

// ErrSchedulerStopped names the stopped-scheduler error kind. Neither
// [DelayedScheduler.Schedule] nor [LoopPerInstanceExecutor.Submit] returns
// it: both have no return value and silently drop submissions made after
// the receiver has been shut down.
var ErrSchedulerStopped = errors.New("gocoro: scheduler stopped")

// ErrNotImplemented is the value the work-stealing executor stub's Submit
// panics with. The
// source design declares a work-stealing executor variant but leaves it
// unimplemented; this module preserves that gap rather than guessing at
// a stealing algorithm the design never specified.
var ErrNotImplemented = errors.New("gocoro: work-stealing executor is not implemented")

// CoroutineError wraps a value recovered from a panic that escaped a
// coroutine body, together with the stack trace captured at the point of
// the panic. A CoroutineError is the "failure token" a [Task]'s Result
// carries when the coroutine's function panics instead of returning an
// error.
type CoroutineError struct {
	Value any
	Stack string
}

func (e *CoroutineError) Error() string {
	return fmt.Sprintf("gocoro: coroutine panicked: %v\n\n%s", e.Value, e.Stack)
}

func (e *CoroutineError) Unwrap() error { return nil }

func newCoroutineError(v any) *CoroutineError {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &CoroutineError{Value: v, Stack: string(buf[:n])}
}
