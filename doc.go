// Package gocoro provides a user-space asynchronous task runtime for Go,
// built around a cold, awaitable [Task] that stands in for a coroutine
// handle: a Task is created, runs on a pluggable [Executor], suspends at
// well-defined points (dispatch, sleep, awaiting another Task, or a
// [Channel] read/write), and completes exactly once with a result.
//
// # Tasks
//
// [Spawn] creates a Task bound to an [Executor] and begins running its
// function on that executor. The function receives a [Coroutine] handle
// used to suspend at await-points:
//
//	t := gocoro.Spawn(exec, func(co *gocoro.Coroutine) (int, error) {
//	    co.Sleep(100 * time.Millisecond)
//	    inner := gocoro.Spawn(exec, otherFn)
//	    v, err := gocoro.Await(co, inner)
//	    return v + 1, err
//	})
//	v, err := t.Wait()
//
// A Task completes at most once. [Task.Then], [Task.Catching], and
// [Task.Finally] register one-shot callbacks that fire in registration
// order; a callback registered after completion fires synchronously,
// inline, at registration time.
//
// # Executors
//
// [Executor] is the single-method interface deciding where a submitted
// closure runs: [InlineExecutor] runs it on the caller; [OneShotThreadExecutor]
// spawns and joins a fresh goroutine; [NewPoolDispatchExecutor] hands it to a
// bounded background pool with no join; [NewLoopPerInstanceExecutor] drains
// a FIFO queue on one owned worker goroutine; [SharedLoop] is a
// process-wide singleton instance of the latter. [NewWorkStealingExecutor]
// is declared but intentionally unimplemented.
//
// # Scheduling delays
//
// [DelayedScheduler] runs a single worker goroutine draining a priority
// queue of deadline-ordered closures with millisecond resolution.
// [Coroutine.Sleep] schedules resumption on the process-wide
// [DefaultScheduler] unless the Task was created with [SpawnWithScheduler].
//
// # Channels
//
// [Channel] is a bounded rendezvous/FIFO queue: readers and writers that
// cannot be matched immediately park on FIFO waitlists and resume through
// the [Executor] bound to the [Coroutine] that is awaiting them, not on
// whichever goroutine performed the match. Closing a channel wakes every
// party parked at that moment with [ErrChannelClosed].
//
// # Structured fan-out
//
// The [github.com/coropkg/gocoro/group] subpackage layers fan-out
// combinators (WaitAll, Race, MapSlice) on top of [Task], for callers that
// want to coordinate several Tasks the way [github.com/sourcegraph/conc]
// or [golang.org/x/sync/errgroup] coordinate goroutines.
//
// # Channel signaling utilities
//
// The [github.com/coropkg/gocoro/chanx] subpackage holds the
// context-aware send/receive and idempotent-close helpers this package
// uses internally to signal across goroutine boundaries without risking
// a send-on-closed panic.
package gocoro
