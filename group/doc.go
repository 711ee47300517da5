// Package group provides fan-out combinators layered on top of
// [github.com/coropkg/gocoro.Task]: ways to coordinate several Tasks the
// way [github.com/sourcegraph/conc] or [golang.org/x/sync/errgroup]
// coordinate goroutines, without reaching into the core runtime's four
// subsystems (Task, Executor, DelayedScheduler, Channel).
//
// [WaitAll] waits for every Task in a batch, aggregating failures
// according to a [Policy]: [FailFast] (default) waits for every Task and
// then returns the first error by batch index — the Tasks have no
// cancellation token of their own, so a failure cannot stop the others
// early, matching the source runtime's explicit non-goal of cancelling an
// already-running coroutine body — while [Collect] waits out every Task
// and joins all errors via [errors.Join].
//
// [Race] returns the first Task to succeed; [MapSlice] runs a function
// over a slice with bounded concurrency, preserving input order in the
// output.
//
// Every task failure collected by [WaitAll] in [Collect] mode is wrapped
// in a [*TaskError] carrying the batch index that produced it, so
// callers can attribute an aggregated error back to a specific Task.
package group
