package gocoro

import "time"

// DispatchAwaiter is the initial suspension of every [Task]: it never
// completes immediately, and suspending it submits the coroutine's first
// step to its Executor — so even the very first step of a coroutine body
// runs under that Executor's scheduling discipline (for an
// [InlineExecutor], that is the goroutine that called [Spawn]).
type DispatchAwaiter struct {
	executor Executor
}

// Suspend arranges for resume to run via the awaiter's Executor.
func (a DispatchAwaiter) Suspend(resume func()) {
	a.executor.Submit(resume)
}

// SleepAwaiter suspends until delay has elapsed, scheduling the wakeup on
// the Coroutine's [DelayedScheduler] ([DefaultScheduler] unless the Task
// was created with [SpawnWithScheduler]) and routing the resumption
// through the bound Executor exactly like every other awaiter.
type SleepAwaiter struct {
	executor  Executor
	scheduler *DelayedScheduler
	delay     time.Duration
}

func (a SleepAwaiter) Suspend(resume func()) {
	a.scheduler.Schedule(func() { a.executor.Submit(resume) }, a.delay)
}

// TaskAwaiter suspends the calling coroutine until inner has completed,
// then resumes — routed through the Executor bound to the awaiting
// coroutine — and surfaces inner's [Result].
type TaskAwaiter[T any] struct {
	executor Executor
	inner    *Task[T]
}

func (a TaskAwaiter[T]) Suspend(resume func()) {
	a.inner.state.OnCompleted(func(Result[T]) { a.executor.Submit(resume) })
}

// Resume returns inner's result, which is guaranteed present by the time
// resume runs: Suspend only arranges resume to fire from inner's
// completion callback.
func (a TaskAwaiter[T]) Resume() (T, error) {
	return a.inner.state.snapshot().Get()
}

// ReaderAwaiter and WriterAwaiter are the channel-bound awaiters produced
// by [Channel.Read] and [Channel.Write]. They are not exposed as values
// a caller constructs directly — parking, FIFO ordering, resumption
// routing, and cancellation cleanup are implemented inside Channel itself
// (see readerWaiter/writerWaiter) — but the names are kept here as the
// public vocabulary the source design uses for "the thing parked on a
// channel's waitlist".
type (
	ReaderAwaiter[T any] = readerWaiter[T]
	WriterAwaiter[T any] = writerWaiter[T]
)
