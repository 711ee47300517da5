package gocoro

import (
	"sync"
	"time"
)

// TaskState is the completion state shared between a [Task] and its
// running coroutine body. A result is set at most once; callbacks
// registered before completion fire in registration order once it is
// set, and a callback registered after completion fires synchronously,
// inline, at registration time.
type TaskState[T any] struct {
	mu        sync.Mutex
	cond      *sync.Cond
	result    *Result[T]
	callbacks []func(Result[T])
	executor  Executor
}

func newTaskState[T any](executor Executor) *TaskState[T] {
	s := &TaskState[T]{executor: executor}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// setResult seals the state with r. It panics if called a second time —
// "once result is set, no further mutation is permitted" is an invariant
// of this runtime, not a recoverable condition.
func (s *TaskState[T]) setResult(r Result[T]) {
	s.mu.Lock()
	if s.result != nil {
		s.mu.Unlock()
		panic("gocoro: TaskState result set more than once")
	}
	s.result = &r
	cbs := s.callbacks
	s.callbacks = nil
	s.cond.Broadcast()
	s.mu.Unlock()

	for _, cb := range cbs {
		cb(r)
	}
}

// OnCompleted registers cb to run with the task's result. If the result
// is already present, cb runs immediately, inline, before OnCompleted
// returns. Otherwise cb is appended and runs later, in registration
// order, once the result is set.
func (s *TaskState[T]) OnCompleted(cb func(Result[T])) {
	s.mu.Lock()
	if s.result != nil {
		r := *s.result
		s.mu.Unlock()
		cb(r)
		return
	}
	s.callbacks = append(s.callbacks, cb)
	s.mu.Unlock()
}

// Wait blocks the calling goroutine until the result is set, then
// returns it. Unlike OnCompleted, Wait never runs a callback on someone
// else's behalf — it is the synchronous counterpart described in the
// source design as blocking the calling OS thread on a condition
// variable.
func (s *TaskState[T]) Wait() Result[T] {
	s.mu.Lock()
	for s.result == nil {
		s.cond.Wait()
	}
	r := *s.result
	s.mu.Unlock()
	return r
}

// snapshot returns the sealed result. Callers (TaskAwaiter.Resume) only
// ever call this after they have observed completion, so it never blocks.
func (s *TaskState[T]) snapshot() Result[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.result
}

// Coroutine is the handle a spawned function receives to suspend at
// await-points. It carries the Executor every suspension on it routes
// resumption through.
type Coroutine struct {
	executor  Executor
	scheduler *DelayedScheduler
}

// Executor returns the Coroutine's bound Executor, the target every
// awaiter derived from this Coroutine resumes on.
func (co *Coroutine) Executor() Executor { return co.executor }

// Sleep suspends the calling coroutine for at least d, resuming via a
// [SleepAwaiter] bound to this Coroutine's Executor.
func (co *Coroutine) Sleep(d time.Duration) {
	done := make(chan struct{})
	a := SleepAwaiter{executor: co.executor, scheduler: co.scheduler, delay: d}
	a.Suspend(func() { close(done) })
	<-done
}

// Task is a cold, awaitable handle to a running coroutine: it owns the
// completion state produced by invoking a coroutine function. Exposes
// [Task.Wait] for synchronous observation and [Task.Then]/[Task.Catching]/
// [Task.Finally] for asynchronous registration.
type Task[T any] struct {
	state *TaskState[T]
}

// Spawn creates a Task bound to executor and begins running fn. The
// coroutine's initial suspension is a [DispatchAwaiter], so even fn's
// first step runs under executor's scheduling discipline; an
// [InlineExecutor] runs it on the caller of Spawn, before Spawn returns.
func Spawn[T any](executor Executor, fn func(co *Coroutine) (T, error)) *Task[T] {
	return SpawnWithScheduler(executor, DefaultScheduler, fn)
}

// SpawnWithScheduler is [Spawn] with an explicit [DelayedScheduler] for
// the coroutine's [Coroutine.Sleep] calls, instead of [DefaultScheduler].
func SpawnWithScheduler[T any](executor Executor, scheduler *DelayedScheduler, fn func(co *Coroutine) (T, error)) *Task[T] {
	state := newTaskState[T](executor)
	co := &Coroutine{executor: executor, scheduler: scheduler}

	body := func() {
		defer func() {
			if r := recover(); r != nil {
				state.setResult(Result[T]{Err: newCoroutineError(r)})
			}
		}()
		v, err := fn(co)
		state.setResult(Result[T]{Value: v, Err: err})
	}

	disp := DispatchAwaiter{executor: executor}
	disp.Suspend(body)

	return &Task[T]{state: state}
}

// Wait blocks until the task completes and returns its value and error,
// re-raising nothing itself — callers that want panic-on-error call
// [Result.Unwrap] on the returned value via [Task.Result].
func (t *Task[T]) Wait() (T, error) {
	return t.state.Wait().Get()
}

// Result blocks until the task completes and returns its [Result].
func (t *Task[T]) Result() Result[T] {
	return t.state.Wait()
}

// Then registers fn to run with the task's value when it completes
// successfully. It does not fire on failure.
func (t *Task[T]) Then(fn func(T)) {
	t.state.OnCompleted(func(r Result[T]) {
		if r.Ok() {
			fn(r.Value)
		}
	})
}

// Catching registers fn to run with the task's error when it completes
// with a failure. It does not fire on success.
func (t *Task[T]) Catching(fn func(error)) {
	t.state.OnCompleted(func(r Result[T]) {
		if !r.Ok() {
			fn(r.Err)
		}
	})
}

// Finally registers fn to run with the task's result regardless of
// outcome.
func (t *Task[T]) Finally(fn func(Result[T])) {
	t.state.OnCompleted(fn)
}

// Await suspends co until inner completes, resuming via a [TaskAwaiter]
// bound to co's Executor, and returns inner's value and error.
func Await[T any](co *Coroutine, inner *Task[T]) (T, error) {
	done := make(chan struct{})
	a := TaskAwaiter[T]{executor: co.executor, inner: inner}
	a.Suspend(func() { close(done) })
	<-done
	return a.Resume()
}
