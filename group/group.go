package group

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/iter"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"

	"github.com/coropkg/gocoro"
)

// Policy controls how [WaitAll] reacts to task failures.
type Policy int

const (
	// FailFast (the default) reports the first failure observed, by
	// batch index, once every task has completed. There is no
	// cancellation token to stop the others early — gocoro.Task bodies
	// cannot be cancelled once running, matching the core runtime's
	// explicit non-goal.
	FailFast Policy = iota

	// Collect waits out every task and returns all failures joined via
	// errors.Join.
	Collect
)

type config struct {
	policy Policy
	limit  int
}

// Option configures [WaitAll] or [MapSlice].
type Option func(*config)

func defaultConfig() config { return config{policy: FailFast} }

// WithPolicy sets WaitAll's failure-aggregation policy.
func WithPolicy(p Policy) Option {
	return func(c *config) { c.policy = p }
}

// WithLimit bounds how many tasks WaitAll/MapSlice/ForEachSlice wait on
// or run concurrently. Zero (the default) means unlimited for WaitAll and
// MapSlice; ForEachSlice passes zero on to [iter.Iterator], which then
// uses GOMAXPROCS goroutines.
func WithLimit(n int) Option {
	return func(c *config) {
		if n < 0 {
			panic("group: limit must be non-negative")
		}
		c.limit = n
	}
}

func recoverAsTaskError(index int, dst *error) {
	if r := recover(); r != nil {
		buf := make([]byte, 4096)
		n := runtime.Stack(buf, false)
		*dst = &TaskError{Index: index, Err: fmt.Errorf("panic: %v\n%s", r, buf[:n])}
	}
}

// WaitAll waits for every task in tasks, collecting their values in the
// same order. Concurrency for the waits themselves is backed by
// [errgroup.Group], whose SetLimit implements [WithLimit].
func WaitAll[T any](tasks []*gocoro.Task[T], opts ...Option) ([]T, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	results := make([]T, len(tasks))
	errs := make([]error, len(tasks))

	var g errgroup.Group
	if cfg.limit > 0 {
		g.SetLimit(cfg.limit)
	}

	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			defer recoverAsTaskError(i, &errs[i])
			v, err := t.Wait()
			if err != nil {
				errs[i] = &TaskError{Index: i, Err: err}
				return nil
			}
			results[i] = v
			return nil
		})
	}
	_ = g.Wait()

	switch cfg.policy {
	case Collect:
		var joined []error
		for _, e := range errs {
			if e != nil {
				joined = append(joined, e)
			}
		}
		if len(joined) == 0 {
			return results, nil
		}
		return results, errors.Join(joined...)
	default: // FailFast
		for _, e := range errs {
			if e != nil {
				return results, e
			}
		}
		return results, nil
	}
}

// Race waits on every task in tasks and returns the first one to
// complete successfully, along with its value. The context of slower
// tasks is not cancelled — gocoro.Task offers no such token — so losing
// tasks simply keep running to completion in the background.
//
// If every task fails, Race returns the zero value and the last observed
// error. If tasks is empty, Race returns the zero value and a nil error.
func Race[T any](tasks []*gocoro.Task[T]) (T, error) {
	var zero T
	if len(tasks) == 0 {
		return zero, nil
	}

	type outcome struct {
		val T
		err error
	}
	ch := make(chan outcome, len(tasks))

	for _, t := range tasks {
		t := t
		go func() {
			v, err := t.Wait()
			ch <- outcome{v, err}
		}()
	}

	var lastErr error
	for range tasks {
		o := <-ch
		if o.err == nil {
			return o.val, nil
		}
		lastErr = o.err
	}
	return zero, lastErr
}

// MapSlice applies fn to every item concurrently, preserving input order
// in the returned slice, backed by [pool.ResultPool]. On any failure,
// MapSlice returns nil and all failures joined via errors.Join, each
// wrapped in a [*TaskError] naming its index.
func MapSlice[T, R any](items []T, fn func(T) (R, error), opts ...Option) ([]R, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	type outcome struct {
		idx int
		val R
		err error
	}

	p := pool.NewWithResults[outcome]()
	if cfg.limit > 0 {
		p = p.WithMaxGoroutines(cfg.limit)
	}

	for i, item := range items {
		i, item := i, item
		p.Go(func() outcome {
			v, err := fn(item)
			return outcome{idx: i, val: v, err: err}
		})
	}

	// The pool hands results back in completion order; each outcome
	// carries its input index so out is filled in input order.
	raw := p.Wait()
	out := make([]R, len(items))
	var errs []error
	for _, o := range raw {
		out[o.idx] = o.val
		if o.err != nil {
			errs = append(errs, &TaskError{Index: o.idx, Err: o.err})
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

// SpawnBounded acquires a slot on sem before spawning fn as a [gocoro.Task]
// on executor, releasing the slot via [gocoro.Task.Finally] once the task
// completes (success or failure). It blocks until a slot is free or ctx
// is cancelled; on cancellation it returns ctx.Err() without spawning.
//
// This is how the bounded-concurrency primitive on its own — a raw
// acquire/release pair — turns into a bounded fan-out of Tasks: the
// caller gets back an ordinary Task to Wait/Then/Catching as usual, with
// the slot accounting handled entirely behind the scenes.
func SpawnBounded[T any](ctx context.Context, sem *gocoro.Semaphore, executor gocoro.Executor, fn func(co *gocoro.Coroutine) (T, error)) (*gocoro.Task[T], error) {
	if err := sem.Acquire(ctx); err != nil {
		var zero *gocoro.Task[T]
		return zero, err
	}
	t := gocoro.Spawn(executor, fn)
	t.Finally(func(gocoro.Result[T]) { sem.Release() })
	return t, nil
}

// ForEachSlice applies fn to every item concurrently, backed by
// [iter.Iterator.ForEachIdx]. It returns all failures joined via
// errors.Join, each wrapped in a [*TaskError] naming its index.
func ForEachSlice[T any](items []T, fn func(T) error, opts ...Option) error {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	errs := make([]error, len(items))
	it := iter.Iterator[T]{MaxGoroutines: cfg.limit}
	it.ForEachIdx(items, func(i int, item *T) {
		if err := fn(*item); err != nil {
			errs[i] = &TaskError{Index: i, Err: err}
		}
	})

	var joined []error
	for _, e := range errs {
		if e != nil {
			joined = append(joined, e)
		}
	}
	if len(joined) == 0 {
		return nil
	}
	return errors.Join(joined...)
}
