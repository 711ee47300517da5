package gocoro

import "sync"

// LoopPerInstanceExecutor enqueues submissions into a FIFO queue drained
// by one worker goroutine owned by this instance. Submission order equals
// execution order within one LoopPerInstanceExecutor; no ordering is
// promised across instances or against any other Executor.
type LoopPerInstanceExecutor struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	active bool
	wg     sync.WaitGroup
}

// NewLoopPerInstanceExecutor creates an executor and starts its worker.
func NewLoopPerInstanceExecutor() *LoopPerInstanceExecutor {
	e := &LoopPerInstanceExecutor{active: true}
	e.cond = sync.NewCond(&e.mu)
	e.wg.Add(1)
	go e.run()
	return e
}

// Submit pushes fn onto the FIFO queue while the executor is active.
// Once inactive (after [LoopPerInstanceExecutor.Shutdown]), submissions
// are silently dropped — the source design documents this as acceptable
// behaviour in favor of liveness at teardown, and this module keeps that
// choice rather than surfacing [ErrSchedulerStopped].
func (e *LoopPerInstanceExecutor) Submit(fn func()) {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return
	}
	e.queue = append(e.queue, fn)
	e.mu.Unlock()
	e.cond.Signal()
}

// Shutdown is idempotent. If waitForComplete is false, items still
// sitting in the queue are dropped immediately and the worker is woken
// to exit as soon as it notices the queue is empty. If true, the queue
// is left intact and the worker is simply allowed to keep draining it —
// Shutdown only marks the executor inactive so it exits once that drain
// finishes naturally. New submissions are rejected either way.
func (e *LoopPerInstanceExecutor) Shutdown(waitForComplete bool) {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return
	}
	e.active = false
	if !waitForComplete {
		e.queue = nil
	}
	e.mu.Unlock()
	e.cond.Broadcast()
}

// Join blocks until the worker goroutine has exited.
func (e *LoopPerInstanceExecutor) Join() {
	e.wg.Wait()
}

// Close is Shutdown(false) followed by Join, the destruction-time
// behaviour the source design specifies for a LoopPerInstance.
func (e *LoopPerInstanceExecutor) Close() {
	e.Shutdown(false)
	e.Join()
}

func (e *LoopPerInstanceExecutor) run() {
	defer e.wg.Done()

	for {
		e.mu.Lock()
		for len(e.queue) == 0 && e.active {
			e.cond.Wait()
		}
		if len(e.queue) == 0 {
			e.mu.Unlock()
			return
		}

		fn := e.queue[0]
		e.queue = e.queue[1:]
		e.mu.Unlock()

		fn()
	}
}

var (
	sharedLoopOnce sync.Once
	sharedLoop     *LoopPerInstanceExecutor
)

// SharedLoop returns the process-wide [LoopPerInstanceExecutor] singleton,
// lazily constructed on first use and intentionally never torn down
// (destroyed only at process exit), matching the global-static pattern
// the source design calls for.
func SharedLoop() *LoopPerInstanceExecutor {
	sharedLoopOnce.Do(func() {
		sharedLoop = NewLoopPerInstanceExecutor()
	})
	return sharedLoop
}
