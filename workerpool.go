package gocoro

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coropkg/gocoro/chanx"
)

// ErrPoolClosed is returned by [WorkerPool.Submit] once the pool has been
// closed.
var ErrPoolClosed = errors.New("gocoro: worker pool is closed")

// WorkerPool is a reusable, fixed-size worker pool backing
// [PoolDispatchExecutor]. Work is submitted via Submit and processed by a
// fixed number of worker goroutines draining a shared buffered queue. The
// queue itself is a [chanx.Closable]: closing a worker pool and sending a
// task to it race in exactly the way Closable exists to make safe, so
// Submit/TrySubmit/Close lean on it instead of a closed flag plus a
// recovered send-on-closed panic.
type WorkerPool struct {
	tasks  *chanx.Closable[func() error]
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	errMu sync.Mutex
	errs  []error

	submitted atomic.Int64
	completed atomic.Int64
	errored   atomic.Int64
	inFlight  atomic.Int64
	workers   int
}

// PoolStats is a point-in-time snapshot of [WorkerPool] activity.
type PoolStats struct {
	Submitted  int64
	Completed  int64
	Errored    int64
	InFlight   int64
	QueueDepth int
	Workers    int
}

// PoolOption configures a [WorkerPool].
type PoolOption func(*poolConfig)

type poolConfig struct {
	queueSize       int
	onMetrics       func(PoolStats)
	metricsInterval time.Duration
}

// WithQueueSize sets the task queue buffer size. Default is n * 2.
func WithQueueSize(size int) PoolOption {
	return func(c *poolConfig) {
		if size < 0 {
			panic("gocoro: WithQueueSize requires non-negative size")
		}
		c.queueSize = size
	}
}

// WithPoolMetrics registers a periodic snapshot callback, the hook this
// module's observability surface exposes in place of an embedded logging
// library (see package doc). Panics if interval <= 0 or fn is nil.
func WithPoolMetrics(interval time.Duration, fn func(PoolStats)) PoolOption {
	if interval <= 0 {
		panic("gocoro: WithPoolMetrics requires interval > 0")
	}
	if fn == nil {
		panic("gocoro: WithPoolMetrics requires non-nil callback")
	}
	return func(c *poolConfig) {
		c.onMetrics = fn
		c.metricsInterval = interval
	}
}

// NewWorkerPool creates a pool with n worker goroutines, started
// immediately. Panics if n <= 0.
func NewWorkerPool(ctx context.Context, n int, opts ...PoolOption) *WorkerPool {
	if n <= 0 {
		panic("gocoro: NewWorkerPool requires n > 0")
	}

	cfg := poolConfig{queueSize: n * 2}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &WorkerPool{
		tasks:   chanx.NewClosable[func() error](cfg.queueSize),
		ctx:     ctx,
		cancel:  cancel,
		workers: n,
	}

	p.wg.Add(n)
	for range n {
		go p.worker()
	}

	if cfg.onMetrics != nil {
		go func() {
			ticker := time.NewTicker(cfg.metricsInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					cfg.onMetrics(p.Stats())
				case <-p.tasks.Done():
					return
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for fn := range p.tasks.Chan() {
		p.runTask(fn)
	}
}

func (p *WorkerPool) runTask(fn func() error) {
	p.inFlight.Add(1)
	defer func() {
		p.inFlight.Add(-1)
		p.completed.Add(1)
	}()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = newCoroutineError(r)
			}
		}()
		err = fn()
	}()
	if err != nil {
		p.errored.Add(1)
		p.errMu.Lock()
		p.errs = append(p.errs, err)
		p.errMu.Unlock()
	}
}

// Stats returns a point-in-time snapshot of pool activity. Safe to call
// concurrently.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		Submitted:  p.submitted.Load(),
		Completed:  p.completed.Load(),
		Errored:    p.errored.Load(),
		InFlight:   p.inFlight.Load(),
		QueueDepth: len(p.tasks.Chan()),
		Workers:    p.workers,
	}
}

// Submit hands fn to the pool. It blocks if the queue is full. Returns
// [ErrPoolClosed] if the pool has been closed, or the pool's own context
// error if its context is cancelled.
func (p *WorkerPool) Submit(fn func() error) error {
	switch err := p.tasks.SendContext(p.ctx, fn); {
	case err == nil:
		p.submitted.Add(1)
		return nil
	case errors.Is(err, chanx.ErrClosed):
		return ErrPoolClosed
	default:
		return err
	}
}

// TrySubmit attempts to submit without blocking. Returns false if the
// queue is full or the pool is closed.
func (p *WorkerPool) TrySubmit(fn func() error) bool {
	if err := p.tasks.TrySend(fn); err != nil {
		return false
	}
	p.submitted.Add(1)
	return true
}

// Close stops accepting new work and waits for in-flight tasks to finish.
// Returns the joined errors from all failed tasks. Safe to call multiple
// times; later calls return the same result.
func (p *WorkerPool) Close() error {
	p.tasks.Close()
	p.wg.Wait()
	p.cancel()

	p.errMu.Lock()
	defer p.errMu.Unlock()
	return errors.Join(p.errs...)
}
