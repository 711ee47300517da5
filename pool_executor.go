package gocoro

import "context"

// PoolDispatchExecutor hands every submission to a background
// [WorkerPool] abstraction and never joins: Submit returns as soon as the
// closure is queued, matching the "hands fn to a background pool
// abstraction; no join" contract for the PoolDispatch variant. A panic
// inside fn is captured by the pool as a [*CoroutineError] and recorded,
// never propagated back to the submitter — Executor.Submit has no error
// channel.
type PoolDispatchExecutor struct {
	pool *WorkerPool
}

// NewPoolDispatchExecutor starts a [WorkerPool] with n workers and wraps
// it as an [Executor]. The pool, and therefore the executor, keeps
// running until Close is called.
func NewPoolDispatchExecutor(n int, opts ...PoolOption) *PoolDispatchExecutor {
	return &PoolDispatchExecutor{pool: NewWorkerPool(context.Background(), n, opts...)}
}

func (e *PoolDispatchExecutor) Submit(fn func()) {
	// Submit blocks only until the bounded queue accepts fn, never
	// until fn runs — that is the "no join" half of the contract.
	_ = e.pool.Submit(func() error {
		fn()
		return nil
	})
}

// Stats returns the underlying pool's activity snapshot.
func (e *PoolDispatchExecutor) Stats() PoolStats { return e.pool.Stats() }

// Close drains the pool, waiting for in-flight work to finish.
func (e *PoolDispatchExecutor) Close() error { return e.pool.Close() }
