package gocoro

import "github.com/sourcegraph/conc"

// Executor decides where a submitted closure eventually runs: inline, on
// a fresh goroutine, on a background pool, or on a dedicated loop. Submit
// must not block the submitter beyond a brief internal lock; it carries
// no return value and no error channel — a coroutine's own body is
// responsible for turning a panic into a failed [Result].
type Executor interface {
	Submit(fn func())
}

// InlineExecutor runs every submitted closure synchronously on the
// submitter's own goroutine. It is the simplest Executor and the one most
// likely to deadlock if a coroutine awaits something that can only
// resume via the same Executor it is currently blocking.
type InlineExecutor struct{}

// NewInlineExecutor returns an [InlineExecutor]. It carries no state, so
// a single value may be shared freely.
func NewInlineExecutor() *InlineExecutor { return &InlineExecutor{} }

func (InlineExecutor) Submit(fn func()) { fn() }

// OneShotThreadExecutor spawns a fresh goroutine per submission and joins
// it before Submit returns. A panic inside fn is recovered so it cannot
// crash the submitter; Submit does not surface it — callers that need the
// panic observed should recover and convert it inside fn themselves (as
// every [Task]'s coroutine body does).
//
// The join itself is delegated to [conc.WaitGroup], whose Go/Wait pair
// already does the recover-and-rejoin dance this executor needs; Submit
// just discards the panic conc.WaitGroup.Wait would otherwise re-raise,
// since an Executor has no caller to re-raise it to.
type OneShotThreadExecutor struct{}

// NewOneShotThreadExecutor returns a [OneShotThreadExecutor].
func NewOneShotThreadExecutor() *OneShotThreadExecutor { return &OneShotThreadExecutor{} }

func (OneShotThreadExecutor) Submit(fn func()) {
	wg := conc.NewWaitGroup()
	wg.Go(fn)
	func() {
		defer func() { _ = recover() }()
		wg.Wait()
	}()
}

// workStealingExecutor is the declared-but-unimplemented variant named in
// the source design: a future extension, not a requirement of it.
type workStealingExecutor struct{}

// NewWorkStealingExecutor returns an [Executor] whose Submit always
// panics with [ErrNotImplemented]. The source design for this runtime
// names a work-stealing executor variant but leaves its algorithm
// unspecified; this stub preserves that gap instead of inventing a
// stealing strategy the design never described.
func NewWorkStealingExecutor() Executor { return workStealingExecutor{} }

func (workStealingExecutor) Submit(func()) { panic(ErrNotImplemented) }
