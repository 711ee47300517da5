// Package chanx provides context-aware, goroutine-safe channel utilities
// used internally by [github.com/coropkg/gocoro] to signal across the
// goroutine boundaries that stand in for coroutine suspension points.
//
// Go channels are powerful but have sharp edges: sends to closed channels
// panic, blocked sends leak goroutines, and combining channels with
// context cancellation requires careful select statements.
//
// chanx provides two building blocks that handle these concerns:
//
//   - [Send] and [Recv]: context-aware send and receive that unblock on
//     cancellation instead of leaking goroutines. Channel's parked
//     readers and writers wait on their one-shot resumption channel via
//     Recv, and are delivered to via Send, on both ends of a suspension.
//   - [Closable]: an idempotent-close channel wrapper that converts
//     send-on-closed panics to errors, used wherever a wake-up or
//     notification channel may be closed concurrently with a send.
//     WorkerPool's task queue is a Closable: submitting work and closing
//     the pool race in exactly the way Closable exists to make safe.
package chanx
