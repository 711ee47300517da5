package gocoro

import (
	"context"
	"sync"

	"github.com/coropkg/gocoro/chanx"
)

// readerWaiter is a parked [ReaderAwaiter]'s bookkeeping: a one-shot slot
// the matching algorithm publishes into, and the Executor that slot's
// delivery must be routed through.
type readerWaiter[T any] struct {
	resultCh chan Result[T]
	executor Executor
}

// writerWaiter is a parked [WriterAwaiter]'s bookkeeping: the value it is
// trying to deposit, a one-shot ack slot, and its owning Executor.
type writerWaiter[T any] struct {
	value    T
	ackCh    chan error
	executor Executor
}

// Channel is a bounded rendezvous/FIFO queue. Capacity 0 makes it a pure
// rendezvous channel: a write and a read must meet directly, neither
// completing until the other arrives. Readers and writers that cannot be
// matched immediately park on FIFO waitlists and are woken by submitting
// their resumption to the Executor bound to the [Coroutine] that issued
// the call, not to whichever goroutine performed the match.
type Channel[T any] struct {
	mu       sync.Mutex
	capacity int
	buffer   []T

	writerWaiters []*writerWaiter[T]
	readerWaiters []*readerWaiter[T]
	active        bool
}

// NewChannel creates a Channel with the given capacity. A capacity of 0
// is a pure rendezvous channel.
func NewChannel[T any](capacity int) *Channel[T] {
	if capacity < 0 {
		panic("gocoro: channel capacity must be non-negative")
	}
	return &Channel[T]{capacity: capacity, active: true}
}

// Write parks the calling coroutine (via co's Executor) until v is either
// handed directly to a waiting reader, deposited in the buffer, or the
// channel closes. It returns [ErrChannelClosed] if the channel was
// already inactive on arrival or closes while this write is parked, or
// ctx's error if ctx is cancelled first.
func (ch *Channel[T]) Write(ctx context.Context, co *Coroutine, v T) error {
	ch.mu.Lock()

	if !ch.active {
		ch.mu.Unlock()
		return ErrChannelClosed
	}

	if len(ch.readerWaiters) > 0 {
		r := ch.readerWaiters[0]
		ch.readerWaiters = ch.readerWaiters[1:]
		ch.mu.Unlock()
		deliverReader(r, Result[T]{Value: v})
		return nil
	}

	if len(ch.buffer) < ch.capacity {
		ch.buffer = append(ch.buffer, v)
		ch.mu.Unlock()
		return nil
	}

	w := &writerWaiter[T]{value: v, ackCh: make(chan error, 1), executor: co.Executor()}
	ch.writerWaiters = append(ch.writerWaiters, w)
	ch.mu.Unlock()

	ack, _, err := chanx.Recv(ctx, w.ackCh)
	if err != nil {
		ch.removeWriter(w)
		return err
	}
	return ack
}

// Read parks the calling coroutine until a value is available — from the
// buffer, from a directly-handed-off writer, or via a closed failure. It
// returns ctx's error if ctx is cancelled while parked.
func (ch *Channel[T]) Read(ctx context.Context, co *Coroutine) (T, error) {
	var zero T

	ch.mu.Lock()

	if !ch.active {
		ch.mu.Unlock()
		return zero, ErrChannelClosed
	}

	if len(ch.buffer) > 0 {
		u := ch.buffer[0]
		ch.buffer = ch.buffer[1:]

		if len(ch.writerWaiters) > 0 {
			w := ch.writerWaiters[0]
			ch.writerWaiters = ch.writerWaiters[1:]
			ch.buffer = append(ch.buffer, w.value)
			ch.mu.Unlock()
			deliverWriter(w, nil)
			return u, nil
		}

		ch.mu.Unlock()
		return u, nil
	}

	if len(ch.writerWaiters) > 0 {
		w := ch.writerWaiters[0]
		ch.writerWaiters = ch.writerWaiters[1:]
		ch.mu.Unlock()
		deliverWriter(w, nil)
		return w.value, nil
	}

	r := &readerWaiter[T]{resultCh: make(chan Result[T], 1), executor: co.Executor()}
	ch.readerWaiters = append(ch.readerWaiters, r)
	ch.mu.Unlock()

	res, _, err := chanx.Recv(ctx, r.resultCh)
	if err != nil {
		ch.removeReader(r)
		return zero, err
	}
	return res.Value, res.Err
}

// Close transitions the channel from active to inactive exactly once,
// resuming every party parked at that moment with [ErrChannelClosed] and
// clearing the buffer. Close on an already-closed channel is a no-op.
func (ch *Channel[T]) Close() {
	ch.mu.Lock()
	if !ch.active {
		ch.mu.Unlock()
		return
	}
	ch.active = false
	readers := ch.readerWaiters
	writers := ch.writerWaiters
	ch.readerWaiters = nil
	ch.writerWaiters = nil
	ch.buffer = nil
	ch.mu.Unlock()

	// Resumption happens outside the lock so the target Executor may
	// re-enter this channel (e.g. a resumed reader immediately reading
	// again) without recursive lock acquisition.
	for _, r := range readers {
		deliverReader(r, Result[T]{Err: ErrChannelClosed})
	}
	for _, w := range writers {
		deliverWriter(w, ErrChannelClosed)
	}
}

// IsActive reports whether the channel has not yet been closed.
func (ch *Channel[T]) IsActive() bool {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.active
}

func (ch *Channel[T]) removeReader(target *readerWaiter[T]) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	for i, r := range ch.readerWaiters {
		if r == target {
			ch.readerWaiters = append(ch.readerWaiters[:i], ch.readerWaiters[i+1:]...)
			return
		}
	}
}

func (ch *Channel[T]) removeWriter(target *writerWaiter[T]) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	for i, w := range ch.writerWaiters {
		if w == target {
			ch.writerWaiters = append(ch.writerWaiters[:i], ch.writerWaiters[i+1:]...)
			return
		}
	}
}

// deliverReader routes a reader's result through its bound Executor, the
// resumption-routing rule every channel awaiter obeys: a coroutine always
// continues on its owning Executor, regardless of which goroutine drove
// the match. The hand-off itself goes through [chanx.Send] rather than a
// bare send expression — resultCh is only ever delivered to once, but
// chanx.Send is the same context-aware send [Channel.Write]/[Channel.Read]
// already pair it with on the receiving end via [chanx.Recv].
func deliverReader[T any](r *readerWaiter[T], res Result[T]) {
	r.executor.Submit(func() { _ = chanx.Send(context.Background(), r.resultCh, res) })
}

func deliverWriter[T any](w *writerWaiter[T], err error) {
	w.executor.Submit(func() { _ = chanx.Send(context.Background(), w.ackCh, err) })
}
