package gocoro

import (
	"context"
	"sync"
)

// Semaphore bounds concurrency — most concretely for
// [github.com/coropkg/gocoro/group.SpawnBounded], which caps how many
// coroutines may be in flight against a shared [Executor] at once. It is
// context-aware: Acquire unblocks if the context is cancelled.
//
// Unlike a semaphore built on a buffered Go channel — where every
// blocked sender races the runtime scheduler for whichever slot frees
// next, with no ordering guarantee — Semaphore parks blocked acquirers
// on an explicit FIFO waitlist and hands a freed slot straight to the
// longest-waiting one, the same waitlist-and-direct-handoff shape
// [Channel] uses for its own parked readers and writers.
type Semaphore struct {
	mu        sync.Mutex
	available int
	cap       int
	waiters   []chan struct{}
}

// NewSemaphore creates a semaphore with the given capacity.
// Panics if n <= 0.
func NewSemaphore(n int) *Semaphore {
	if n <= 0 {
		panic("gocoro: NewSemaphore requires n > 0")
	}
	return &Semaphore{available: n, cap: n}
}

// Acquire blocks until a slot is available or ctx is cancelled.
// Returns ctx.Err() on cancellation, nil on success.
func (s *Semaphore) Acquire(ctx context.Context) error {
	s.mu.Lock()
	if s.available > 0 {
		s.available--
		s.mu.Unlock()
		return nil
	}
	w := make(chan struct{})
	s.waiters = append(s.waiters, w)
	s.mu.Unlock()

	select {
	case <-w:
		return nil
	case <-ctx.Done():
		s.cancelWaiter(w)
		return ctx.Err()
	}
}

// cancelWaiter removes w from the waitlist. If w is no longer there, a
// concurrent Release already popped it and is in the process of handing
// it the slot — cancelWaiter waits for that handoff to land and then
// immediately releases the slot back to the pool, so a slot is never
// leaked to a cancellation that loses the race against a Release.
func (s *Semaphore) cancelWaiter(w chan struct{}) {
	s.mu.Lock()
	for i, waiter := range s.waiters {
		if waiter == w {
			s.waiters = append(s.waiters[:i], s.waiters[i+1:]...)
			s.mu.Unlock()
			return
		}
	}
	s.mu.Unlock()

	<-w
	s.Release()
}

// TryAcquire attempts to acquire a slot without blocking.
// Returns true if acquired, false otherwise.
func (s *Semaphore) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.available > 0 {
		s.available--
		return true
	}
	return false
}

// Release releases a slot, handing it directly to the longest-waiting
// [Semaphore.Acquire] if one is parked. Panics if more slots are
// released than acquired.
func (s *Semaphore) Release() {
	s.mu.Lock()
	if len(s.waiters) > 0 {
		w := s.waiters[0]
		s.waiters = s.waiters[1:]
		s.mu.Unlock()
		close(w)
		return
	}
	if s.available >= s.cap {
		s.mu.Unlock()
		panic("gocoro: Semaphore.Release called without matching Acquire")
	}
	s.available++
	s.mu.Unlock()
}

// Available returns the number of available slots.
// The value may be stale in concurrent contexts.
func (s *Semaphore) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.available
}
