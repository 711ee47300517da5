package gocoro_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coropkg/gocoro"
)

func TestSemaphore_BoundsConcurrency(t *testing.T) {
	sem := gocoro.NewSemaphore(2)

	var cur, max int32
	var mu sync.Mutex
	bump := func(d int32) {
		mu.Lock()
		cur += d
		if cur > max {
			max = cur
		}
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, sem.Acquire(context.Background()))
			bump(1)
			time.Sleep(5 * time.Millisecond)
			bump(-1)
			sem.Release()
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, max, int32(2))
}

func TestSemaphore_AcquireUnblocksOnCancel(t *testing.T) {
	sem := gocoro.NewSemaphore(1)
	require.NoError(t, sem.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := sem.Acquire(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSemaphore_TryAcquire(t *testing.T) {
	sem := gocoro.NewSemaphore(1)
	assert.True(t, sem.TryAcquire())
	assert.False(t, sem.TryAcquire())
	sem.Release()
	assert.True(t, sem.TryAcquire())
}

func TestSemaphore_ReleaseWithoutAcquirePanics(t *testing.T) {
	sem := gocoro.NewSemaphore(1)
	assert.Panics(t, sem.Release)
}

func TestSemaphore_NewSemaphorePanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { gocoro.NewSemaphore(0) })
}

func TestSemaphore_Available(t *testing.T) {
	sem := gocoro.NewSemaphore(3)
	assert.Equal(t, 3, sem.Available())
	require.NoError(t, sem.Acquire(context.Background()))
	assert.Equal(t, 2, sem.Available())
	sem.Release()
	assert.Equal(t, 3, sem.Available())
}
