package gocoro_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coropkg/gocoro"
)

// S2: a delayed sum whose elapsed wall-clock time lands within
// [600ms, 800ms] for a 700ms sleep.
func TestCoroutine_SleepElapsedWithinWindow(t *testing.T) {
	exec := gocoro.NewOneShotThreadExecutor()

	start := time.Now()
	task := gocoro.Spawn(exec, func(co *gocoro.Coroutine) (int, error) {
		co.Sleep(700 * time.Millisecond)
		return 3 + 4, nil
	})

	v, err := task.Wait()
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.GreaterOrEqual(t, elapsed, 600*time.Millisecond)
	assert.LessOrEqual(t, elapsed, 800*time.Millisecond)
}

// S6: deadlines 50,500,100,200,1000,300ms for items A..F must fire in
// order A, C, D, F, B, E.
func TestDelayedScheduler_OrdersByDeadline(t *testing.T) {
	sched := gocoro.NewDelayedScheduler()
	defer func() {
		sched.Shutdown(true)
		sched.Join()
	}()

	type entry struct {
		name  string
		delay time.Duration
	}
	entries := []entry{
		{"A", 50 * time.Millisecond},
		{"B", 500 * time.Millisecond},
		{"C", 100 * time.Millisecond},
		{"D", 200 * time.Millisecond},
		{"E", 1000 * time.Millisecond},
		{"F", 300 * time.Millisecond},
	}

	var mu sync.Mutex
	var fired []string
	var wg sync.WaitGroup
	wg.Add(len(entries))

	for _, e := range entries {
		e := e
		sched.Schedule(func() {
			mu.Lock()
			fired = append(fired, e.name)
			mu.Unlock()
			wg.Done()
		}, e.delay)
	}

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"A", "C", "D", "F", "B", "E"}, fired)
}

func TestDelayedScheduler_NegativeDelayClampedToZero(t *testing.T) {
	sched := gocoro.NewDelayedScheduler()
	defer func() {
		sched.Shutdown(true)
		sched.Join()
	}()

	done := make(chan struct{})
	sched.Schedule(func() { close(done) }, -5*time.Second)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("negative delay was not clamped to zero")
	}
}

func TestDelayedScheduler_ShutdownFalseDropsQueuedWork(t *testing.T) {
	sched := gocoro.NewDelayedScheduler()

	var ran bool
	sched.Schedule(func() { ran = true }, time.Hour)
	sched.Shutdown(false)
	sched.Join()

	assert.False(t, ran)
}

func TestDelayedScheduler_ShutdownTrueDrainsQueuedWork(t *testing.T) {
	sched := gocoro.NewDelayedScheduler()

	done := make(chan struct{})
	sched.Schedule(func() { close(done) }, 10*time.Millisecond)
	sched.Shutdown(true)
	sched.Join()

	select {
	case <-done:
	default:
		t.Fatal("waitForComplete=true should have drained the queued item before exit")
	}
}
