package group_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coropkg/gocoro"
	"github.com/coropkg/gocoro/group"
)

func spawnInt(exec gocoro.Executor, v int, err error) *gocoro.Task[int] {
	return gocoro.Spawn(exec, func(co *gocoro.Coroutine) (int, error) {
		return v, err
	})
}

func TestWaitAll_CollectsValuesInOrder(t *testing.T) {
	exec := gocoro.NewInlineExecutor()
	tasks := []*gocoro.Task[int]{
		spawnInt(exec, 1, nil),
		spawnInt(exec, 2, nil),
		spawnInt(exec, 3, nil),
	}

	vals, err := group.WaitAll(tasks)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, vals)
}

func TestWaitAll_FailFastReturnsFirstError(t *testing.T) {
	exec := gocoro.NewInlineExecutor()
	boom := errors.New("boom")
	tasks := []*gocoro.Task[int]{
		spawnInt(exec, 1, nil),
		spawnInt(exec, 0, boom),
		spawnInt(exec, 3, nil),
	}

	_, err := group.WaitAll(tasks)
	require.Error(t, err)
	var taskErr *group.TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, 1, taskErr.Index)
	assert.ErrorIs(t, err, boom)
}

func TestWaitAll_CollectPolicyJoinsAllErrors(t *testing.T) {
	exec := gocoro.NewInlineExecutor()
	boomA := errors.New("boom-a")
	boomB := errors.New("boom-b")
	tasks := []*gocoro.Task[int]{
		spawnInt(exec, 0, boomA),
		spawnInt(exec, 2, nil),
		spawnInt(exec, 0, boomB),
	}

	_, err := group.WaitAll(tasks, group.WithPolicy(group.Collect))
	require.Error(t, err)
	assert.ErrorIs(t, err, boomA)
	assert.ErrorIs(t, err, boomB)
}

func TestWaitAll_EmptyBatch(t *testing.T) {
	vals, err := group.WaitAll([]*gocoro.Task[int]{})
	require.NoError(t, err)
	assert.Empty(t, vals)
}

func TestRace_ReturnsFirstSuccess(t *testing.T) {
	exec := gocoro.NewOneShotThreadExecutor()
	slow := gocoro.Spawn(exec, func(co *gocoro.Coroutine) (int, error) {
		co.Sleep(0)
		return 1, nil
	})
	fast := spawnInt(gocoro.NewInlineExecutor(), 2, nil)

	v, err := group.Race([]*gocoro.Task[int]{slow, fast})
	require.NoError(t, err)
	assert.Contains(t, []int{1, 2}, v)
}

func TestRace_AllFailReturnsLastError(t *testing.T) {
	exec := gocoro.NewInlineExecutor()
	boom := errors.New("boom")
	tasks := []*gocoro.Task[int]{
		spawnInt(exec, 0, boom),
		spawnInt(exec, 0, boom),
	}

	_, err := group.Race(tasks)
	assert.ErrorIs(t, err, boom)
}

func TestRace_EmptyBatch(t *testing.T) {
	v, err := group.Race([]*gocoro.Task[int]{})
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestMapSlice_PreservesOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	out, err := group.MapSlice(items, func(v int) (int, error) {
		return v * v, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 4, 9, 16, 25}, out)
}

func TestMapSlice_AggregatesErrorsByIndex(t *testing.T) {
	boom := errors.New("boom")
	items := []int{1, 2, 3}
	_, err := group.MapSlice(items, func(v int) (int, error) {
		if v == 2 {
			return 0, boom
		}
		return v, nil
	})
	require.Error(t, err)
	var taskErr *group.TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Equal(t, 1, taskErr.Index)
}

func TestForEachSlice_VisitsEveryItem(t *testing.T) {
	items := []int{1, 2, 3, 4}
	var mu sync.Mutex
	seen := map[int]bool{}

	err := group.ForEachSlice(items, func(v int) error {
		mu.Lock()
		seen[v] = true
		mu.Unlock()
		return nil
	})
	require.NoError(t, err)
	for _, v := range items {
		assert.True(t, seen[v])
	}
}

func TestSpawnBounded_ReleasesSemaphoreOnCompletion(t *testing.T) {
	sem := gocoro.NewSemaphore(1)
	exec := gocoro.NewInlineExecutor()

	task, err := group.SpawnBounded(context.Background(), sem, exec, func(co *gocoro.Coroutine) (int, error) {
		return 5, nil
	})
	require.NoError(t, err)

	v, err := task.Wait()
	require.NoError(t, err)
	assert.Equal(t, 5, v)

	assert.Equal(t, 1, sem.Available())
}

func TestSpawnBounded_CancelledContextNeverSpawns(t *testing.T) {
	sem := gocoro.NewSemaphore(1)
	require.NoError(t, sem.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := group.SpawnBounded(ctx, sem, gocoro.NewInlineExecutor(), func(co *gocoro.Coroutine) (int, error) {
		t.Fatal("fn must not run when Acquire fails")
		return 0, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
