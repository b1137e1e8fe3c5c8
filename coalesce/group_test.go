package coalesce

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SingleCaller(t *testing.T) {
	g := NewGroup[string]()

	got, coalesced, err := g.Do(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "result", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "result", got)
	assert.False(t, coalesced)
	assert.Equal(t, 0, g.PendingCount())
}

func TestDo_ConcurrentCallersShareOneExecution(t *testing.T) {
	g := NewGroup[int]()

	const n = 20
	var executions atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})

	results := make([]int, n)
	coalesced := make([]bool, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], coalesced[i], errs[i] = g.Do(context.Background(), "k", func(ctx context.Context) (int, error) {
				executions.Add(1)
				close(started)
				<-release
				return 42, nil
			})
		}(i)
	}

	// Wait for the leader to be inside the handler and every other
	// caller to attach, then let the execution finish.
	<-started
	require.Eventually(t, func() bool { return g.Waiters("k") == n-1 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), executions.Load())
	attached := 0
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 42, results[i])
		if coalesced[i] {
			attached++
		}
	}
	assert.Equal(t, n-1, attached)
	assert.Equal(t, 0, g.PendingCount())
}

func TestDo_ErrorSharedByAllWaiters(t *testing.T) {
	g := NewGroup[string]()
	boom := errors.New("upstream unavailable")

	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = g.Do(context.Background(), "k", func(ctx context.Context) (string, error) {
				close(started)
				<-release
				return "", boom
			})
		}(i)
	}
	<-started
	require.Eventually(t, func() bool { return g.Waiters("k") == 4 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.Equal(t, boom, err)
	}
	assert.Equal(t, 0, g.PendingCount())
}

func TestDo_KeyReleasedAfterResolution(t *testing.T) {
	g := NewGroup[int]()
	var executions atomic.Int32

	run := func() {
		_, _, err := g.Do(context.Background(), "k", func(ctx context.Context) (int, error) {
			executions.Add(1)
			return 1, nil
		})
		require.NoError(t, err)
	}

	// Sequential identical requests each execute: no completed state is
	// retained by the group.
	run()
	run()
	assert.Equal(t, int32(2), executions.Load())
}

func TestDo_DistinctKeysDoNotCoalesce(t *testing.T) {
	g := NewGroup[int]()
	var executions atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	for _, key := range []string{"a", "b"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			g.Do(context.Background(), key, func(ctx context.Context) (int, error) {
				executions.Add(1)
				<-release
				return 0, nil
			})
		}(key)
	}
	// Both executions must be able to run simultaneously.
	assert.Eventually(t, func() bool { return executions.Load() == 2 }, time.Second, time.Millisecond)
	close(release)
	wg.Wait()
}

func TestDo_WaiterCancellationDoesNotCancelExecution(t *testing.T) {
	g := NewGroup[string]()

	started := make(chan struct{})
	release := make(chan struct{})

	// Leader holds the execution open.
	leaderDone := make(chan struct{})
	go func() {
		defer close(leaderDone)
		got, coalesced, err := g.Do(context.Background(), "k", func(ctx context.Context) (string, error) {
			close(started)
			<-release
			// The execution's context must survive any waiter bailing out.
			assert.NoError(t, ctx.Err())
			return "done", nil
		})
		assert.NoError(t, err)
		assert.False(t, coalesced)
		assert.Equal(t, "done", got)
	}()

	<-started
	ctx, cancel := context.WithCancel(context.Background())
	waiterDone := make(chan struct{})
	go func() {
		defer close(waiterDone)
		_, coalesced, err := g.Do(ctx, "k", func(ctx context.Context) (string, error) {
			t.Error("waiter must not start a second execution")
			return "", nil
		})
		assert.True(t, coalesced)
		assert.ErrorIs(t, err, context.Canceled)
	}()

	require.Eventually(t, func() bool { return g.Waiters("k") == 1 }, time.Second, time.Millisecond)
	cancel()
	<-waiterDone

	// The shared execution is still pending and completes normally.
	assert.Equal(t, 1, g.PendingCount())
	close(release)
	<-leaderDone
	assert.Equal(t, 0, g.PendingCount())
}

func TestDo_LeaderContextDetached(t *testing.T) {
	g := NewGroup[string]()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // already canceled before the call

	got, coalesced, err := g.Do(ctx, "k", func(ctx context.Context) (string, error) {
		// fn runs under a detached context.
		return "ok", ctx.Err()
	})
	require.NoError(t, err)
	assert.False(t, coalesced)
	assert.Equal(t, "ok", got)
}
