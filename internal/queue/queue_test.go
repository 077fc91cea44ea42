package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_RunsTask(t *testing.T) {
	lanes := New(zerolog.Nop())
	defer lanes.Close()

	done := make(chan struct{})
	lanes.Submit(1, func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task did not run")
	}
}

func TestSubmit_SameUserTasksRunInOrder(t *testing.T) {
	lanes := New(zerolog.Nop())
	defer lanes.Close()

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		i := i
		wg.Add(1)
		lanes.Submit(7, func(ctx context.Context) error {
			defer wg.Done()
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
	}
	wg.Wait()

	require.Len(t, order, 20)
	for i, got := range order {
		assert.Equal(t, i, got)
	}
}

func TestSubmit_DifferentUsersRunInParallel(t *testing.T) {
	lanes := New(zerolog.Nop())
	defer lanes.Close()

	blockerStarted := make(chan struct{})
	release := make(chan struct{})
	otherDone := make(chan struct{})

	lanes.Submit(1, func(ctx context.Context) error {
		close(blockerStarted)
		<-release
		return nil
	})

	<-blockerStarted

	lanes.Submit(2, func(ctx context.Context) error {
		close(otherDone)
		return nil
	})

	select {
	case <-otherDone:
		// User 2 completed while user 1's lane is still blocked.
	case <-time.After(time.Second):
		t.Fatal("second user's lane was blocked by the first user's task")
	}

	close(release)
}

func TestSubmit_SameUserTaskWaitsForPredecessor(t *testing.T) {
	lanes := New(zerolog.Nop())
	defer lanes.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	secondRan := make(chan struct{})

	lanes.Submit(1, func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started

	lanes.Submit(1, func(ctx context.Context) error {
		close(secondRan)
		return nil
	})

	select {
	case <-secondRan:
		t.Fatal("second task ran while the first still held the lane")
	case <-time.After(100 * time.Millisecond):
	}

	assert.Equal(t, 1, lanes.Pending(1))

	close(release)

	select {
	case <-secondRan:
	case <-time.After(time.Second):
		t.Fatal("second task never ran after the lane freed up")
	}
}

func TestClose_WaitsForRunningTasks(t *testing.T) {
	lanes := New(zerolog.Nop())

	var completed bool
	var mu sync.Mutex

	lanes.Submit(1, func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		completed = true
		mu.Unlock()
		return nil
	})

	require.NoError(t, lanes.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, completed)
}
