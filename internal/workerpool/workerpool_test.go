package workerpool

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPool_RunsAllTasks(t *testing.T) {
	p := New(4)
	defer p.Stop()

	var n atomic.Int64
	const total = 100
	for i := 0; i < total; i++ {
		p.Enqueue(func() { n.Add(1) })
	}

	p.WaitIdle()
	require.EqualValues(t, total, n.Load())
}

func TestPool_WaitIdleAfterEmpty(t *testing.T) {
	p := New(2)
	defer p.Stop()

	p.WaitIdle() // no tasks yet, must return immediately

	done := make(chan struct{})
	go func() {
		defer close(done)
		p.WaitIdle()
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitIdle did not return on an already-idle pool")
	}
}

func TestPool_WaitIdleBlocksUntilInProgressDrains(t *testing.T) {
	p := New(1)
	defer p.Stop()

	release := make(chan struct{})
	started := make(chan struct{})
	p.Enqueue(func() {
		close(started)
		<-release
	})

	<-started

	idleReturned := make(chan struct{})
	go func() {
		p.WaitIdle()
		close(idleReturned)
	}()

	select {
	case <-idleReturned:
		t.Fatal("WaitIdle returned while a task was still in progress")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)

	select {
	case <-idleReturned:
	case <-time.After(time.Second):
		t.Fatal("WaitIdle did not return once the task finished")
	}
}

func TestPool_StopIsIdempotent(t *testing.T) {
	p := New(2)
	p.Stop()
	p.Stop()
}
