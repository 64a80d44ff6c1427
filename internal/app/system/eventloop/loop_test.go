package eventloop_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"go.uber.org/zap"
)

func startLoop(t *testing.T) *eventloop.Loop {
	t.Helper()
	loop := eventloop.New(zap.NewNop())
	loop.Start()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loop.Stop(ctx)
	})
	return loop
}

func TestLoop_StartAndStop(t *testing.T) {
	loop := eventloop.New(zap.NewNop())
	loop.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := loop.Stop(ctx); err != nil {
		t.Errorf("Stop() returned error: %v", err)
	}

	// Stopping twice is harmless
	if err := loop.Stop(ctx); err != nil {
		t.Errorf("second Stop() returned error: %v", err)
	}
}

func TestLoop_DoRunsOnLoop(t *testing.T) {
	loop := startLoop(t)

	var ran bool
	if err := loop.Do(context.Background(), func() { ran = true }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !ran {
		t.Error("Do() returned before fn ran")
	}
}

func TestLoop_DoOnStoppedLoop(t *testing.T) {
	loop := eventloop.New(zap.NewNop())

	err := loop.Do(context.Background(), func() {})
	if err != eventloop.ErrStopped {
		t.Errorf("Do() error = %v, want %v", err, eventloop.ErrStopped)
	}
}

func TestLoop_PostPreservesOrder(t *testing.T) {
	loop := startLoop(t)

	var got []int
	for i := 0; i < 5; i++ {
		i := i
		loop.Post(func() { got = append(got, i) })
	}

	// Do queues behind the posts
	var snapshot []int
	if err := loop.Do(context.Background(), func() { snapshot = append(snapshot, got...) }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}

	for i, v := range snapshot {
		if v != i {
			t.Fatalf("callbacks ran out of order: %v", snapshot)
		}
	}
	if len(snapshot) != 5 {
		t.Errorf("ran %d callbacks, want 5", len(snapshot))
	}
}

func TestLoop_AfterFires(t *testing.T) {
	loop := startLoop(t)

	fired := make(chan struct{})
	loop.After(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("After callback never fired")
	}
}

func TestLoop_CancelPreventsFiring(t *testing.T) {
	loop := startLoop(t)

	var count atomic.Int32
	id := loop.After(20*time.Millisecond, func() { count.Add(1) })

	if !loop.Cancel(id) {
		t.Fatal("Cancel() = false for a live timer")
	}
	if loop.Cancel(id) {
		t.Error("Cancel() = true for an already cancelled timer")
	}

	time.Sleep(60 * time.Millisecond)
	if count.Load() != 0 {
		t.Errorf("cancelled timer fired %d times", count.Load())
	}
}

func TestLoop_EveryRepeats(t *testing.T) {
	loop := startLoop(t)

	var count atomic.Int32
	id := loop.Every(10*time.Millisecond, func() { count.Add(1) })

	deadline := time.Now().Add(2 * time.Second)
	for count.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	loop.Cancel(id)

	if count.Load() < 3 {
		t.Errorf("Every fired %d times, want at least 3", count.Load())
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d after cancel, want 0", loop.Pending())
	}
}

func TestLoop_PanicDoesNotStopLoop(t *testing.T) {
	loop := startLoop(t)

	loop.Post(func() { panic("boom") })

	var ran bool
	if err := loop.Do(context.Background(), func() { ran = true }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !ran {
		t.Error("loop did not survive a panicking callback")
	}
}

func TestLoop_NilLogger(t *testing.T) {
	loop := eventloop.New(nil)
	loop.Start()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var ran bool
	if err := loop.Do(ctx, func() { ran = true }); err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if !ran {
		t.Error("Do() did not run fn")
	}
	if err := loop.Stop(ctx); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
