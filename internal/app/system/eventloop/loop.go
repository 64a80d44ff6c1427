// internal/app/system/eventloop/loop.go
package eventloop

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// ErrStopped is returned by Do when the loop is not running.
var ErrStopped = errors.New("eventloop: loop is not running")

// queueSize bounds the number of callbacks waiting for a turn.
const queueSize = 256

type timer struct {
	t      *time.Timer
	period time.Duration
	fn     func()
}

// Loop is the production scheduler. One goroutine drains a FIFO queue of
// callbacks; timers fire on the runtime timer goroutines and only enqueue
// their work, so callbacks never run concurrently.
type Loop struct {
	logger *zap.Logger
	queue  chan func()

	mu     sync.Mutex
	timers map[TimerID]*timer
	nextID atomic.Uint64

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
	turns   atomic.Int64
}

// New creates a new, stopped Loop.
func New(logger *zap.Logger) *Loop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loop{
		logger: logger,
		queue:  make(chan func(), queueSize),
		timers: make(map[TimerID]*timer),
	}
}

// Start begins draining the queue.
// Call Stop to gracefully shutdown.
func (l *Loop) Start() {
	if !l.running.CompareAndSwap(false, true) {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})

	go l.run(ctx)

	l.logger.Info("event loop started")
}

// Stop cancels all timers and stops the loop within the given context's
// deadline. If ctx is cancelled before the loop exits, it returns ctx.Err().
func (l *Loop) Stop(ctx context.Context) error {
	if !l.running.CompareAndSwap(true, false) {
		return nil
	}

	l.mu.Lock()
	pending := len(l.timers)
	for id, t := range l.timers {
		t.t.Stop()
		delete(l.timers, id)
	}
	l.mu.Unlock()

	l.cancel()

	select {
	case <-l.done:
		l.logger.Info("event loop stopped gracefully",
			zap.Int("timers_cancelled", pending),
			zap.Int64("turns", l.turns.Load()))
		return nil
	case <-ctx.Done():
		l.logger.Warn("event loop shutdown timed out",
			zap.Int("queued", len(l.queue)))
		return ctx.Err()
	}
}

// run executes queued callbacks one at a time.
func (l *Loop) run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.queue:
			l.execute(fn)
		}
	}
}

// execute runs a single callback, recovering panics so one faulty callback
// cannot end the session.
func (l *Loop) execute(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			l.logger.Error("event loop callback panicked", zap.Any("panic", rec))
		}
	}()
	l.turns.Add(1)
	fn()
}

// Now returns the wall clock time.
func (l *Loop) Now() time.Time {
	return time.Now()
}

// Post runs fn on the next turn of the loop.
func (l *Loop) Post(fn func()) {
	if !l.running.Load() {
		l.logger.Debug("post on stopped event loop dropped")
		return
	}
	select {
	case l.queue <- fn:
	default:
		// Full queue; a callback posting to its own loop must not block.
		l.logger.Warn("event loop queue full, deferring callback")
		done := l.done
		go func() {
			select {
			case l.queue <- fn:
			case <-done:
			}
		}()
	}
}

// After runs fn once, d from now.
func (l *Loop) After(d time.Duration, fn func()) TimerID {
	return l.schedule(d, 0, fn)
}

// Every runs fn every d until cancelled.
func (l *Loop) Every(d time.Duration, fn func()) TimerID {
	return l.schedule(d, d, fn)
}

func (l *Loop) schedule(d, period time.Duration, fn func()) TimerID {
	id := TimerID(l.nextID.Add(1))
	t := &timer{period: period, fn: fn}

	l.mu.Lock()
	t.t = time.AfterFunc(d, func() { l.fire(id) })
	l.timers[id] = t
	l.mu.Unlock()

	return id
}

// fire runs on a runtime timer goroutine and hands the callback to the loop.
// The liveness check happens again on the loop so a Cancel issued from a
// callback suppresses a firing that was already queued.
func (l *Loop) fire(id TimerID) {
	l.Post(func() {
		l.mu.Lock()
		t, ok := l.timers[id]
		if ok {
			if t.period > 0 {
				t.t = time.AfterFunc(t.period, func() { l.fire(id) })
			} else {
				delete(l.timers, id)
			}
		}
		l.mu.Unlock()

		if ok {
			t.fn()
		}
	})
}

// Cancel stops a pending timer. It reports whether the timer was live.
func (l *Loop) Cancel(id TimerID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.timers[id]
	if !ok {
		return false
	}
	t.t.Stop()
	delete(l.timers, id)
	return true
}

// Running reports whether the loop is draining its queue.
func (l *Loop) Running() bool {
	return l.running.Load()
}

// Turns reports how many callbacks the loop has run.
func (l *Loop) Turns() int64 {
	return l.turns.Load()
}

// Pending reports the number of live timers.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.timers)
}

// Do runs fn on the loop and waits until it has returned.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	if !l.running.Load() {
		return ErrStopped
	}
	done := make(chan struct{})
	task := func() {
		defer close(done)
		fn()
	}

	select {
	case l.queue <- task:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
