// Package eventloop provides the single cooperative event loop that every
// dashboard component runs on.
//
// All component state is mutated from loop callbacks only. Simulated
// latency is expressed as scheduled callbacks (After, Every); nothing blocks
// the loop. Code outside the loop (HTTP handlers) marshals work onto it with
// Do.
package eventloop

import (
	"context"
	"time"
)

// TimerID identifies a scheduled callback. The zero value is never issued.
type TimerID uint64

// Scheduler is the scheduling contract shared by the production Loop and
// the Virtual clock used in tests.
type Scheduler interface {
	// Now returns the scheduler's notion of the current time.
	Now() time.Time

	// Post runs fn on the next turn of the loop.
	Post(fn func())

	// After runs fn once, d from now.
	After(d time.Duration, fn func()) TimerID

	// Every runs fn every d until cancelled.
	Every(d time.Duration, fn func()) TimerID

	// Cancel stops a pending timer. It reports whether the timer was live.
	Cancel(id TimerID) bool
}

// Executor runs a function on the loop and waits for it to finish.
type Executor interface {
	Do(ctx context.Context, fn func()) error
}
