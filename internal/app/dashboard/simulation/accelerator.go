// internal/app/dashboard/simulation/accelerator.go
package simulation

import (
	"time"

	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
)

// Report accelerator defaults.
const (
	ReportStart     = 65.0
	ReportTick      = 300 * time.Millisecond
	ReportIncrement = 10.0
)

// RandSource supplies increments in [0, 1). *math/rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// Accelerator drives a progress value upward by random increments until it
// reaches 100. At most one sequence is in flight.
type Accelerator struct {
	s    eventloop.Scheduler
	rnd  RandSource
	tick time.Duration

	timer    eventloop.TimerID
	progress float64
}

// NewAccelerator creates an Accelerator ticking every ReportTick.
func NewAccelerator(s eventloop.Scheduler, rnd RandSource) *Accelerator {
	return &Accelerator{s: s, rnd: rnd, tick: ReportTick, progress: ReportStart}
}

// Start begins a sequence at ReportStart, cancelling one in flight.
// onTick receives the displayed value right away and after every tick; it
// never exceeds 100. onComplete runs once, on the first tick at or above 100.
func (a *Accelerator) Start(onTick func(progress float64), onComplete func()) {
	a.Cancel()
	a.progress = ReportStart
	if onTick != nil {
		onTick(a.progress)
	}

	var id eventloop.TimerID
	id = a.s.Every(a.tick, func() {
		if a.timer != id {
			return
		}
		a.progress += a.rnd.Float64() * ReportIncrement
		reached := a.progress >= 100
		if reached {
			a.progress = 100
		}
		if onTick != nil {
			onTick(a.progress)
		}
		if reached {
			a.s.Cancel(id)
			a.timer = 0
			if onComplete != nil {
				onComplete()
			}
		}
	})
	a.timer = id
}

// Cancel stops a sequence in flight and restores the starting value.
// It reports whether a sequence was running.
func (a *Accelerator) Cancel() bool {
	running := a.timer != 0
	if running {
		a.s.Cancel(a.timer)
		a.timer = 0
	}
	a.progress = ReportStart
	return running
}

// Running reports whether a sequence is in flight.
func (a *Accelerator) Running() bool {
	return a.timer != 0
}

// Progress returns the current displayed value.
func (a *Accelerator) Progress() float64 {
	return a.progress
}
