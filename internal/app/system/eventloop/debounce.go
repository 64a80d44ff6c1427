// internal/app/system/eventloop/debounce.go
package eventloop

import "time"

// Debouncer coalesces bursts of triggers into a single call made once the
// quiet period has elapsed without a further trigger.
type Debouncer struct {
	s       Scheduler
	quiet   time.Duration
	fn      func()
	pending TimerID
}

// NewDebouncer creates a Debouncer that calls fn after quiet.
func NewDebouncer(s Scheduler, quiet time.Duration, fn func()) *Debouncer {
	return &Debouncer{s: s, quiet: quiet, fn: fn}
}

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() {
	if d.pending != 0 {
		d.s.Cancel(d.pending)
	}
	d.pending = d.s.After(d.quiet, func() {
		d.pending = 0
		d.fn()
	})
}

// Cancel drops a pending call, if any.
func (d *Debouncer) Cancel() {
	if d.pending != 0 {
		d.s.Cancel(d.pending)
		d.pending = 0
	}
}
