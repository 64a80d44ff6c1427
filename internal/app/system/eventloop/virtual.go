// internal/app/system/eventloop/virtual.go
package eventloop

import (
	"context"
	"sort"
	"time"
)

type virtualTimer struct {
	id     TimerID
	due    time.Time
	seq    uint64
	period time.Duration
	fn     func()
}

// Virtual is a manually advanced scheduler. Nothing runs until the test
// calls Flush or Advance, which makes timed sequences deterministic.
type Virtual struct {
	now    time.Time
	timers []*virtualTimer
	nextID TimerID
	seq    uint64
}

// NewVirtual returns a Virtual clock starting at start.
func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start}
}

// Now returns the virtual time.
func (v *Virtual) Now() time.Time {
	return v.now
}

// Post runs fn on the next Flush or Advance.
func (v *Virtual) Post(fn func()) {
	v.add(0, 0, fn)
}

// After runs fn once the clock has advanced by d.
func (v *Virtual) After(d time.Duration, fn func()) TimerID {
	return v.add(d, 0, fn)
}

// Every runs fn each time the clock crosses a multiple of d.
func (v *Virtual) Every(d time.Duration, fn func()) TimerID {
	return v.add(d, d, fn)
}

func (v *Virtual) add(d, period time.Duration, fn func()) TimerID {
	v.nextID++
	v.seq++
	v.timers = append(v.timers, &virtualTimer{
		id:     v.nextID,
		due:    v.now.Add(d),
		seq:    v.seq,
		period: period,
		fn:     fn,
	})
	return v.nextID
}

// Cancel removes a pending timer.
func (v *Virtual) Cancel(id TimerID) bool {
	for i, t := range v.timers {
		if t.id == id {
			v.timers = append(v.timers[:i], v.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Pending reports the number of scheduled callbacks, posted turns included.
func (v *Virtual) Pending() int {
	return len(v.timers)
}

// Flush runs every callback that is due at the current time, including
// callbacks posted by those callbacks.
func (v *Virtual) Flush() {
	v.Advance(0)
}

// Advance moves the clock forward by d, running due callbacks in order of
// due time and then scheduling order.
func (v *Virtual) Advance(d time.Duration) {
	target := v.now.Add(d)
	for {
		next := v.popDue(target)
		if next == nil {
			break
		}
		if next.due.After(v.now) {
			v.now = next.due
		}
		if next.period > 0 {
			v.seq++
			next.due = next.due.Add(next.period)
			next.seq = v.seq
			v.timers = append(v.timers, next)
		}
		next.fn()
	}
	v.now = target
}

// popDue removes and returns the earliest timer due at or before target.
func (v *Virtual) popDue(target time.Time) *virtualTimer {
	if len(v.timers) == 0 {
		return nil
	}
	sort.SliceStable(v.timers, func(i, j int) bool {
		if v.timers[i].due.Equal(v.timers[j].due) {
			return v.timers[i].seq < v.timers[j].seq
		}
		return v.timers[i].due.Before(v.timers[j].due)
	})
	first := v.timers[0]
	if first.due.After(target) {
		return nil
	}
	v.timers = v.timers[1:]
	return first
}

// Do runs fn immediately.
func (v *Virtual) Do(_ context.Context, fn func()) error {
	fn()
	return nil
}
