// Package simulation runs scripted, timed progress sequences that stand in
// for long-running work.
//
// Latency is expressed as scheduled callbacks on an eventloop.Scheduler, so
// a run never blocks the loop and tests drive it with a virtual clock.
package simulation

import (
	"time"

	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
)

// TrailingDelay is the pause between the last step and completion.
const TrailingDelay = 500 * time.Millisecond

// Step is one stage of a run.
type Step struct {
	Progress int // 0..100
	Message  string
	Duration time.Duration
}

// IngestionSteps returns the document ingestion script.
func IngestionSteps() []Step {
	return []Step{
		{Progress: 20, Message: "Scanning document structure...", Duration: 800 * time.Millisecond},
		{Progress: 40, Message: "Extracting emissions data...", Duration: 1000 * time.Millisecond},
		{Progress: 65, Message: "Identifying emission sources...", Duration: 900 * time.Millisecond},
		{Progress: 85, Message: "Categorizing by scope...", Duration: 700 * time.Millisecond},
		{Progress: 100, Message: "Processing complete!", Duration: 300 * time.Millisecond},
	}
}

// Total returns the nominal duration of steps including the trailing delay.
func Total(steps []Step) time.Duration {
	d := TrailingDelay
	for _, s := range steps {
		d += s.Duration
	}
	return d
}

// Engine starts runs on a scheduler. It holds no per-run state.
type Engine struct {
	s        eventloop.Scheduler
	trailing time.Duration
}

// NewEngine creates an Engine using TrailingDelay.
func NewEngine(s eventloop.Scheduler) *Engine {
	return &Engine{s: s, trailing: TrailingDelay}
}

// Run is the state of one started sequence.
type Run struct {
	s          eventloop.Scheduler
	steps      []Step
	trailing   time.Duration
	onStep     func(progress int, message string)
	onComplete func()

	cursor int
	done   bool
}

// Run starts steps. onStep is called for the first step before Run
// returns; each later step follows once the previous step's duration has
// elapsed. onComplete runs once, TrailingDelay after the last step.
func (e *Engine) Run(steps []Step, onStep func(progress int, message string), onComplete func()) *Run {
	r := &Run{
		s:          e.s,
		steps:      append([]Step(nil), steps...),
		trailing:   e.trailing,
		onStep:     onStep,
		onComplete: onComplete,
	}
	r.advance()
	return r
}

func (r *Run) advance() {
	if r.cursor >= len(r.steps) {
		r.s.After(r.trailing, r.complete)
		return
	}
	st := r.steps[r.cursor]
	if r.onStep != nil {
		r.onStep(st.Progress, st.Message)
	}
	r.s.After(st.Duration, func() {
		r.cursor++
		r.advance()
	})
}

func (r *Run) complete() {
	if r.done {
		return
	}
	r.done = true
	if r.onComplete != nil {
		r.onComplete()
	}
}

// Cursor returns the index of the current step; it equals the number of
// steps once the last one has elapsed.
func (r *Run) Cursor() int {
	return r.cursor
}

// Done reports whether onComplete has run.
func (r *Run) Done() bool {
	return r.done
}
