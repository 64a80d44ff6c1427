package simulation

import (
	"testing"
	"time"

	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClock() *eventloop.Virtual {
	return eventloop.NewVirtual(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestRun_IngestionSequence(t *testing.T) {
	v := newClock()
	var events []string
	var progress []int

	run := NewEngine(v).Run(IngestionSteps(),
		func(p int, msg string) {
			progress = append(progress, p)
			events = append(events, msg)
		},
		func() { events = append(events, "complete") })

	require.Equal(t, []int{20}, progress, "first step runs before Run returns")

	v.Advance(10 * time.Second)

	assert.Equal(t, []int{20, 40, 65, 85, 100}, progress)
	require.Len(t, events, 6)
	assert.Equal(t, "Processing complete!", events[4])
	assert.Equal(t, "complete", events[5])
	assert.True(t, run.Done())
	assert.Equal(t, 5, run.Cursor())
	assert.Equal(t, 0, v.Pending())
}

func TestRun_StepTiming(t *testing.T) {
	v := newClock()
	var progress []int
	completed := 0

	NewEngine(v).Run(IngestionSteps(),
		func(p int, _ string) { progress = append(progress, p) },
		func() { completed++ })

	v.Advance(799 * time.Millisecond)
	assert.Equal(t, []int{20}, progress)
	v.Advance(time.Millisecond)
	assert.Equal(t, []int{20, 40}, progress)

	// 800+1000+900+700+300 = 3.7s of steps, then the trailing 500ms.
	v.Advance(2900*time.Millisecond - time.Millisecond)
	assert.Len(t, progress, 5)
	assert.Equal(t, 0, completed)

	v.Advance(500 * time.Millisecond)
	assert.Equal(t, 0, completed)
	v.Advance(time.Millisecond)
	assert.Equal(t, 1, completed)

	v.Advance(time.Minute)
	assert.Equal(t, 1, completed)
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 4200*time.Millisecond, Total(IngestionSteps()))
}

func TestRun_IndependentRuns(t *testing.T) {
	v := newClock()
	e := NewEngine(v)
	var a, b []int

	e.Run(IngestionSteps(), func(p int, _ string) { a = append(a, p) }, nil)
	v.Advance(time.Second)
	e.Run(IngestionSteps(), func(p int, _ string) { b = append(b, p) }, nil)
	v.Advance(time.Minute)

	assert.Equal(t, []int{20, 40, 65, 85, 100}, a)
	assert.Equal(t, []int{20, 40, 65, 85, 100}, b)
}

func TestRun_NoSteps(t *testing.T) {
	v := newClock()
	done := false
	NewEngine(v).Run(nil, nil, func() { done = true })

	v.Advance(TrailingDelay)
	assert.True(t, done)
}

// seq returns its values in order, then repeats the last one.
type seq struct {
	vals []float64
	i    int
}

func (s *seq) Float64() float64 {
	v := s.vals[s.i]
	if s.i < len(s.vals)-1 {
		s.i++
	}
	return v
}

func TestAccelerator_Deterministic(t *testing.T) {
	v := newClock()
	a := NewAccelerator(v, &seq{vals: []float64{0.5, 0.9, 0.0, 0.99, 0.8}})
	var ticks []float64
	completed := 0

	a.Start(func(p float64) { ticks = append(ticks, p) }, func() { completed++ })

	// 65 -> 70 -> 79 -> 79 -> 88.9 -> 96.9 -> 104.9 (clamped)
	v.Advance(10 * time.Second)

	require.Len(t, ticks, 7)
	assert.Equal(t, 65.0, ticks[0])
	assert.InDelta(t, 70.0, ticks[1], 1e-9)
	assert.InDelta(t, 79.0, ticks[2], 1e-9)
	assert.InDelta(t, 79.0, ticks[3], 1e-9)
	assert.InDelta(t, 88.9, ticks[4], 1e-9)
	assert.InDelta(t, 96.9, ticks[5], 1e-9)
	assert.Equal(t, 100.0, ticks[6])
	assert.Equal(t, 1, completed)
	assert.False(t, a.Running())
	assert.Equal(t, 0, v.Pending())

	for i := 1; i < len(ticks); i++ {
		assert.GreaterOrEqual(t, ticks[i], ticks[i-1], "progress must not decrease")
	}
}

func TestAccelerator_TickInterval(t *testing.T) {
	v := newClock()
	a := NewAccelerator(v, &seq{vals: []float64{0.1}})
	n := 0
	a.Start(func(float64) { n++ }, nil)

	v.Advance(ReportTick - time.Millisecond)
	assert.Equal(t, 1, n)
	v.Advance(time.Millisecond)
	assert.Equal(t, 2, n)
}

func TestAccelerator_CancelRestoresStart(t *testing.T) {
	v := newClock()
	a := NewAccelerator(v, &seq{vals: []float64{0.5}})
	completed := 0
	a.Start(nil, func() { completed++ })

	v.Advance(3 * ReportTick)
	assert.Greater(t, a.Progress(), ReportStart)

	assert.True(t, a.Cancel())
	assert.Equal(t, ReportStart, a.Progress())
	assert.False(t, a.Running())

	v.Advance(time.Minute)
	assert.Equal(t, 0, completed)
	assert.False(t, a.Cancel(), "cancel when idle")
}

func TestAccelerator_RestartReplacesRun(t *testing.T) {
	v := newClock()
	a := NewAccelerator(v, &seq{vals: []float64{1.0}})
	completed := 0

	a.Start(nil, func() { completed++ })
	v.Advance(ReportTick)
	a.Start(nil, func() { completed++ })
	v.Advance(time.Minute)

	assert.Equal(t, 1, completed)
}
