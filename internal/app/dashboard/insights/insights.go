// Package insights periodically injects synthetic AI insights into the
// activity feed.
package insights

import (
	"time"

	"github.com/dalemusser/strataesg/internal/app/dashboard/feed"
	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"go.uber.org/zap"
)

// DefaultInterval is the time between insights.
const DefaultInterval = 45 * time.Second

// Catalog is the fixed set of messages an insight is drawn from.
var Catalog = []string{
	"AI detected 8% reduction opportunity in Scope 2 emissions",
	"Energy consumption anomaly detected in Building A",
	"Supply chain emissions trending 3% below forecast",
	"New renewable energy tariff available in your region",
	"Business travel emissions up 12% vs last quarter",
}

// Picker chooses an index in [0, n). *math/rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
}

// Appender receives emitted insights.
type Appender interface {
	Append(text string, category feed.Category) feed.Entry
}

// Emitter owns at most one live periodic timer.
type Emitter struct {
	s        eventloop.Scheduler
	out      Appender
	pick     Picker
	interval time.Duration
	logger   *zap.Logger

	timer eventloop.TimerID
}

// New creates a stopped Emitter. A non-positive interval uses
// DefaultInterval.
func New(s eventloop.Scheduler, out Appender, pick Picker, interval time.Duration, logger *zap.Logger) *Emitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Emitter{s: s, out: out, pick: pick, interval: interval, logger: logger}
}

// Start schedules the periodic tick, replacing a live timer if there is one.
func (e *Emitter) Start() {
	e.Stop()
	e.timer = e.s.Every(e.interval, e.emit)
	e.logger.Debug("insight emitter started", zap.Duration("interval", e.interval))
}

// Stop cancels the timer. Stopping an idle emitter does nothing.
func (e *Emitter) Stop() {
	if e.timer == 0 {
		return
	}
	e.s.Cancel(e.timer)
	e.timer = 0
	e.logger.Debug("insight emitter stopped")
}

// Running reports whether a timer is live.
func (e *Emitter) Running() bool {
	return e.timer != 0
}

func (e *Emitter) emit() {
	i := e.pick.Intn(len(Catalog))
	e.out.Append(Catalog[i], feed.Insight)
}
