// Package testutil provides utilities for testing, including a booted
// dashboard on a virtual clock.
package testutil

import (
	"context"
	"time"

	"github.com/dalemusser/strataesg/internal/app/dashboard"
	"github.com/dalemusser/strataesg/internal/app/store/emissions"
	"github.com/dalemusser/strataesg/internal/app/system/charting"
	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"go.uber.org/zap"
)

// Epoch is the virtual clock's start time.
var Epoch = time.Date(2024, 11, 5, 10, 0, 0, 0, time.UTC)

// StepRand always returns the same increment, so a report takes a known
// number of ticks.
type StepRand float64

// Float64 returns the fixed value.
func (s StepRand) Float64() float64 { return float64(s) }

// FirstPicker always picks index 0.
type FirstPicker struct{}

// Intn returns 0.
func (FirstPicker) Intn(int) int { return 0 }

// NewDashboard builds and boots a dashboard on a virtual clock with
// go-chart rendering and deterministic random sources. Insights are off so
// the feed holds only what the test appends.
func NewDashboard() (*dashboard.Dashboard, *eventloop.Virtual) {
	v := eventloop.NewVirtual(Epoch)
	d := dashboard.New(dashboard.Options{
		Scheduler:   v,
		Renderer:    charting.NewGoChart(zap.NewNop()),
		Dataset:     emissionsstore.Default(),
		Rand:        StepRand(1.0),
		Picker:      FirstPicker{},
		ChartWidth:  480,
		ChartHeight: 280,
		Logger:      zap.NewNop(),
	})
	d.Boot()
	v.Flush()
	return d, v
}

// TestContext returns a context with a reasonable timeout for tests.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
