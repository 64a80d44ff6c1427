// Package charting is the narrow charting capability the widget manager
// depends on: create a chart in a target node, resize it, destroy it.
package charting

import (
	"errors"

	"github.com/dalemusser/strataesg/internal/app/system/viewsurface"
)

// Kind names a chart type.
type Kind string

// Supported chart kinds.
const (
	KindDoughnut Kind = "doughnut"
	KindLine     Kind = "line"
	KindBar      Kind = "bar"
)

// ErrDestroyed is returned when a destroyed chart is used.
var ErrDestroyed = errors.New("charting: chart already destroyed")

// ErrNoData is returned when a spec has nothing to plot.
var ErrNoData = errors.New("charting: spec has no values")

// Spec is the data and options for one chart.
type Spec struct {
	Kind   Kind
	Title  string
	Labels []string
	Values []float64
	Colors []string // hex colors, applied per value (doughnut, bar) or to the series (line)

	// Width and Height are used when the target node has no layout size yet.
	Width  int
	Height int
}

// Chart is a live chart owned by its creator.
type Chart interface {
	Destroy() error
}

// Resizer is implemented by charts that can re-layout to their target's
// current size.
type Resizer interface {
	Resize() error
}

// Renderer creates charts. A nil Renderer means the capability is absent.
type Renderer interface {
	Create(target *viewsurface.Node, spec Spec) (Chart, error)
}
