// internal/app/system/charting/gochart.go
package charting

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/dalemusser/strataesg/internal/app/system/viewsurface"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"go.uber.org/zap"
)

// GoChart renders charts to inline SVG with go-chart.
type GoChart struct {
	logger *zap.Logger
}

// NewGoChart creates a go-chart backed Renderer.
func NewGoChart(logger *zap.Logger) *GoChart {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoChart{logger: logger}
}

// Create renders spec into target and returns the live chart.
func (g *GoChart) Create(target *viewsurface.Node, spec Spec) (Chart, error) {
	if target == nil {
		return nil, fmt.Errorf("charting: nil target")
	}
	if len(spec.Values) == 0 {
		return nil, ErrNoData
	}
	c := &svgChart{target: target, spec: spec, logger: g.logger}
	if err := c.render(); err != nil {
		return nil, err
	}
	return c, nil
}

type svgChart struct {
	target    *viewsurface.Node
	spec      Spec
	logger    *zap.Logger
	destroyed bool
}

func (c *svgChart) Destroy() error {
	if c.destroyed {
		return ErrDestroyed
	}
	c.destroyed = true
	c.target.Markup = ""
	c.target.RemoveClass("chart-rendered")
	return nil
}

func (c *svgChart) Resize() error {
	if c.destroyed {
		return ErrDestroyed
	}
	return c.render()
}

// size prefers the target's laid-out dimensions over the spec defaults.
func (c *svgChart) size() (int, int) {
	w, h := c.target.Width, c.target.Height
	if w <= 0 {
		w = c.spec.Width
	}
	if h <= 0 {
		h = c.spec.Height
	}
	return w, h
}

func (c *svgChart) render() error {
	w, h := c.size()
	var buf bytes.Buffer

	var err error
	switch c.spec.Kind {
	case KindDoughnut:
		err = c.doughnut(w, h).Render(chart.SVG, &buf)
	case KindLine:
		err = c.line(w, h).Render(chart.SVG, &buf)
	case KindBar:
		err = c.bar(w, h).Render(chart.SVG, &buf)
	default:
		err = fmt.Errorf("charting: unknown kind %q", c.spec.Kind)
	}
	if err != nil {
		return err
	}

	c.target.Markup = template.HTML(buf.String())
	c.target.AddClass("chart-rendered")
	c.logger.Debug("chart rendered",
		zap.String("target", c.target.ID),
		zap.String("kind", string(c.spec.Kind)),
		zap.Int("width", w),
		zap.Int("height", h))
	return nil
}

func (c *svgChart) color(i int) drawing.Color {
	if len(c.spec.Colors) == 0 {
		return chart.GetDefaultColor(i)
	}
	return drawing.ColorFromHex(c.spec.Colors[i%len(c.spec.Colors)])
}

func (c *svgChart) label(i int) string {
	if i < len(c.spec.Labels) {
		return c.spec.Labels[i]
	}
	return ""
}

func (c *svgChart) doughnut(w, h int) chart.DonutChart {
	values := make([]chart.Value, len(c.spec.Values))
	for i, v := range c.spec.Values {
		values[i] = chart.Value{
			Label: c.label(i),
			Value: v,
			Style: chart.Style{FillColor: c.color(i), StrokeColor: drawing.ColorWhite, StrokeWidth: 2},
		}
	}
	return chart.DonutChart{
		Title:  c.spec.Title,
		Width:  w,
		Height: h,
		Values: values,
	}
}

func (c *svgChart) line(w, h int) chart.Chart {
	xs := make([]float64, len(c.spec.Values))
	ticks := make([]chart.Tick, len(c.spec.Values))
	for i := range c.spec.Values {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: c.label(i)}
	}
	col := c.color(0)
	return chart.Chart{
		Title:  c.spec.Title,
		Width:  w,
		Height: h,
		XAxis:  chart.XAxis{Ticks: ticks},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    c.spec.Title,
				XValues: xs,
				YValues: c.spec.Values,
				Style: chart.Style{
					StrokeColor: col,
					StrokeWidth: 2,
					FillColor:   col.WithAlpha(48),
					DotColor:    col,
					DotWidth:    3,
				},
			},
		},
	}
}

func (c *svgChart) bar(w, h int) chart.BarChart {
	bars := make([]chart.Value, len(c.spec.Values))
	for i, v := range c.spec.Values {
		bars[i] = chart.Value{
			Label: c.label(i),
			Value: v,
			Style: chart.Style{FillColor: c.color(i), StrokeColor: c.color(i)},
		}
	}
	return chart.BarChart{
		Title:    c.spec.Title,
		Width:    w,
		Height:   h,
		BarWidth: 40,
		Bars:     bars,
	}
}
