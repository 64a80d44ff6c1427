// internal/app/dashboard/view.go
package dashboard

import (
	"html/template"

	"github.com/dalemusser/strataesg/internal/app/dashboard/feed"
	"github.com/dalemusser/strataesg/internal/app/dashboard/widgets"
	"github.com/dalemusser/strataesg/internal/app/system/viewsurface"
	"github.com/dalemusser/strataesg/internal/domain/models"
)

// WidgetView describes one live widget.
type WidgetView struct {
	ID     string        `json:"id"`
	Slot   string        `json:"slot"`
	Markup template.HTML `json:"-"`
}

// View is a copy of the dashboard state that is safe to use off the loop.
type View struct {
	Company        models.Company `json:"company"`
	TotalCO2       float64        `json:"total_co2"`
	Active         string         `json:"active_section"`
	Feed           []feed.Entry   `json:"feed"`
	Widgets        []WidgetView   `json:"widgets"`
	ChartsEnabled  bool           `json:"charts_enabled"`
	ReportRunning  bool           `json:"report_running"`
	ReportProgress float64        `json:"report_progress"`
	Ingesting      bool           `json:"ingesting"`
	InsightsOn     bool           `json:"insights_running"`

	Document *viewsurface.Document `json:"-"`
}

// Snapshot copies the current state.
func (d *Dashboard) Snapshot() View {
	v := View{
		Company:        d.data.Company,
		TotalCO2:       d.data.TotalCO2,
		Active:         string(d.nav.Active()),
		Feed:           d.feed.Entries(),
		ChartsEnabled:  d.widgets.Available(),
		ReportRunning:  d.report.Running(),
		ReportProgress: d.report.Progress(),
		Ingesting:      d.ingest != nil && !d.ingest.Done(),
		InsightsOn:     d.insights.Running(),
		Document:       d.doc.Snapshot(),
	}
	for _, h := range d.widgets.Handles() {
		v.Widgets = append(v.Widgets, WidgetView{ID: h.ID, Slot: string(h.Slot), Markup: h.Target.Markup})
	}
	return v
}

// WidgetMarkup returns the rendered markup of slot, if a widget is live.
func (d *Dashboard) WidgetMarkup(slot widgets.Slot) (template.HTML, bool) {
	for _, h := range d.widgets.Handles() {
		if h.Slot == slot {
			return h.Target.Markup, h.Target.Markup != ""
		}
	}
	return "", false
}

// Widgets exposes the widget manager.
func (d *Dashboard) Widgets() *widgets.Manager {
	return d.widgets
}

// Feed exposes the activity feed.
func (d *Dashboard) Feed() *feed.Feed {
	return d.feed
}

// Document exposes the live view surface. Use only on the loop.
func (d *Dashboard) Document() *viewsurface.Document {
	return d.doc
}
