package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/strataesg/internal/app/dashboard/dispatch"
	"github.com/dalemusser/strataesg/internal/app/dashboard/feed"
	"github.com/dalemusser/strataesg/internal/app/dashboard/insights"
	"github.com/dalemusser/strataesg/internal/app/dashboard/simulation"
	"github.com/dalemusser/strataesg/internal/app/dashboard/widgets"
	"github.com/dalemusser/strataesg/internal/app/store/emissions"
	"github.com/dalemusser/strataesg/internal/app/system/charting"
	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

type firstPicker struct{}

func (firstPicker) Intn(int) int { return 0 }

func newDashboard(t *testing.T, mutate ...func(*Options)) (*Dashboard, *eventloop.Virtual) {
	t.Helper()
	v := eventloop.NewVirtual(time.Date(2024, 11, 5, 10, 0, 0, 0, time.UTC))
	opts := Options{
		Scheduler:       v,
		Renderer:        charting.NewGoChart(zap.NewNop()),
		Dataset:         emissionsstore.Default(),
		Rand:            constRand(1.0),
		Picker:          firstPicker{},
		ChartWidth:      480,
		ChartHeight:     280,
		InsightsEnabled: true,
		Logger:          zap.NewNop(),
	}
	for _, m := range mutate {
		m(&opts)
	}
	return New(opts), v
}

func text(t *testing.T, d *Dashboard, id string) string {
	t.Helper()
	n, ok := d.Document().Element(id)
	require.True(t, ok, "element %q", id)
	return n.Text
}

func hidden(t *testing.T, d *Dashboard, id string) bool {
	t.Helper()
	n, ok := d.Document().Element(id)
	require.True(t, ok, "element %q", id)
	return n.Hidden
}

func TestRoutes_AllActionsWired(t *testing.T) {
	d, _ := newDashboard(t)
	assert.Empty(t, dispatch.Missing(d.Routes()))
}

func TestBoot(t *testing.T) {
	d, v := newDashboard(t)

	d.Boot()
	v.Flush()

	view := d.Snapshot()
	assert.Equal(t, "dashboard", view.Active)
	assert.False(t, hidden(t, d, "dashboard-section"))
	assert.True(t, hidden(t, d, "upload-section"))
	require.Len(t, view.Widgets, 3)
	for _, w := range view.Widgets {
		assert.True(t, strings.HasPrefix(string(w.Markup), "<svg"), "slot %s", w.Slot)
	}
	require.Len(t, view.Feed, 3)
	assert.Equal(t, "Connected utility billing integration", view.Feed[0].Text, "seeds keep their order")
	assert.True(t, view.InsightsOn)
	assert.Equal(t, "24.9%", text(t, d, "scope1-percent"))
	assert.Equal(t, "8,642.5 tCO2e", text(t, d, "total-emissions"))

	d.Boot()
	v.Flush()
	assert.Len(t, d.Feed().Entries(), 3, "second Boot is a no-op")
}

func TestBoot_WithoutCharts(t *testing.T) {
	d, v := newDashboard(t, func(o *Options) {
		o.Renderer = nil
		o.InsightsEnabled = false
	})

	d.Boot()
	v.Flush()

	view := d.Snapshot()
	assert.Empty(t, view.Widgets)
	assert.False(t, view.ChartsEnabled)
	assert.False(t, view.InsightsOn)
	assert.Equal(t, "dashboard", view.Active, "other components are unaffected")
}

func TestSelectFile_Ingestion(t *testing.T) {
	d, v := newDashboard(t)
	d.Boot()
	v.Flush()
	d.NavigateTo("upload")

	d.SelectFile(FileInfo{Name: "report.pdf", Size: 1048576})

	assert.Equal(t, "report.pdf", text(t, d, "file-name"))
	assert.Equal(t, "1.0 MB", text(t, d, "file-size"))
	assert.True(t, hidden(t, d, "upload-area"))
	assert.False(t, hidden(t, d, "processing-section"))
	assert.Equal(t, "Scanning document structure...", text(t, d, "processing-status"))
	assert.True(t, d.Snapshot().Ingesting)

	v.Advance(simulation.Total(simulation.IngestionSteps()) - time.Millisecond)
	assert.Equal(t, "100%", text(t, d, "progress-percent"))
	assert.False(t, hidden(t, d, "processing-section"))

	v.Advance(time.Millisecond)
	assert.True(t, hidden(t, d, "processing-section"))
	assert.False(t, hidden(t, d, "results-section"))
	head := d.Feed().Entries()[0]
	assert.Equal(t, feed.Upload, head.Category)
	assert.Contains(t, head.Text, "report.pdf")
	assert.False(t, d.Snapshot().Ingesting)
}

func TestSelectFile_EmptyNameIgnored(t *testing.T) {
	d, _ := newDashboard(t)
	d.SelectFile(FileInfo{Size: 10})
	assert.True(t, hidden(t, d, "processing-section"))
}

func TestDrag(t *testing.T) {
	d, _ := newDashboard(t)
	area, _ := d.Document().Element("upload-area")

	d.DragEnter()
	assert.True(t, area.HasClass("dragover"))
	d.DragLeave()
	assert.False(t, area.HasClass("dragover"))

	d.DragEnter()
	d.Drop(FileInfo{Name: "bill.csv", Size: 2048})
	assert.False(t, area.HasClass("dragover"))
	assert.Equal(t, "2.0 kB", text(t, d, "file-size"))
}

func TestStartReport_Completes(t *testing.T) {
	d, v := newDashboard(t, func(o *Options) { o.InsightsEnabled = false })
	d.Boot()
	v.Flush()

	d.StartReport()
	assert.False(t, hidden(t, d, "report-modal"))
	assert.Equal(t, "65%", text(t, d, "report-progress"))

	// +10 per tick: 75, 85, 95, 100.
	v.Advance(3 * simulation.ReportTick)
	assert.Equal(t, "95%", text(t, d, "report-progress"))
	v.Advance(simulation.ReportTick)
	assert.Equal(t, "100%", text(t, d, "report-progress"))
	assert.Equal(t, "Report ready!", text(t, d, "report-status"))
	final, _ := d.Document().Element("report-step-final")
	assert.True(t, final.HasClass("active"))
	assert.False(t, hidden(t, d, "report-modal"))

	v.Advance(ReportCloseDelay)
	assert.True(t, hidden(t, d, "report-modal"))
	head := d.Feed().Entries()[0]
	assert.Equal(t, feed.Report, head.Category)
	assert.Contains(t, head.Text, "2024")
}

func TestDismissReport_ResetsUnfinished(t *testing.T) {
	d, v := newDashboard(t, func(o *Options) { o.InsightsEnabled = false })
	d.Boot()
	v.Flush()
	before := len(d.Feed().Entries())

	d.StartReport()
	v.Advance(2 * simulation.ReportTick)
	require.Equal(t, "85%", text(t, d, "report-progress"))

	d.Click(dispatch.Event{Target: "close-report-btn"})

	assert.True(t, hidden(t, d, "report-modal"))
	assert.Equal(t, "65%", text(t, d, "report-progress"))
	final, _ := d.Document().Element("report-step-final")
	assert.False(t, final.HasClass("active"))
	assert.False(t, d.Snapshot().ReportRunning)

	v.Advance(time.Minute)
	assert.Len(t, d.Feed().Entries(), before, "a reset report never logs")
}

func TestStartReport_RestartWhileClosing(t *testing.T) {
	d, v := newDashboard(t, func(o *Options) { o.InsightsEnabled = false })

	d.StartReport()
	v.Advance(4 * simulation.ReportTick)
	require.Equal(t, "Report ready!", text(t, d, "report-status"))

	d.StartReport()
	assert.False(t, hidden(t, d, "report-modal"))
	assert.Equal(t, "65%", text(t, d, "report-progress"))
	assert.Len(t, d.Feed().Entries(), 1, "the finished report is logged")

	v.Advance(ReportCloseDelay)
	assert.Len(t, d.Feed().Entries(), 1, "the new run is not closed early")
}

func TestClick_Navigate(t *testing.T) {
	d, v := newDashboard(t)
	d.Boot()
	v.Flush()

	assert.True(t, d.Click(dispatch.Event{Target: "nav-offsets"}))
	assert.Equal(t, "offsets", d.Snapshot().Active)

	assert.True(t, d.Click(dispatch.Event{Target: "quick-upload"}))
	assert.Equal(t, "upload", d.Snapshot().Active)

	d.Click(dispatch.Event{Action: dispatch.Navigate, Section: "billing"})
	assert.Equal(t, "upload", d.Snapshot().Active, "unknown sections leave state unchanged")
}

func TestClick_NavigateToUploadRegionIgnored(t *testing.T) {
	d, v := newDashboard(t)
	d.Boot()
	v.Flush()

	for _, name := range []string{"processing", "results"} {
		d.Click(dispatch.Event{Action: dispatch.Navigate, Section: name})
		assert.Equal(t, "dashboard", d.Snapshot().Active, name)
		assert.False(t, hidden(t, d, "dashboard-section"), name)
	}
}

func TestClick_Recommendation(t *testing.T) {
	d, _ := newDashboard(t)

	d.Click(dispatch.Event{Target: "rec-led-retrofit-btn"})
	d.Click(dispatch.Event{Target: "rec-led-retrofit-btn"})

	card, _ := d.Document().Element("rec-led-retrofit")
	assert.True(t, card.HasClass("implemented"))
	assert.Equal(t, "Implemented", text(t, d, "rec-led-retrofit-btn"))
	entries := d.Feed().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, feed.Insight, entries[0].Category)
}

func TestClick_OffsetAnalysisIntegration(t *testing.T) {
	d, _ := newDashboard(t)

	d.Click(dispatch.Event{Target: "offset-amazon-reforestation-btn"})
	d.Click(dispatch.Event{Target: "schedule-ai-btn"})
	d.Click(dispatch.Event{Target: "integration-sap-btn"})
	d.Click(dispatch.Event{Action: dispatch.BuyOffset, Item: "no-such-project"})

	entries := d.Feed().Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, feed.Integration, entries[0].Category)
	assert.Equal(t, feed.Insight, entries[1].Category)
	assert.Equal(t, feed.Offset, entries[2].Category)
	assert.Equal(t, "Purchased 100 tCO2e of offsets from Amazon Reforestation ($1,850)", entries[2].Text)

	card, _ := d.Document().Element("integration-sap")
	assert.True(t, card.HasClass("connected"))
}

func TestViewport_Debounced(t *testing.T) {
	d, v := newDashboard(t, func(o *Options) { o.InsightsEnabled = false })
	d.Boot()
	v.Flush()

	for i := 0; i < 5; i++ {
		d.Viewport(600+i*10, 300)
		v.Advance(50 * time.Millisecond)
	}
	markup, ok := d.WidgetMarkup(widgets.SlotScope)
	require.True(t, ok)
	assert.Contains(t, string(markup), `viewBox="0 0 480 280"`, "no resize during the burst")

	v.Advance(DefaultResizeDebounce)
	markup, _ = d.WidgetMarkup(widgets.SlotScope)
	assert.Contains(t, string(markup), `viewBox="0 0 640 300"`)
}

func TestInsights_AppendToFeed(t *testing.T) {
	d, v := newDashboard(t)
	d.Boot()
	v.Flush()

	v.Advance(insights.DefaultInterval)
	head := d.Feed().Entries()[0]
	assert.Equal(t, insights.Catalog[0], head.Text)
	assert.Equal(t, feed.Insight, head.Category)
}

func TestShutdown(t *testing.T) {
	d, v := newDashboard(t)
	d.Boot()
	v.Flush()

	d.Shutdown()

	assert.Equal(t, 0, d.Widgets().Count())
	assert.False(t, d.Snapshot().InsightsOn)
}

func TestSnapshot_IsCopy(t *testing.T) {
	d, _ := newDashboard(t)
	view := d.Snapshot()

	n, _ := view.Document.Element("upload-area")
	n.AddClass("dragover")

	live, _ := d.Document().Element("upload-area")
	assert.False(t, live.HasClass("dragover"))
}
