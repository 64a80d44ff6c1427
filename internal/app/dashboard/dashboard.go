// Package dashboard is the orchestrator that owns every dashboard component.
//
// A Dashboard holds the widget manager, navigation controller, simulations,
// activity feed and insight emitter, all sharing one scheduler and one view
// document. It must only be used from the event loop; HTTP handlers reach
// it through the loop's Do.
package dashboard

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/dalemusser/strataesg/internal/app/dashboard/dispatch"
	"github.com/dalemusser/strataesg/internal/app/dashboard/feed"
	"github.com/dalemusser/strataesg/internal/app/dashboard/insights"
	"github.com/dalemusser/strataesg/internal/app/dashboard/navigation"
	"github.com/dalemusser/strataesg/internal/app/dashboard/simulation"
	"github.com/dalemusser/strataesg/internal/app/dashboard/widgets"
	"github.com/dalemusser/strataesg/internal/app/system/charting"
	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"github.com/dalemusser/strataesg/internal/app/system/viewsurface"
	"github.com/dalemusser/strataesg/internal/domain/models"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

const (
	// DefaultResizeDebounce is the quiet period for viewport resizes.
	DefaultResizeDebounce = 150 * time.Millisecond

	// ReportCloseDelay is how long a finished report stays on screen.
	ReportCloseDelay = 1600 * time.Millisecond

	reportStatusWorking = "Generating report..."
	reportStatusReady   = "Report ready!"
)

// Options configures a Dashboard.
type Options struct {
	Scheduler eventloop.Scheduler
	Renderer  charting.Renderer // nil disables charts
	Dataset   models.EmissionsDataset

	// Rand and Picker default to a time-seeded *rand.Rand.
	Rand   simulation.RandSource
	Picker insights.Picker

	ChartWidth      int
	ChartHeight     int
	InsightsEnabled bool
	InsightInterval time.Duration
	ResizeDebounce  time.Duration

	Logger *zap.Logger
}

// FileInfo is what the view reports about a selected file. The content is
// never read.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Dashboard owns the dashboard's state.
type Dashboard struct {
	opts   Options
	s      eventloop.Scheduler
	doc    *viewsurface.Document
	data   models.EmissionsDataset
	logger *zap.Logger

	widgets    *widgets.Manager
	nav        *navigation.Controller
	engine     *simulation.Engine
	report     *simulation.Accelerator
	feed       *feed.Feed
	insights   *insights.Emitter
	dispatcher *dispatch.Dispatcher
	resize     *eventloop.Debouncer

	ingest       *simulation.Run
	reportClose  eventloop.TimerID
	closeReport  func()
	viewW, viewH int
	booted       bool
}

// New wires every component on opts.Scheduler.
func New(opts Options) *Dashboard {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rand == nil || opts.Picker == nil {
		r := rand.New(rand.NewSource(time.Now().UnixNano()))
		if opts.Rand == nil {
			opts.Rand = r
		}
		if opts.Picker == nil {
			opts.Picker = r
		}
	}
	if opts.ResizeDebounce <= 0 {
		opts.ResizeDebounce = DefaultResizeDebounce
	}

	d := &Dashboard{
		opts:   opts,
		s:      opts.Scheduler,
		data:   opts.Dataset.Clone(),
		logger: opts.Logger,
	}
	d.doc = NewDocument(d.data)

	d.widgets = widgets.New(widgets.Config{
		Scheduler: d.s,
		Document:  d.doc,
		Renderer:  opts.Renderer,
		Dataset:   d.data,
		Width:     opts.ChartWidth,
		Height:    opts.ChartHeight,
		Logger:    d.logger.Named("widgets"),
	})
	d.nav = navigation.New(d.s, d.doc, d.widgets, d.logger.Named("navigation"))
	d.engine = simulation.NewEngine(d.s)
	d.report = simulation.NewAccelerator(d.s, opts.Rand)
	d.feed = feed.New(d.s, d.doc, d.logger.Named("feed"))
	d.insights = insights.New(d.s, d.feed, opts.Picker, opts.InsightInterval, d.logger.Named("insights"))
	d.dispatcher = dispatch.New(d.doc, d.Routes(), d.logger.Named("dispatch"))
	d.resize = eventloop.NewDebouncer(d.s, opts.ResizeDebounce, d.applyViewport)
	return d
}

// Routes is the interaction routing table.
func (d *Dashboard) Routes() dispatch.Routes {
	return dispatch.Routes{
		dispatch.Navigate:                func(ev dispatch.Event) { d.NavigateTo(ev.Section) },
		dispatch.GenerateReport:          func(dispatch.Event) { d.StartReport() },
		dispatch.CloseReport:             func(dispatch.Event) { d.DismissReport() },
		dispatch.ImplementRecommendation: func(ev dispatch.Event) { d.implementRecommendation(ev.Item) },
		dispatch.BuyOffset:               func(ev dispatch.Event) { d.buyOffset(ev.Item) },
		dispatch.ScheduleAIAnalysis:      func(dispatch.Event) { d.scheduleAnalysis() },
		dispatch.ConnectIntegration:      func(ev dispatch.Event) { d.connectIntegration(ev.Item) },
	}
}

// Boot shows the dashboard section, creates the widgets, seeds the feed
// and starts the insight emitter. Calling Boot again does nothing.
func (d *Dashboard) Boot() {
	if d.booted {
		return
	}
	d.booted = true

	d.nav.GoTo(string(navigation.Dashboard))
	d.widgets.InitializeAll()
	for i := len(d.data.RecentActivity) - 1; i >= 0; i-- {
		a := d.data.RecentActivity[i]
		d.feed.Append(a.Text, feed.Category(a.Category))
	}
	if d.opts.InsightsEnabled {
		d.insights.Start()
	}
	d.logger.Info("dashboard booted",
		zap.String("company", d.data.Company.Name),
		zap.Bool("charts", d.widgets.Available()),
		zap.Bool("insights", d.insights.Running()))
}

// Shutdown stops the insight emitter, cancels pending resize work and
// destroys the widgets.
func (d *Dashboard) Shutdown() {
	d.insights.Stop()
	d.resize.Cancel()
	d.report.Cancel()
	d.widgets.DestroyAll()
	d.logger.Info("dashboard shut down")
}

// NavigateTo activates a section. Unknown sections are ignored.
func (d *Dashboard) NavigateTo(section string) bool {
	return d.nav.GoTo(section)
}

// Click routes a view interaction.
func (d *Dashboard) Click(ev dispatch.Event) bool {
	return d.dispatcher.Dispatch(ev)
}

// Viewport records the laid-out chart size. Bursts of calls collapse into
// one widget resize after the debounce period.
func (d *Dashboard) Viewport(width, height int) {
	d.viewW, d.viewH = width, height
	d.resize.Trigger()
}

func (d *Dashboard) applyViewport() {
	if d.viewW > 0 && d.viewH > 0 {
		d.widgets.SetSize(d.viewW, d.viewH)
	}
	d.widgets.ResizeAll()
}

// DragEnter highlights the upload area.
func (d *Dashboard) DragEnter() {
	d.setDragover(true)
}

// DragLeave clears the upload highlight.
func (d *Dashboard) DragLeave() {
	d.setDragover(false)
}

func (d *Dashboard) setDragover(on bool) {
	n, ok := d.doc.Element(idUploadArea)
	if !ok {
		d.logger.Warn("upload area missing")
		return
	}
	n.ToggleClass("dragover", on)
}

// Drop ends a drag and selects the dropped file.
func (d *Dashboard) Drop(f FileInfo) {
	d.DragLeave()
	d.SelectFile(f)
}

// SelectFile displays the file's name and size and runs the ingestion
// simulation. A second file started mid-run gets its own independent run.
func (d *Dashboard) SelectFile(f FileInfo) {
	if f.Name == "" {
		d.logger.Debug("file selection without a name ignored")
		return
	}
	size := f.Size
	if size < 0 {
		size = 0
	}

	d.doc.SetText(idFileName, f.Name)
	d.doc.SetText(idFileSize, humanize.Bytes(uint64(size)))
	d.doc.Show(idFileInfo)
	d.doc.Hide(idUploadArea)
	d.doc.Hide(idResults)
	d.doc.Show(idProcessing)
	d.setProgress(0)

	name := f.Name
	d.ingest = d.engine.Run(simulation.IngestionSteps(),
		func(progress int, message string) {
			d.setProgress(progress)
			d.doc.SetText(idProcessingStatus, message)
		},
		func() {
			d.doc.Hide(idProcessing)
			d.doc.Show(idResults)
			d.feed.Append(fmt.Sprintf("Processed %s: emissions data extracted", name), feed.Upload)
		})
	d.logger.Info("ingestion started", zap.String("file", f.Name), zap.Int64("size", size))
}

func (d *Dashboard) setProgress(p int) {
	pct := fmt.Sprintf("%d%%", p)
	if n, ok := d.doc.Element(idProgressBar); ok {
		n.SetStyle("width", pct)
	}
	d.doc.SetText(idProgressPercent, pct)
}

// StartReport opens the report modal and runs the report accelerator.
// A finished report still waiting to close is closed first.
func (d *Dashboard) StartReport() {
	if d.closeReport != nil {
		d.s.Cancel(d.reportClose)
		d.closeReport()
	}
	d.ResetReport()
	d.doc.Show(idReportModal)

	d.report.Start(d.setReportProgress, func() {
		if n, ok := d.doc.Element(idReportStepFinal); ok {
			n.AddClass("active")
		}
		d.doc.SetText(idReportStatus, reportStatusReady)

		year := d.s.Now().Year()
		d.closeReport = func() {
			d.closeReport = nil
			d.reportClose = 0
			d.doc.Hide(idReportModal)
			d.feed.Append(fmt.Sprintf("%d ESG Sustainability Report generated", year), feed.Report)
		}
		d.reportClose = d.s.After(ReportCloseDelay, d.closeReport)
	})
}

// DismissReport closes the report modal. An unfinished report is reset.
func (d *Dashboard) DismissReport() {
	d.doc.Hide(idReportModal)
	d.ResetReport()
}

// ResetReport cancels an unfinished report and restores 65% with the final
// step inactive. A report that already finished still closes and is logged.
func (d *Dashboard) ResetReport() {
	d.report.Cancel()
	d.setReportProgress(simulation.ReportStart)
	if n, ok := d.doc.Element(idReportStepFinal); ok {
		n.RemoveClass("active")
	}
	d.doc.SetText(idReportStatus, reportStatusWorking)
}

func (d *Dashboard) setReportProgress(p float64) {
	pct := fmt.Sprintf("%d%%", int(p))
	d.doc.SetText(idReportProgress, pct)
	if n, ok := d.doc.Element(idReportProgressBar); ok {
		n.SetStyle("width", pct)
	}
}

func (d *Dashboard) implementRecommendation(id string) {
	for _, r := range d.data.Recommendations {
		if r.ID != id {
			continue
		}
		card, ok := d.doc.Element("rec-" + id)
		if ok && card.HasClass("implemented") {
			return
		}
		if ok {
			card.AddClass("implemented")
		}
		d.doc.SetText("rec-"+id+"-btn", "Implemented")
		d.feed.Append(fmt.Sprintf("Recommendation implemented: %s (-%s tCO2e/yr)", r.Title, humanize.CommafWithDigits(r.Reduction, 1)), feed.Insight)
		return
	}
	d.logger.Debug("unknown recommendation", zap.String("item", id))
}

func (d *Dashboard) buyOffset(id string) {
	for _, p := range d.data.OffsetProjects {
		if p.ID != id {
			continue
		}
		d.feed.Append(fmt.Sprintf("Purchased %s tCO2e of offsets from %s ($%s)",
			humanize.Ftoa(p.Tons), p.Name, humanize.CommafWithDigits(p.Tons*p.PricePerTon, 2)), feed.Offset)
		return
	}
	d.logger.Debug("unknown offset project", zap.String("item", id))
}

func (d *Dashboard) scheduleAnalysis() {
	d.feed.Append("AI analysis scheduled: results will be ready in 24 hours", feed.Insight)
}

func (d *Dashboard) connectIntegration(id string) {
	for _, in := range d.data.Integrations {
		if in.ID != id {
			continue
		}
		card, ok := d.doc.Element("integration-" + id)
		if ok && card.HasClass("connected") {
			return
		}
		if ok {
			card.AddClass("connected")
		}
		d.doc.SetText("integration-"+id+"-btn", "Connected")
		d.feed.Append("Connected "+in.Name+" integration", feed.Integration)
		return
	}
	d.logger.Debug("unknown integration", zap.String("item", id))
}
