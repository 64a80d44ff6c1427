// internal/app/dashboard/layout.go
package dashboard

import (
	"fmt"

	"github.com/dalemusser/strataesg/internal/app/dashboard/dispatch"
	"github.com/dalemusser/strataesg/internal/app/dashboard/feed"
	"github.com/dalemusser/strataesg/internal/app/dashboard/navigation"
	"github.com/dalemusser/strataesg/internal/app/dashboard/widgets"
	"github.com/dalemusser/strataesg/internal/app/system/viewsurface"
	"github.com/dalemusser/strataesg/internal/domain/models"
	"github.com/dustin/go-humanize"
)

// Element ids the orchestrator drives.
const (
	idUploadArea       = "upload-area"
	idFileInfo         = "file-info"
	idFileName         = "file-name"
	idFileSize         = "file-size"
	idProcessing       = "processing-section"
	idProgressBar      = "progress-bar"
	idProgressPercent  = "progress-percent"
	idProcessingStatus = "processing-status"
	idResults          = "results-section"

	idReportModal       = "report-modal"
	idReportProgress    = "report-progress"
	idReportProgressBar = "report-progress-bar"
	idReportStatus      = "report-status"
	idReportStepFinal   = "report-step-final"
)

var sectionTitles = map[navigation.Section]string{
	navigation.Dashboard:       "Dashboard",
	navigation.Upload:          "Upload Data",
	navigation.Analytics:       "Analytics",
	navigation.Reports:         "Reports",
	navigation.Recommendations: "Recommendations",
	navigation.Offsets:         "Carbon Offsets",
	navigation.Integrations:    "Integrations",
}

type builder struct {
	doc *viewsurface.Document
}

func (b builder) add(parent *viewsurface.Node, id, tag string, classes ...string) *viewsurface.Node {
	n := viewsurface.NewNode(id, tag)
	n.AddClass(classes...)
	b.doc.Append(parent, n)
	return n
}

func (b builder) text(parent *viewsurface.Node, id, tag, text string, classes ...string) *viewsurface.Node {
	n := b.add(parent, id, tag, classes...)
	n.Text = text
	return n
}

func (b builder) action(parent *viewsurface.Node, id, label string, a dispatch.Action) *viewsurface.Node {
	n := b.text(parent, id, "button", label, "btn")
	n.SetAttr(dispatch.ActionAttr, string(a))
	return n
}

// NewDocument builds the dashboard's view surface for d. Every section
// starts hidden; Boot activates the dashboard.
func NewDocument(d models.EmissionsDataset) *viewsurface.Document {
	doc := viewsurface.NewDocument()
	b := builder{doc: doc}
	root := doc.Root()

	header := b.add(root, "header", "header", "app-header")
	b.text(header, "company-name", "h1", d.Company.Name)
	b.text(header, "company-meta", "p",
		fmt.Sprintf("%s · %s employees · FY%d", d.Company.Industry, humanize.Comma(int64(d.Company.Employees)), d.Company.ReportingYear))

	nav := b.add(root, "sidebar", "nav", "sidebar")
	for _, s := range navigation.Sections {
		item := b.text(nav, "nav-"+string(s), "a", sectionTitles[s], "nav-item")
		item.SetAttr(dispatch.ActionAttr, string(dispatch.Navigate))
		item.SetAttr(navigation.NavAttr, string(s))
	}

	main := b.add(root, "main", "main", "main-content")
	sections := make(map[navigation.Section]*viewsurface.Node, len(navigation.Sections))
	for _, s := range navigation.Sections {
		sec := b.add(main, s.ElementID(), "section", "content-section")
		sec.Hidden = true
		b.text(sec, "", "h2", sectionTitles[s])
		sections[s] = sec
	}

	buildDashboard(b, sections[navigation.Dashboard], d)
	buildUpload(b, sections[navigation.Upload])
	buildAnalytics(b, sections[navigation.Analytics], d)
	buildReports(b, sections[navigation.Reports], root)
	buildRecommendations(b, sections[navigation.Recommendations], d)
	buildOffsets(b, sections[navigation.Offsets], d)
	buildIntegrations(b, sections[navigation.Integrations], d)
	return doc
}

func buildDashboard(b builder, sec *viewsurface.Node, d models.EmissionsDataset) {
	kpis := b.add(sec, "kpis", "div", "kpi-grid")
	b.text(kpis, "total-emissions", "div", humanize.CommafWithDigits(d.TotalCO2, 1)+" tCO2e", "kpi")

	names, figs := d.ScopeBreakdown.Scopes()
	for i, f := range figs {
		card := b.add(kpis, fmt.Sprintf("scope%d-card", i+1), "div", "kpi", "scope-card")
		b.text(card, "", "h3", names[i])
		b.text(card, fmt.Sprintf("scope%d-value", i+1), "div", humanize.CommafWithDigits(f.Value, 1), "kpi-value")
		b.text(card, fmt.Sprintf("scope%d-percent", i+1), "div", widgets.PercentLabel(f.Value, d.TotalCO2), "kpi-percent")
		b.text(card, "", "p", f.Description, "kpi-desc")
	}

	charts := b.add(sec, "charts", "div", "chart-grid")
	for _, s := range widgets.Slots {
		b.add(charts, s.ElementID(), "div", "chart-container")
	}

	actions := b.add(sec, "quick-actions", "div", "quick-actions")
	b.action(actions, "quick-report", "Generate Report", dispatch.GenerateReport)
	up := b.action(actions, "quick-upload", "Upload Data", dispatch.Navigate)
	up.SetAttr(dispatch.SectionAttr, string(navigation.Upload))

	activity := b.add(sec, "activity", "div", "activity")
	b.text(activity, "", "h3", "Recent Activity")
	b.add(activity, feed.ContainerID, "div", "activity-feed")
}

func buildUpload(b builder, sec *viewsurface.Node) {
	area := b.add(sec, idUploadArea, "div", "upload-area")
	b.text(area, "", "p", "Drag and drop a utility bill, invoice or ESG report, or click to browse")

	info := b.add(sec, idFileInfo, "div", "file-info")
	info.Hidden = true
	b.add(info, idFileName, "span", "file-name")
	b.add(info, idFileSize, "span", "file-size")

	proc := b.add(sec, idProcessing, "div", "processing")
	proc.Hidden = true
	bar := b.add(proc, idProgressBar, "div", "progress-fill")
	bar.SetStyle("width", "0%")
	b.text(proc, idProgressPercent, "span", "0%")
	b.add(proc, idProcessingStatus, "p", "processing-status")

	results := b.add(sec, idResults, "div", "results")
	results.Hidden = true
	b.text(results, "", "h3", "Extraction complete")
	b.text(results, "results-summary", "p", "Emission sources were identified and categorized by scope.")
}

func buildAnalytics(b builder, sec *viewsurface.Node, d models.EmissionsDataset) {
	list := b.add(sec, "category-list", "ul", "category-list")
	for i, c := range d.CategoryBreakdown {
		b.text(list, fmt.Sprintf("category-%d", i), "li",
			fmt.Sprintf("%s: %s tCO2e (%s)", c.Category, humanize.CommafWithDigits(c.Emissions, 1), widgets.PercentLabel(c.Emissions, d.TotalCO2)))
	}
	b.action(sec, "schedule-ai-btn", "Schedule AI Analysis", dispatch.ScheduleAIAnalysis)
}

func buildReports(b builder, sec, root *viewsurface.Node) {
	b.action(sec, "generate-report-btn", "Generate Report", dispatch.GenerateReport)

	modal := b.add(root, idReportModal, "div", "modal")
	modal.Hidden = true
	b.text(modal, "", "h3", "Generating ESG Report")
	bar := b.add(modal, idReportProgressBar, "div", "progress-fill")
	bar.SetStyle("width", "65%")
	b.text(modal, idReportProgress, "span", "65%")
	b.text(modal, idReportStatus, "p", reportStatusWorking)
	steps := b.add(modal, "report-steps", "ol", "report-steps")
	b.text(steps, "", "li", "Collecting data", "report-step", "active")
	b.text(steps, "", "li", "Calculating emissions", "report-step", "active")
	b.text(steps, idReportStepFinal, "li", "Finalizing report", "report-step")
	b.action(modal, "close-report-btn", "Close", dispatch.CloseReport)
}

func buildRecommendations(b builder, sec *viewsurface.Node, d models.EmissionsDataset) {
	for _, r := range d.Recommendations {
		card := b.add(sec, "rec-"+r.ID, "div", "card", "recommendation")
		b.text(card, "", "h3", r.Title)
		b.text(card, "", "p", fmt.Sprintf("Saves %s tCO2e/yr · payback %s", humanize.CommafWithDigits(r.Reduction, 1), r.Payback))
		btn := b.action(card, "rec-"+r.ID+"-btn", "Implement", dispatch.ImplementRecommendation)
		btn.SetAttr(dispatch.ItemAttr, r.ID)
	}
}

func buildOffsets(b builder, sec *viewsurface.Node, d models.EmissionsDataset) {
	for _, p := range d.OffsetProjects {
		card := b.add(sec, "offset-"+p.ID, "div", "card", "offset")
		b.text(card, "", "h3", p.Name)
		b.text(card, "", "p", fmt.Sprintf("%s · $%s per tCO2e", p.Kind, humanize.CommafWithDigits(p.PricePerTon, 2)))
		btn := b.action(card, "offset-"+p.ID+"-btn", "Buy "+humanize.Ftoa(p.Tons)+" t", dispatch.BuyOffset)
		btn.SetAttr(dispatch.ItemAttr, p.ID)
	}
}

func buildIntegrations(b builder, sec *viewsurface.Node, d models.EmissionsDataset) {
	for _, in := range d.Integrations {
		card := b.add(sec, "integration-"+in.ID, "div", "card", "integration")
		b.text(card, "", "h3", in.Name)
		btn := b.action(card, "integration-"+in.ID+"-btn", "Connect", dispatch.ConnectIntegration)
		btn.SetAttr(dispatch.ItemAttr, in.ID)
	}
}
