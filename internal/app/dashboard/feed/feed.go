// Package feed is the bounded, newest-first activity log shown on the
// dashboard.
package feed

import (
	"time"

	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"github.com/dalemusser/strataesg/internal/app/system/htmlsanitize"
	"github.com/dalemusser/strataesg/internal/app/system/viewsurface"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Category tags an entry.
type Category string

const (
	Report      Category = "report"
	Insight     Category = "insight"
	Upload      Category = "upload"
	Integration Category = "integration"
	Offset      Category = "offset"
)

const (
	// Capacity is the most entries the feed holds.
	Capacity = 5

	// LeaveDelay is how long an evicted node plays its exit transition
	// before it is detached.
	LeaveDelay = 300 * time.Millisecond

	// ContainerID is the view node entries are inserted into.
	ContainerID = "activity-feed"

	// DefaultIcon is shown for unknown categories.
	DefaultIcon = "📌"
)

var icons = map[Category]string{
	Report:      "📄",
	Insight:     "💡",
	Upload:      "📤",
	Integration: "🔗",
	Offset:      "🌱",
}

// Icon returns the glyph for c.
func Icon(c Category) string {
	if g, ok := icons[c]; ok {
		return g
	}
	return DefaultIcon
}

// Entry is one feed item. Entries are never changed after insertion.
type Entry struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Category   Category  `json:"category"`
	Icon       string    `json:"icon"`
	InsertedAt time.Time `json:"inserted_at"`
}

// Feed holds the entries and their view nodes.
type Feed struct {
	s      eventloop.Scheduler
	doc    *viewsurface.Document
	logger *zap.Logger

	entries []Entry // newest first
	nodes   map[string]*viewsurface.Node
}

// New creates an empty Feed rendering into the ContainerID node.
func New(s eventloop.Scheduler, doc *viewsurface.Document, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		s:      s,
		doc:    doc,
		logger: logger,
		nodes:  make(map[string]*viewsurface.Node),
	}
}

// Append inserts a new entry at the head. If that pushes the feed past
// Capacity, the oldest entry leaves the data at once and its node is
// detached after LeaveDelay.
func (f *Feed) Append(text string, category Category) Entry {
	clean := htmlsanitize.Text(text)
	if !htmlsanitize.IsPlainText(text) {
		f.logger.Debug("markup stripped from activity text")
	}
	icon := Icon(category)
	if icon == DefaultIcon {
		f.logger.Debug("unknown activity category", zap.String("category", string(category)))
	}

	e := Entry{
		ID:         uuid.NewString(),
		Text:       clean,
		Category:   category,
		Icon:       icon,
		InsertedAt: f.s.Now(),
	}
	f.entries = append([]Entry{e}, f.entries...)
	f.render(e)

	for len(f.entries) > Capacity {
		last := f.entries[len(f.entries)-1]
		f.entries = f.entries[:len(f.entries)-1]
		f.evict(last)
	}
	return e
}

func (f *Feed) render(e Entry) {
	container, ok := f.doc.Element(ContainerID)
	if !ok {
		f.logger.Warn("activity feed container missing")
		return
	}

	n := viewsurface.NewNode("activity-"+e.ID, "div")
	n.AddClass("activity-item", "entering")
	n.SetAttr("data-category", string(e.Category))
	n.SetAttr("data-icon", e.Icon)
	n.Text = e.Text
	f.doc.Prepend(container, n)
	f.nodes[e.ID] = n

	f.s.Post(func() { n.RemoveClass("entering") })
}

func (f *Feed) evict(e Entry) {
	n, ok := f.nodes[e.ID]
	if !ok {
		return
	}
	delete(f.nodes, e.ID)
	n.AddClass("leaving")
	f.s.After(LeaveDelay, func() { f.doc.Detach(n) })
}

// Entries returns the entries newest first.
func (f *Feed) Entries() []Entry {
	return append([]Entry(nil), f.entries...)
}

// Len returns the number of entries.
func (f *Feed) Len() int {
	return len(f.entries)
}
