// Package navigation switches between the dashboard's view sections.
//
// Exactly one section is visible once the first GoTo succeeds; before that
// none is. Navigation affordances (nodes carrying data-section) mirror the
// active section with the "active" class.
package navigation

import (
	"time"

	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"github.com/dalemusser/strataesg/internal/app/system/viewsurface"
	"go.uber.org/zap"
)

// Section names a view region.
type Section string

const (
	None            Section = ""
	Dashboard       Section = "dashboard"
	Upload          Section = "upload"
	Analytics       Section = "analytics"
	Reports         Section = "reports"
	Recommendations Section = "recommendations"
	Offsets         Section = "offsets"
	Integrations    Section = "integrations"
)

// Sections lists every section in menu order.
var Sections = []Section{Dashboard, Upload, Analytics, Reports, Recommendations, Offsets, Integrations}

// Parse returns the section named name. Other regions whose ids happen to
// end in "-section" are not sections.
func Parse(name string) (Section, bool) {
	for _, s := range Sections {
		if string(s) == name {
			return s, true
		}
	}
	return None, false
}

// ElementID is the id of the section's view region.
func (s Section) ElementID() string {
	return string(s) + "-section"
}

// NavAttr is the attribute navigation affordances use to name their section.
const NavAttr = "data-section"

// ResizeDelay is how long after showing the dashboard section the widgets
// are asked to re-layout.
const ResizeDelay = 100 * time.Millisecond

// Resizer is notified when previously hidden widgets become visible.
type Resizer interface {
	ResizeAll()
}

// Controller is the section state machine.
type Controller struct {
	s       eventloop.Scheduler
	doc     *viewsurface.Document
	resizer Resizer
	logger  *zap.Logger

	active Section
}

// New creates a Controller with no active section.
func New(s eventloop.Scheduler, doc *viewsurface.Document, resizer Resizer, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{s: s, doc: doc, resizer: resizer, logger: logger}
}

// Active returns the active section, or None before the first transition.
func (c *Controller) Active() Section {
	return c.active
}

// GoTo activates the named section. An unknown name is logged and leaves
// the state unchanged; GoTo then reports false.
func (c *Controller) GoTo(name string) bool {
	target, ok := Parse(name)
	if !ok {
		c.logger.Debug("unknown section", zap.String("section", name))
		return false
	}
	node, ok := c.doc.Element(target.ElementID())
	if !ok {
		c.logger.Warn("section region missing", zap.String("section", name))
		return false
	}

	for _, s := range Sections {
		if s == target {
			continue
		}
		if n, ok := c.doc.Element(s.ElementID()); ok {
			n.Hidden = true
			n.RemoveClass("active")
		}
	}
	if prev := c.active; prev != "" && prev != target {
		if n, ok := c.doc.Element(prev.ElementID()); ok {
			n.Hidden = true
			n.RemoveClass("active")
		}
	}
	node.Hidden = false
	node.AddClass("active")
	c.active = target

	for _, item := range c.doc.HavingAttr(NavAttr) {
		v, _ := item.Attr(NavAttr)
		item.ToggleClass("active", v == name)
	}

	if target == Dashboard && c.resizer != nil {
		c.s.After(ResizeDelay, c.resizer.ResizeAll)
	}
	c.logger.Debug("section activated", zap.String("section", name))
	return true
}
