// Package dispatch routes view-surface interactions to dashboard
// operations through a declarative table.
//
// Interactive nodes carry a data-action marker; the dispatcher resolves a
// clicked node to the nearest marked ancestor at click time, so affordances
// added later need no wiring.
package dispatch

import (
	"github.com/dalemusser/strataesg/internal/app/system/viewsurface"
	"go.uber.org/zap"
)

// Action identifies an interaction.
type Action string

const (
	Navigate                Action = "navigate"
	GenerateReport          Action = "generate-report"
	CloseReport             Action = "close-report"
	ImplementRecommendation Action = "implement-recommendation"
	BuyOffset               Action = "buy-offset"
	ScheduleAIAnalysis      Action = "schedule-ai-analysis"
	ConnectIntegration      Action = "connect-integration"
)

// Actions lists every declared action.
var Actions = []Action{
	Navigate,
	GenerateReport,
	CloseReport,
	ImplementRecommendation,
	BuyOffset,
	ScheduleAIAnalysis,
	ConnectIntegration,
}

// Marker attributes read from the resolved node.
const (
	ActionAttr  = "data-action"
	SectionAttr = "data-section"
	ItemAttr    = "data-item"
)

// ParseAction maps a marker value to a declared Action.
func ParseAction(s string) (Action, bool) {
	for _, a := range Actions {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// Event is one interaction. Either Target names the clicked node, or
// Action is given directly.
type Event struct {
	Target  string `json:"target,omitempty"`
	Action  Action `json:"action,omitempty"`
	Section string `json:"section,omitempty"`
	Item    string `json:"item,omitempty"`
}

// Handler performs an action.
type Handler func(Event)

// Routes maps actions to handlers.
type Routes map[Action]Handler

// Missing returns the declared actions routes has no handler for.
func Missing(r Routes) []Action {
	var out []Action
	for _, a := range Actions {
		if r[a] == nil {
			out = append(out, a)
		}
	}
	return out
}

// Dispatcher is the single entry point for interactions.
type Dispatcher struct {
	doc    *viewsurface.Document
	routes Routes
	logger *zap.Logger
}

// New creates a Dispatcher over doc.
func New(doc *viewsurface.Document, routes Routes, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{doc: doc, routes: routes, logger: logger}
}

// Dispatch resolves ev and runs its handler. Unrecognized interactions are
// ignored; Dispatch then reports false.
func (d *Dispatcher) Dispatch(ev Event) bool {
	if ev.Target != "" {
		resolved, ok := d.resolve(ev)
		if !ok {
			d.logger.Debug("interaction ignored", zap.String("target", ev.Target))
			return false
		}
		ev = resolved
	}

	if _, ok := ParseAction(string(ev.Action)); !ok {
		d.logger.Debug("unknown action", zap.String("action", string(ev.Action)))
		return false
	}
	h := d.routes[ev.Action]
	if h == nil {
		d.logger.Debug("no handler for action", zap.String("action", string(ev.Action)))
		return false
	}
	h(ev)
	return true
}

// resolve fills the event from the nearest node carrying an action marker.
// Values already present on the event win over markers.
func (d *Dispatcher) resolve(ev Event) (Event, bool) {
	n, ok := d.doc.Element(ev.Target)
	if !ok {
		return ev, false
	}
	marked, ok := d.doc.Closest(n, ActionAttr)
	if !ok {
		return ev, false
	}
	a, _ := marked.Attr(ActionAttr)
	ev.Action = Action(a)
	if ev.Section == "" {
		ev.Section, _ = marked.Attr(SectionAttr)
	}
	if ev.Item == "" {
		ev.Item, _ = marked.Attr(ItemAttr)
	}
	return ev, true
}
