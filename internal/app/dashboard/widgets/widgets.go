// Package widgets owns the live chart widgets of the dashboard.
//
// The Manager is the only code that creates or releases charts. It runs on
// the event loop and is not safe for concurrent use.
package widgets

import (
	"fmt"
	"time"

	"github.com/dalemusser/strataesg/internal/app/system/charting"
	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"github.com/dalemusser/strataesg/internal/app/system/viewsurface"
	"github.com/dalemusser/strataesg/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Slot names a widget position on the dashboard.
type Slot string

const (
	SlotScope    Slot = "scope"
	SlotTrend    Slot = "trend"
	SlotCategory Slot = "category"
)

// Slots lists every slot in creation order.
var Slots = []Slot{SlotScope, SlotTrend, SlotCategory}

// ElementID is the id of the view node a slot renders into.
func (s Slot) ElementID() string {
	return string(s) + "-chart"
}

// ParseSlot maps a name to a Slot.
func ParseSlot(name string) (Slot, bool) {
	for _, s := range Slots {
		if string(s) == name {
			return s, true
		}
	}
	return "", false
}

// Handle is one live widget.
type Handle struct {
	ID      string
	Slot    Slot
	Target  *viewsurface.Node
	Created time.Time

	chart charting.Chart
}

// Config carries the Manager's collaborators.
type Config struct {
	Scheduler eventloop.Scheduler
	Document  *viewsurface.Document
	Renderer  charting.Renderer // nil when charting is unavailable
	Dataset   models.EmissionsDataset
	Width     int
	Height    int
	Logger    *zap.Logger
}

// Manager creates, resizes and destroys the dashboard widgets.
type Manager struct {
	s        eventloop.Scheduler
	doc      *viewsurface.Document
	renderer charting.Renderer
	data     models.EmissionsDataset
	width    int
	height   int
	logger   *zap.Logger

	handles    map[Slot]*Handle
	generation uint64
}

// New creates a Manager with an empty registry.
func New(cfg Config) *Manager {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		s:        cfg.Scheduler,
		doc:      cfg.Document,
		renderer: cfg.Renderer,
		data:     cfg.Dataset,
		width:    cfg.Width,
		height:   cfg.Height,
		logger:   logger,
		handles:  make(map[Slot]*Handle),
	}
}

// Available reports whether the charting capability is present.
func (m *Manager) Available() bool {
	return m.renderer != nil
}

// InitializeAll destroys every live widget and creates the three dashboard
// widgets on the next turn, once layout has settled.
//
// Only the most recent call's deferred creation runs; earlier ones are
// dropped, so back-to-back calls never produce duplicates.
func (m *Manager) InitializeAll() {
	if m.renderer == nil {
		m.logger.Warn("charting capability unavailable; widgets will not render")
		return
	}

	m.DestroyAll()
	gen := m.generation
	m.s.Post(func() {
		if gen != m.generation {
			m.logger.Debug("stale widget initialization skipped")
			return
		}
		m.createAll()
	})
}

func (m *Manager) createAll() {
	for _, slot := range Slots {
		target, ok := m.doc.Element(slot.ElementID())
		if !ok {
			m.logger.Warn("widget slot missing", zap.String("slot", string(slot)))
			continue
		}
		spec, _ := SpecFor(slot, m.data)
		spec.Width, spec.Height = m.width, m.height

		c, err := m.create(target, spec)
		if err != nil {
			m.logger.Warn("widget create failed",
				zap.String("slot", string(slot)),
				zap.Error(err))
			continue
		}
		m.handles[slot] = &Handle{
			ID:      uuid.NewString(),
			Slot:    slot,
			Target:  target,
			Created: m.s.Now(),
			chart:   c,
		}
	}
	m.logger.Debug("widgets initialized", zap.Int("count", len(m.handles)))
}

func (m *Manager) create(target *viewsurface.Node, spec charting.Spec) (c charting.Chart, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("renderer panic: %v", r)
		}
	}()
	return m.renderer.Create(target, spec)
}

// DestroyAll releases every live widget and empties the registry. A widget
// whose release fails is logged and skipped. Safe to call repeatedly.
//
// A deferred creation scheduled before DestroyAll is cancelled too.
func (m *Manager) DestroyAll() {
	m.generation++
	for _, slot := range Slots {
		h, ok := m.handles[slot]
		if !ok {
			continue
		}
		if err := guard(h.chart.Destroy); err != nil {
			m.logger.Warn("widget destroy failed",
				zap.String("slot", string(slot)),
				zap.String("widget", h.ID),
				zap.Error(err))
		}
		delete(m.handles, slot)
	}
}

// ResizeAll asks every live widget to re-layout. Widgets that cannot
// resize, or fail to, are skipped.
func (m *Manager) ResizeAll() {
	for _, slot := range Slots {
		h, ok := m.handles[slot]
		if !ok {
			continue
		}
		r, ok := h.chart.(charting.Resizer)
		if !ok {
			m.logger.Debug("widget cannot resize", zap.String("slot", string(slot)))
			continue
		}
		if err := guard(r.Resize); err != nil {
			m.logger.Debug("widget resize failed",
				zap.String("slot", string(slot)),
				zap.Error(err))
		}
	}
}

// SetSize records the layout size used for newly created widgets and
// applies it to the slot nodes so the next ResizeAll picks it up.
func (m *Manager) SetSize(width, height int) {
	m.width, m.height = width, height
	for _, slot := range Slots {
		if n, ok := m.doc.Element(slot.ElementID()); ok {
			n.Width, n.Height = width, height
		}
	}
}

// Handles returns the live widgets in slot order.
func (m *Manager) Handles() []Handle {
	out := make([]Handle, 0, len(m.handles))
	for _, slot := range Slots {
		if h, ok := m.handles[slot]; ok {
			out = append(out, *h)
		}
	}
	return out
}

// Count returns the number of live widgets.
func (m *Manager) Count() int {
	return len(m.handles)
}

// guard runs fn, turning a panic into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
