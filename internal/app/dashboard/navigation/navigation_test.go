package navigation

import (
	"testing"
	"time"

	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"github.com/dalemusser/strataesg/internal/app/system/viewsurface"
	"go.uber.org/zap"
)

type countingResizer struct{ calls int }

func (r *countingResizer) ResizeAll() { r.calls++ }

func setup() (*Controller, *viewsurface.Document, *eventloop.Virtual, *countingResizer) {
	doc := viewsurface.NewDocument()
	nav := viewsurface.NewNode("sidebar", "nav")
	doc.Append(doc.Root(), nav)
	for _, s := range Sections {
		sec := viewsurface.NewNode(s.ElementID(), "section")
		sec.Hidden = true
		doc.Append(doc.Root(), sec)

		item := viewsurface.NewNode("nav-"+string(s), "a")
		item.SetAttr(NavAttr, string(s))
		doc.Append(nav, item)
	}
	// A second affordance for the same section, e.g. a quick-action button.
	btn := viewsurface.NewNode("quick-upload", "button")
	btn.SetAttr(NavAttr, string(Upload))
	doc.Append(doc.Root(), btn)

	v := eventloop.NewVirtual(time.Unix(0, 0))
	r := &countingResizer{}
	return New(v, doc, r, zap.NewNop()), doc, v, r
}

func visible(doc *viewsurface.Document) []string {
	var out []string
	for _, s := range Sections {
		if n, _ := doc.Element(s.ElementID()); !n.Hidden {
			out = append(out, string(s))
		}
	}
	return out
}

func TestGoTo_ExactlyOneActive(t *testing.T) {
	for _, s := range Sections {
		t.Run(string(s), func(t *testing.T) {
			c, doc, _, _ := setup()
			c.GoTo(string(Analytics))

			if !c.GoTo(string(s)) {
				t.Fatalf("GoTo(%q) = false", s)
			}
			if c.Active() != s {
				t.Errorf("Active() = %q, want %q", c.Active(), s)
			}
			got := visible(doc)
			if len(got) != 1 || got[0] != string(s) {
				t.Errorf("visible sections = %v, want [%s]", got, s)
			}
		})
	}
}

func TestGoTo_Unknown(t *testing.T) {
	c, doc, _, _ := setup()
	c.GoTo(string(Reports))

	if c.GoTo("billing") {
		t.Error("GoTo(billing) = true, want false")
	}
	if c.GoTo("") {
		t.Error("GoTo(\"\") = true, want false")
	}
	if c.Active() != Reports {
		t.Errorf("Active() = %q, want %q", c.Active(), Reports)
	}
	if got := visible(doc); len(got) != 1 || got[0] != string(Reports) {
		t.Errorf("visible sections = %v, want [reports]", got)
	}
}

func TestGoTo_IgnoresNonSectionRegions(t *testing.T) {
	c, doc, _, _ := setup()
	// Regions inside the upload view share the "-section" id suffix.
	for _, id := range []string{"processing-section", "results-section"} {
		doc.Append(doc.Root(), viewsurface.NewNode(id, "div"))
	}
	c.GoTo(string(Dashboard))

	for _, name := range []string{"processing", "results"} {
		if c.GoTo(name) {
			t.Errorf("GoTo(%q) = true, want false", name)
		}
	}
	if c.Active() != Dashboard {
		t.Errorf("Active() = %q, want %q", c.Active(), Dashboard)
	}
	if got := visible(doc); len(got) != 1 || got[0] != string(Dashboard) {
		t.Errorf("visible sections = %v, want [dashboard]", got)
	}
}

func TestGoTo_MissingRegion(t *testing.T) {
	c, doc, _, _ := setup()
	c.GoTo(string(Reports))
	n, _ := doc.Element(Offsets.ElementID())
	doc.Detach(n)

	if c.GoTo(string(Offsets)) {
		t.Error("GoTo(offsets) = true with no region, want false")
	}
	if c.Active() != Reports {
		t.Errorf("Active() = %q, want %q", c.Active(), Reports)
	}
}

func TestParse(t *testing.T) {
	for _, s := range Sections {
		if got, ok := Parse(string(s)); !ok || got != s {
			t.Errorf("Parse(%q) = %q, %v", s, got, ok)
		}
	}
	for _, name := range []string{"", "processing", "Dashboard"} {
		if _, ok := Parse(name); ok {
			t.Errorf("Parse(%q) ok = true, want false", name)
		}
	}
}

func TestNew_NilLogger(t *testing.T) {
	c := New(eventloop.NewVirtual(time.Unix(0, 0)), viewsurface.NewDocument(), nil, nil)
	if c.GoTo("billing") {
		t.Error("GoTo(billing) = true")
	}
}

func TestGoTo_InitialStateIsNone(t *testing.T) {
	c, _, _, _ := setup()
	if c.Active() != None {
		t.Errorf("Active() = %q, want none", c.Active())
	}
}

func TestGoTo_SyncsNavAffordances(t *testing.T) {
	c, doc, _, _ := setup()
	c.GoTo(string(Upload))

	for _, n := range doc.HavingAttr(NavAttr) {
		v, _ := n.Attr(NavAttr)
		if want := v == string(Upload); n.HasClass("active") != want {
			t.Errorf("%s active = %v, want %v", n.ID, n.HasClass("active"), want)
		}
	}
	btn, _ := doc.Element("quick-upload")
	if !btn.HasClass("active") {
		t.Error("every affordance for the section should be marked active")
	}
}

func TestGoTo_DashboardSchedulesResize(t *testing.T) {
	c, _, v, r := setup()

	c.GoTo(string(Dashboard))
	if r.calls != 0 {
		t.Fatal("resize should be delayed")
	}
	v.Advance(ResizeDelay - time.Millisecond)
	if r.calls != 0 {
		t.Fatal("resize ran before the delay elapsed")
	}
	v.Advance(time.Millisecond)
	if r.calls != 1 {
		t.Errorf("resize calls = %d, want 1", r.calls)
	}

	c.GoTo(string(Offsets))
	v.Advance(time.Second)
	if r.calls != 1 {
		t.Errorf("non-dashboard section triggered resize")
	}
}
