package feed

import (
	"fmt"
	"testing"
	"time"

	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"github.com/dalemusser/strataesg/internal/app/system/viewsurface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup() (*Feed, *viewsurface.Document, *eventloop.Virtual) {
	doc := viewsurface.NewDocument()
	doc.Append(doc.Root(), viewsurface.NewNode(ContainerID, "div"))
	v := eventloop.NewVirtual(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	return New(v, doc, zap.NewNop()), doc, v
}

func container(doc *viewsurface.Document) *viewsurface.Node {
	n, _ := doc.Element(ContainerID)
	return n
}

func TestAppend_NewestFirstAndBounded(t *testing.T) {
	f, _, _ := setup()

	for i := 1; i <= 8; i++ {
		f.Append(fmt.Sprintf("event %d", i), Insight)
	}

	got := f.Entries()
	require.Len(t, got, Capacity)
	for i, e := range got {
		assert.Equal(t, fmt.Sprintf("event %d", 8-i), e.Text)
	}
}

func TestAppend_EvictedNodeLeavesThenDetaches(t *testing.T) {
	f, doc, v := setup()

	var first Entry
	for i := 0; i < Capacity; i++ {
		e := f.Append(fmt.Sprintf("event %d", i), Upload)
		if i == 0 {
			first = e
		}
	}
	v.Flush()

	f.Append("one more", Report)
	old, ok := doc.Element("activity-" + first.ID)
	require.True(t, ok, "evicted node stays attached during its exit transition")
	assert.True(t, old.HasClass("leaving"))
	assert.Len(t, f.Entries(), Capacity, "data is evicted immediately")

	v.Advance(LeaveDelay - time.Millisecond)
	_, ok = doc.Element("activity-" + first.ID)
	assert.True(t, ok)

	v.Advance(time.Millisecond)
	_, ok = doc.Element("activity-" + first.ID)
	assert.False(t, ok)
	assert.Len(t, container(doc).Children(), Capacity)
}

func TestAppend_NodeMarkup(t *testing.T) {
	f, doc, v := setup()

	f.Append("first", Report)
	e := f.Append("second", Offset)

	kids := container(doc).Children()
	require.Len(t, kids, 2)
	n := kids[0]
	assert.Equal(t, "activity-"+e.ID, n.ID)
	assert.Equal(t, "second", n.Text)
	assert.True(t, n.HasClass("activity-item"))
	assert.True(t, n.HasClass("entering"))
	cat, _ := n.Attr("data-category")
	assert.Equal(t, "offset", cat)
	icon, _ := n.Attr("data-icon")
	assert.Equal(t, Icon(Offset), icon)

	v.Flush()
	assert.False(t, n.HasClass("entering"), "entering is cleared on the next turn")
}

func TestAppend_UnknownCategory(t *testing.T) {
	f, _, _ := setup()
	e := f.Append("mystery", Category("weather"))
	assert.Equal(t, DefaultIcon, e.Icon)
	assert.Equal(t, Category("weather"), e.Category)
}

func TestAppend_SanitizesText(t *testing.T) {
	f, _, _ := setup()
	e := f.Append(`<img src=x onerror="alert(1)">Report <b>ready</b>`, Report)
	assert.Equal(t, "Report ready", e.Text)
}

func TestAppend_MissingContainerKeepsData(t *testing.T) {
	v := eventloop.NewVirtual(time.Unix(0, 0))
	f := New(v, viewsurface.NewDocument(), zap.NewNop())

	for i := 0; i < 7; i++ {
		f.Append("x", Insight)
	}
	v.Advance(time.Second)
	assert.Equal(t, Capacity, f.Len())
}

func TestAppend_InsertedAtUsesScheduler(t *testing.T) {
	f, _, v := setup()
	v.Advance(90 * time.Second)
	e := f.Append("late", Insight)
	assert.Equal(t, v.Now(), e.InsertedAt)
}

func TestNew_NilLogger(t *testing.T) {
	doc := viewsurface.NewDocument()
	doc.Append(doc.Root(), viewsurface.NewNode(ContainerID, "div"))
	v := eventloop.NewVirtual(time.Unix(0, 0))
	f := New(v, doc, nil)

	for i := 0; i <= Capacity; i++ {
		f.Append("entry", Category("unlisted"))
	}
	v.Advance(time.Minute)
	assert.Len(t, f.Entries(), Capacity)
}
