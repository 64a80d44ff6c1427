package insights

import (
	"testing"
	"time"

	"github.com/dalemusser/strataesg/internal/app/dashboard/feed"
	"github.com/dalemusser/strataesg/internal/app/system/eventloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recorder struct {
	texts []string
	cats  []feed.Category
}

func (r *recorder) Append(text string, c feed.Category) feed.Entry {
	r.texts = append(r.texts, text)
	r.cats = append(r.cats, c)
	return feed.Entry{Text: text, Category: c}
}

type fixedPicker []int

func (p *fixedPicker) Intn(n int) int {
	v := (*p)[0] % n
	if len(*p) > 1 {
		*p = (*p)[1:]
	}
	return v
}

func newEmitter() (*Emitter, *recorder, *eventloop.Virtual) {
	v := eventloop.NewVirtual(time.Unix(0, 0))
	r := &recorder{}
	p := fixedPicker{3, 0, 4}
	return New(v, r, &p, 0, zap.NewNop()), r, v
}

func TestStart_TicksEveryInterval(t *testing.T) {
	e, r, v := newEmitter()
	e.Start()

	v.Advance(DefaultInterval - time.Second)
	assert.Empty(t, r.texts)

	v.Advance(time.Second)
	require.Len(t, r.texts, 1)
	assert.Equal(t, Catalog[3], r.texts[0])
	assert.Equal(t, feed.Insight, r.cats[0])

	v.Advance(2 * DefaultInterval)
	assert.Equal(t, []string{Catalog[3], Catalog[0], Catalog[4]}, r.texts)
}

func TestStart_TwiceLeavesOneTimer(t *testing.T) {
	e, r, v := newEmitter()

	e.Start()
	e.Start()

	assert.Equal(t, 1, v.Pending())
	v.Advance(DefaultInterval)
	assert.Len(t, r.texts, 1, "no duplicate tick at the interval boundary")
}

func TestStop(t *testing.T) {
	e, r, v := newEmitter()

	e.Stop()
	assert.False(t, e.Running())

	e.Start()
	assert.True(t, e.Running())
	e.Stop()
	assert.False(t, e.Running())
	assert.Equal(t, 0, v.Pending())

	v.Advance(5 * DefaultInterval)
	assert.Empty(t, r.texts)

	e.Stop()
}

func TestNew_CustomInterval(t *testing.T) {
	v := eventloop.NewVirtual(time.Unix(0, 0))
	r := &recorder{}
	p := fixedPicker{1}
	e := New(v, r, &p, 10*time.Second, zap.NewNop())

	e.Start()
	v.Advance(30 * time.Second)
	assert.Len(t, r.texts, 3)
}

func TestCatalogSize(t *testing.T) {
	assert.Len(t, Catalog, 5)
}

func TestNew_NilLogger(t *testing.T) {
	v := eventloop.NewVirtual(time.Unix(0, 0))
	r := &recorder{}
	p := fixedPicker{0}
	e := New(v, r, &p, 0, nil)

	e.Start()
	e.Start()
	v.Advance(DefaultInterval)
	e.Stop()

	assert.Len(t, r.texts, 1)
}
