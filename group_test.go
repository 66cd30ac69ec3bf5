package eventgraph_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"

	eg "github.com/coriolis-dev/eventgraph"
)

func TestGroupDropReleasesLinks(t *testing.T) {
	g := eg.NewEventGraph()
	a := eg.NewCell(0)
	b := eg.NewCell(0)

	group := eg.NewGroup()
	eg.Event(g, func(ctx *eg.ProcessingContext) any {
		group.TrackLink(eg.Register(ctx, []eg.Dependency{a}, b, func(ctx *eg.ProcessingContext) {
			b.Set(ctx, a.Get()+1)
		}))
		return nil
	})

	eg.Event(g, func(ctx *eg.ProcessingContext) any {
		a.Set(ctx, 1)
		return nil
	})
	assert.Equal(t, 2, b.Get())

	group.Drop()
	runtime.GC()
	runtime.GC()

	eg.Event(g, func(ctx *eg.ProcessingContext) any {
		a.Set(ctx, 2)
		return nil
	})
	// Once nothing strongly references the link, it may no longer activate;
	// b either stays at its prior value (link collected) or keeps tracking a
	// (collection hasn't happened yet) — either is acceptable, but the call
	// must not panic or leave b in some other, inconsistent state.
	assert.True(t, b.Get() == 2 || b.Get() == 3)
}

func TestGroupTrackLinkChaining(t *testing.T) {
	g := eg.NewEventGraph()
	a := eg.NewCell(0)

	group := eg.NewGroup()
	var l *eg.Link
	eg.Event(g, func(ctx *eg.ProcessingContext) any {
		l = group.TrackLink(eg.Register(ctx, []eg.Dependency{a}, nil, func(ctx *eg.ProcessingContext) {}))
		return nil
	})
	assert.NotNil(t, l)
}
