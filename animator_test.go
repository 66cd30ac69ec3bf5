package eventgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	eg "github.com/coriolis-dev/eventgraph"
)

func TestAnimatorEaseToSteadyState(t *testing.T) {
	g := eg.NewEventGraph()
	p := eg.NewCell(0.0)

	a := eg.NewAnimator()
	var startCBCalls int
	a.SetStartCB(func() { startCBCalls++ })

	a.Start(eg.Ease(p, eg.Float64Lerp, 1.0, 1.0, eg.Linear))
	assert.Equal(t, 1, startCBCalls)

	alive := a.Update(g, 0.5)
	assert.True(t, alive)
	assert.InDelta(t, 0.5, p.Get(), 1e-9)

	alive = a.Update(g, 0.6)
	assert.False(t, alive)
	assert.Equal(t, 1.0, p.Get())
}

func TestAnimatorReplacesExistingAnimation(t *testing.T) {
	g := eg.NewEventGraph()
	p := eg.NewCell(0.0)

	a := eg.NewAnimator()
	a.Start(eg.Ease(p, eg.Float64Lerp, 100.0, 10.0, eg.Linear))
	a.Start(eg.Ease(p, eg.Float64Lerp, 1.0, 1.0, eg.Linear))

	a.Update(g, 1.0)
	assert.Equal(t, 1.0, p.Get())
}

func TestAnimatorCancel(t *testing.T) {
	g := eg.NewEventGraph()
	p := eg.NewCell(0.0)

	a := eg.NewAnimator()
	a.Start(eg.Ease(p, eg.Float64Lerp, 1.0, 1.0, eg.Linear))
	a.Cancel(p)

	alive := a.Update(g, 1.0)
	assert.False(t, alive)
	assert.Equal(t, 0.0, p.Get())
}

func TestAnimatorClear(t *testing.T) {
	g := eg.NewEventGraph()
	p1 := eg.NewCell(0.0)
	p2 := eg.NewCell(0.0)

	a := eg.NewAnimator()
	a.Start(eg.Ease(p1, eg.Float64Lerp, 1.0, 1.0, eg.Linear))
	a.Start(eg.Ease(p2, eg.Float64Lerp, 1.0, 1.0, eg.Linear))
	a.Clear()

	alive := a.Update(g, 1.0)
	assert.False(t, alive)
	assert.Equal(t, 0.0, p1.Get())
	assert.Equal(t, 0.0, p2.Get())
}
