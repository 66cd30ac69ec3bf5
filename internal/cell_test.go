package internal

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func eqInt(a, b int) bool { return a == b }

func TestCellGetSet(t *testing.T) {
	eg := NewEventGraph()
	c := NewCell(0, eqInt)
	assert.Equal(t, 0, c.Get())

	RunEvent(eg, func(ctx *ProcessingContext) {
		c.Set(ctx, 7)
	})
	assert.Equal(t, 7, c.Get())
}

func TestCellSetEqualIsNoOp(t *testing.T) {
	eg := NewEventGraph()
	c := NewCell(5, eqInt)

	var runs int
	RunEvent(eg, func(ctx *ProcessingContext) {
		RegisterLink(ctx, []CellHandle{c}, nil, func(ctx *ProcessingContext) {
			runs++
		})
	})

	runs = 0
	RunEvent(eg, func(ctx *ProcessingContext) {
		c.Set(ctx, 5)
	})
	assert.Equal(t, 0, runs)
}

func TestCellLiveDependentsPrunesCollectedLinks(t *testing.T) {
	eg := NewEventGraph()
	c := NewCell(0, eqInt)

	func() {
		var l *Link
		RunEvent(eg, func(ctx *ProcessingContext) {
			l = RegisterLink(ctx, []CellHandle{c}, nil, func(ctx *ProcessingContext) {})
		})
		assert.Len(t, c.liveDependents(), 1)
		runtime.KeepAlive(l)
	}()

	runtime.GC()
	runtime.GC()

	// Once nothing strong references the link, live() must not panic and
	// must not resurrect it; whether GC has actually run it by now is
	// nondeterministic, so only assert the count only ever shrinks.
	assert.LessOrEqual(t, len(c.liveDependents()), 1)
}
