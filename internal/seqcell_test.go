package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeqCellSpliceMutatesAndDirties(t *testing.T) {
	eg := NewEventGraph()
	s := NewSeqCell([]int{1, 2, 3})

	var runs int
	RunEvent(eg, func(ctx *ProcessingContext) {
		RegisterLink(ctx, []CellHandle{s}, nil, func(ctx *ProcessingContext) {
			runs++
		})
	})

	runs = 0
	var removed []int
	RunEvent(eg, func(ctx *ProcessingContext) {
		removed = s.Splice(ctx, 1, 1, []int{20, 30})
	})

	assert.Equal(t, []int{2}, removed)
	assert.Equal(t, []int{1, 20, 30, 3}, s.Get())
	assert.Equal(t, 1, runs)
}

func TestSeqCellNoOpSpliceSkipsDirty(t *testing.T) {
	eg := NewEventGraph()
	s := NewSeqCell([]int{1, 2, 3})

	var runs int
	RunEvent(eg, func(ctx *ProcessingContext) {
		RegisterLink(ctx, []CellHandle{s}, nil, func(ctx *ProcessingContext) {
			runs++
		})
	})

	runs = 0
	RunEvent(eg, func(ctx *ProcessingContext) {
		s.Splice(ctx, 0, 0, nil)
	})
	assert.Equal(t, 0, runs)
}

func TestSeqCellChangesClearedBetweenPasses(t *testing.T) {
	eg := NewEventGraph()
	s := NewSeqCell([]int{1, 2, 3})

	var seenLens []int
	RunEvent(eg, func(ctx *ProcessingContext) {
		RegisterLink(ctx, []CellHandle{s}, nil, func(ctx *ProcessingContext) {
			seenLens = append(seenLens, len(s.Changes()))
		})
	})

	seenLens = nil
	RunEvent(eg, func(ctx *ProcessingContext) {
		s.Insert(ctx, 0, 99)
		s.Remove(ctx, 2)
	})

	assert.Equal(t, []int{2}, seenLens)
	assert.Empty(t, s.Changes(), "changes must be cleared once the pass observing them completes")
}

func TestSeqCellInsertRemove(t *testing.T) {
	eg := NewEventGraph()
	s := NewSeqCell([]string{"a", "b"})

	RunEvent(eg, func(ctx *ProcessingContext) {
		s.Insert(ctx, 1, "x")
	})
	assert.Equal(t, []string{"a", "x", "b"}, s.Get())

	var removed string
	RunEvent(eg, func(ctx *ProcessingContext) {
		removed = s.Remove(ctx, 0)
	})
	assert.Equal(t, "a", removed)
	assert.Equal(t, []string{"x", "b"}, s.Get())
}
