package eventgraph

import "github.com/coriolis-dev/eventgraph/internal"

// Dependency is the type-erased view of a Cell/SeqCell that Register needs
// to wire a link's inputs and output. The unexported method seals the
// interface to this package, mirroring the sealed Observable/Reaction
// interfaces the teacher uses for the same purpose.
type Dependency interface {
	internalHandle() internal.CellHandle
}

// Cell is a typed, mutable scalar value participating in the graph
// (spec.md §3/§4.1). Its default equality predicate is Go's ==, which
// requires T to be comparable; use NewCellFunc for a custom predicate over
// non-comparable values (structs containing slices, for example).
type Cell[T any] struct {
	c *internal.Cell[T]
}

// NewCell creates a cell with the default (==) equality predicate. Creation
// never dirties anything, so a cell may be constructed inside or outside an
// event scope.
func NewCell[T comparable](initial T) *Cell[T] {
	return &Cell[T]{c: internal.NewCell(initial, func(a, b T) bool { return a == b })}
}

// NewCellFunc creates a cell with a caller-supplied equality predicate.
func NewCellFunc[T any](initial T, eq func(a, b T) bool) *Cell[T] {
	return &Cell[T]{c: internal.NewCell(initial, eq)}
}

// NewCellIn mirrors the external-interface signature Cell<T>.new(ctx,
// initial); ctx is not otherwise required, since creation cannot dirty the
// graph, but registering through a live ProcessingContext documents intent
// at call sites that build a subgraph as part of link activation.
func NewCellIn[T comparable](ctx *ProcessingContext, initial T) *Cell[T] {
	_ = ctx
	return NewCell(initial)
}

// Get returns the current value. No side effect.
func (c *Cell[T]) Get() T { return c.c.Get() }

// Set writes a new value. A value equal under the cell's equality
// predicate is a silent no-op: the cell is not dirtied and nothing
// downstream activates (P1).
func (c *Cell[T]) Set(ctx *ProcessingContext, v T) { c.c.Set(ctx.pc, v) }

func (c *Cell[T]) internalHandle() internal.CellHandle { return c.c }

// Change is one splice applied to a SeqCell during its current dirty epoch.
type Change[T any] = internal.Change[T]

// SeqCell is a sequence-valued cell (spec.md §4.1/§6). Unlike Cell it has no
// single equality predicate over the whole sequence; any splice that
// actually adds or removes elements dirties the cell.
type SeqCell[T any] struct {
	c *internal.SeqCell[T]
}

// NewSeqCell creates a sequence cell from the given initial elements.
func NewSeqCell[T any](initial []T) *SeqCell[T] {
	return &SeqCell[T]{c: internal.NewSeqCell(initial)}
}

// Get returns a copy of the current elements.
func (s *SeqCell[T]) Get() []T { return s.c.Get() }

// Changes returns the splices applied since the cell's dirty epoch last
// closed — an aid for callbacks that want the specific edit rather than a
// full re-scan (§4.1's "may skip splice-level short-circuiting"). Scheduling
// still treats the cell as atomically dirty (Open Question #3 in
// SPEC_FULL.md): a link depending on a SeqCell activates once per pass
// regardless of how many elements changed.
func (s *SeqCell[T]) Changes() []Change[T] { return s.c.Changes() }

// Splice removes `remove` elements at offset and inserts add in their
// place, returning the removed elements.
func (s *SeqCell[T]) Splice(ctx *ProcessingContext, offset, remove int, add []T) []T {
	return s.c.Splice(ctx.pc, offset, remove, add)
}

// Insert inserts v at offset.
func (s *SeqCell[T]) Insert(ctx *ProcessingContext, offset int, v T) {
	s.c.Insert(ctx.pc, offset, v)
}

// Remove removes and returns the element at offset.
func (s *SeqCell[T]) Remove(ctx *ProcessingContext, offset int) T {
	return s.c.Remove(ctx.pc, offset)
}

func (s *SeqCell[T]) internalHandle() internal.CellHandle { return s.c }
