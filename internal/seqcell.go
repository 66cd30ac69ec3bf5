package internal

// Change records one splice applied to a SeqCell during the current dirty
// epoch, mirroring the original implementation's vec.rs Change{offset,
// remove, add}. It supplements spec.md §4.1's sequence-cell mutation
// operations: the design treats the cell as atomically dirty for scheduling
// purposes (Open Question #3), but callbacks that specifically want to know
// what changed — rather than re-scanning the whole sequence — can read the
// accumulated log.
type Change[T any] struct {
	Offset int
	Remove int
	Add    []T
}

// SeqCell is the sequence-valued counterpart to Cell. Unlike Cell it has no
// single-value equality predicate; per spec.md §4.1, "implementations may
// choose to skip splice-level short-circuiting" — here any splice that
// actually removes or adds elements dirties the cell unconditionally.
type SeqCell[T any] struct {
	id      Id
	deps    *depSet
	value   []T
	changes []Change[T]
}

func NewSeqCell[T any](initial []T) *SeqCell[T] {
	return &SeqCell[T]{
		id:    NewId(),
		deps:  newDepSet(),
		value: append([]T(nil), initial...),
	}
}

func (s *SeqCell[T]) ID() Id { return s.id }

func (s *SeqCell[T]) addDependent(l *Link) { s.deps.add(l) }

func (s *SeqCell[T]) liveDependents() []*Link { return s.deps.live() }

// Get returns a copy of the current sequence, so callers can't mutate
// internal state without going through Splice/Insert/Remove.
func (s *SeqCell[T]) Get() []T {
	out := make([]T, len(s.value))
	copy(out, s.value)
	return out
}

// Changes returns the splices applied since the last time this cell's dirty
// epoch was cleaned (i.e. since the pass that observed it last completed).
func (s *SeqCell[T]) Changes() []Change[T] {
	return s.changes
}

// Splice removes `remove` elements starting at offset and inserts `add` in
// their place, returning the removed elements. A splice with remove == 0 and
// len(add) == 0 has no effect and does not dirty the cell.
func (s *SeqCell[T]) Splice(ctx *ProcessingContext, offset, remove int, add []T) []T {
	if remove == 0 && len(add) == 0 {
		return nil
	}

	removed := make([]T, remove)
	copy(removed, s.value[offset:offset+remove])

	tail := append([]T(nil), s.value[offset+remove:]...)
	s.value = append(s.value[:offset], add...)
	s.value = append(s.value, tail...)

	s.changes = append(s.changes, Change[T]{Offset: offset, Remove: remove, Add: append([]T(nil), add...)})

	ctx.markDirty(s)
	return removed
}

func (s *SeqCell[T]) Insert(ctx *ProcessingContext, offset int, v T) {
	s.Splice(ctx, offset, 0, []T{v})
}

func (s *SeqCell[T]) Remove(ctx *ProcessingContext, offset int) T {
	removed := s.Splice(ctx, offset, 1, nil)
	var zero T
	if len(removed) == 0 {
		return zero
	}
	return removed[0]
}

// clearChanges is invoked once a pass has observed this cell's changes and
// is starting a fresh dirty epoch for it (mirrors _Vec::clean in vec.rs).
func (s *SeqCell[T]) clearChanges() { s.changes = nil }
