package internal

// orderedCellSet is the dirty-root bookkeeping for a single event scope: an
// insertion-ordered, identity-deduplicated set of cells (spec.md §4.3.2).
type orderedCellSet struct {
	order []Id
	items map[Id]CellHandle
}

func newOrderedCellSet() *orderedCellSet {
	return &orderedCellSet{items: make(map[Id]CellHandle)}
}

func (s *orderedCellSet) add(c CellHandle) {
	if _, ok := s.items[c.ID()]; ok {
		return
	}
	s.order = append(s.order, c.ID())
	s.items[c.ID()] = c
}

func (s *orderedCellSet) each(f func(CellHandle)) {
	for _, id := range s.order {
		f(s.items[id])
	}
}

func (s *orderedCellSet) len() int { return len(s.order) }

// orderedLinkSet is the equivalent bookkeeping for newly-registered links.
type orderedLinkSet struct {
	order []Id
	items map[Id]*Link
}

func newOrderedLinkSet() *orderedLinkSet {
	return &orderedLinkSet{items: make(map[Id]*Link)}
}

func (s *orderedLinkSet) add(l *Link) {
	if _, ok := s.items[l.id]; ok {
		return
	}
	s.order = append(s.order, l.id)
	s.items[l.id] = l
}

func (s *orderedLinkSet) each(f func(*Link)) {
	for _, id := range s.order {
		f(s.items[id])
	}
}

func (s *orderedLinkSet) len() int { return len(s.order) }

// pendingWork is the accumulated dirty-root/new-link state for one pass
// (spec.md §3 "Dirty set"). Propagate takes a snapshot of the current
// pendingWork, replaces it with a fresh one, and runs a pass against the
// snapshot — writes/registrations made during that pass land in the fresh
// one and seed the next pass (§4.3.4 step 3).
type pendingWork struct {
	dirtyCells *orderedCellSet
	newLinks   *orderedLinkSet
}

func newPendingWork() *pendingWork {
	return &pendingWork{dirtyCells: newOrderedCellSet(), newLinks: newOrderedLinkSet()}
}

func (w *pendingWork) empty() bool {
	return w.dirtyCells.len() == 0 && w.newLinks.len() == 0
}

// EventGraph owns the shared graph state. It is an explicit value: there is
// no global mutable state and no goroutine-local lookup (spec.md §9
// "Global mutable state: None"), which is also why the teacher's
// per-goroutine Runtime registry and petermattis/goid dependency have no
// home here — every operation takes an EventGraph or a ProcessingContext
// derived from one.
type EventGraph struct {
	scoped  bool
	pending *pendingWork
	metrics *Metrics

	// pass is non-nil only while Propagate's activation loop is running a
	// pass, so markDirty can consult it to avoid re-seeding work a
	// not-yet-run link in the very same pass is already going to observe.
	pass *passState
}

// NewEventGraph creates an empty graph with metrics wired to the default
// Prometheus registry, matching the ambient-observability pattern the
// example pack uses for background schedulers.
func NewEventGraph() *EventGraph {
	return &EventGraph{pending: newPendingWork(), metrics: DefaultMetrics()}
}

// ProcessingContext is the capability handed to event-scope bodies and link
// callbacks. It carries no state of its own beyond a reference to the owning
// EventGraph — cells and links only need it as proof that a scope is active.
type ProcessingContext struct {
	eg *EventGraph
}

func (ctx *ProcessingContext) markDirty(c CellHandle) {
	if p := ctx.eg.pass; p != nil && p.settled(c) {
		return
	}
	ctx.eg.pending.dirtyCells.add(c)
}

func (ctx *ProcessingContext) markNewLink(l *Link) {
	ctx.eg.pending.newLinks.add(l)
}

// RunEvent opens an event scope on eg and runs f, then drains propagation.
// It reports whether f actually ran: per spec.md §4.3.1, a nested call made
// while a scope is already active (from outside a link callback — callbacks
// never see a fresh top-level call, they reuse the active ProcessingContext)
// is silently dropped.
//
// The scoped flag is cleared via defer so it always drops on every exit
// path, including a panic raised by f or by a link callback during
// propagation (spec.md §7): Go's own panic/defer unwinding satisfies
// "release-on-all-exit-paths" without an explicit recover.
func RunEvent(eg *EventGraph, f func(ctx *ProcessingContext)) bool {
	if eg.scoped {
		return false
	}

	eg.scoped = true
	defer func() { eg.scoped = false }()

	ctx := &ProcessingContext{eg: eg}
	f(ctx)
	Propagate(eg, ctx)
	return true
}
