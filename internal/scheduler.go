package internal

// edge is a directed producer→consumer link pair, used only as a map key
// for recording cycle-break edges (spec.md §3 "Cycle edges").
type edge struct {
	from Id // producer: the link whose output feeds the consumer
	to   Id // consumer: the link that declared that output as an input
}

// involvedSet is the per-pass result of the downstream DFS (spec.md §4.3.3).
type involvedSet struct {
	links      map[Id]*Link // I
	order      []Id         // discovery order, for deterministic leaf/activation iteration
	cycleBreak map[edge]bool
	writerOf   map[Id][]*Link // cell id -> involved links whose output is that cell
}

// buildInvolvedSet walks downstream from the seeds (dirty cells and newly
// registered links) building the involved set and recording cycle-break
// edges along the way (spec.md §4.3.3).
func buildInvolvedSet(work *pendingWork) *involvedSet {
	res := &involvedSet{
		links:      make(map[Id]*Link),
		cycleBreak: make(map[edge]bool),
		writerOf:   make(map[Id][]*Link),
	}
	onStack := make(map[Id]bool)

	var visitLink func(l *Link)
	visitFromOutput := func(from *Link, output CellHandle) {
		if output == nil {
			return
		}
		for _, dep := range output.liveDependents() {
			if onStack[dep.id] {
				res.cycleBreak[edge{from: from.id, to: dep.id}] = true
				continue
			}
			visitLink(dep)
		}
	}
	visitLink = func(l *Link) {
		if _, done := res.links[l.id]; done {
			return
		}
		res.links[l.id] = l
		res.order = append(res.order, l.id)
		if l.output != nil {
			res.writerOf[l.output.ID()] = append(res.writerOf[l.output.ID()], l)
		}

		onStack[l.id] = true
		visitFromOutput(l, l.output)
		onStack[l.id] = false
	}

	work.dirtyCells.each(func(c CellHandle) {
		for _, dep := range c.liveDependents() {
			visitLink(dep)
		}
	})
	// New links are virtual seeds: guaranteed to be involved (and thus to
	// activate at least once, P6) even when unreached from any dirty cell.
	work.newLinks.each(func(l *Link) {
		visitLink(l)
	})

	return res
}

// leaves returns the involved links whose output (if any) has no live,
// uncycled downstream involved link — the sinks of the cycle-broken
// involved DAG, and the starting points for the upstream activation DFS.
func (res *involvedSet) leaves() []*Link {
	var out []*Link
	for _, id := range res.order {
		l := res.links[id]
		isLeaf := true
		if l.output != nil {
			for _, dep := range l.output.liveDependents() {
				if _, involved := res.links[dep.id]; !involved {
					continue
				}
				if res.cycleBreak[edge{from: l.id, to: dep.id}] {
					continue
				}
				isLeaf = false
				break
			}
		}
		if isLeaf {
			out = append(out, l)
		}
	}
	return out
}

// activationOrder performs the upstream DFS from each leaf (spec.md
// §4.3.4 step 2), appending each link to the order on unwind (post-order),
// which yields a dependency-first topological order over the cycle-broken
// involved subgraph (P2). Every involved link is visited exactly once
// (P3): links unreachable upstream from any leaf (impossible in a
// connected involved DAG, but visited defensively) are appended afterward.
func (res *involvedSet) activationOrder() []*Link {
	visited := make(map[Id]bool, len(res.links))
	order := make([]*Link, 0, len(res.links))

	var visit func(l *Link)
	visit = func(l *Link) {
		if visited[l.id] {
			return
		}
		visited[l.id] = true
		for _, in := range l.inputs {
			for _, writer := range res.writerOf[in.ID()] {
				if _, involved := res.links[writer.id]; !involved {
					continue
				}
				if res.cycleBreak[edge{from: writer.id, to: l.id}] {
					continue
				}
				visit(writer)
			}
		}
		order = append(order, l)
	}

	for _, l := range res.leaves() {
		visit(l)
	}
	for _, id := range res.order {
		visit(res.links[id])
	}
	return order
}

// changeClearable is implemented by SeqCell to reset its per-pass mutation
// log once a pass that observed it has finished (mirrors vec.rs's clean()).
type changeClearable interface {
	clearChanges()
}

// passState is the transient bookkeeping Propagate exposes to markDirty for
// the duration of one pass's activation loop (spec.md §4.3.5: "a callback
// thus cannot retroactively change ordering within its own pass; it
// schedules follow-up work"). A write made from inside a callback only
// schedules genuine follow-up work — gets queued into the next pass's
// pendingWork — when it isn't already covered by this same pass's
// involved-set closure.
type passState struct {
	involved   map[Id]*Link
	activated  map[Id]bool
	suppressed map[Id]bool
}

// settled reports whether a write to c can be dropped instead of reseeding
// the next pass. It can, when every live dependent link of c is either
// suppressed for the rest of this event (a cycle-break producer: it will
// never run again, so it never needs to see the write) or involved in this
// pass and not yet activated (it hasn't run yet this pass and will read the
// fresh value when activationOrder reaches it). A cell with no live
// dependents is vacuously settled: nothing needs to see the write at all.
// Any dependent that is neither — unreached by this pass, or already
// activated earlier in it — means the write is new information only a
// further pass can deliver.
func (p *passState) settled(c CellHandle) bool {
	for _, dep := range c.liveDependents() {
		if p.suppressed[dep.id] {
			continue
		}
		if _, involved := p.involved[dep.id]; !involved || p.activated[dep.id] {
			return false
		}
	}
	return true
}

// Propagate runs passes until no dirty roots or new links remain (spec.md
// §4.3.4). Each pass activates every involved link at most once (P3); work
// discovered during a pass (further writes, further registrations) is
// deferred to the next pass rather than spliced into the current one.
//
// A link found on the producer side of a cycle-break edge (spec.md §8
// scenario 3, the textbox-mirror case) is the side whose output feeds back
// into a link already reached from the seed this event — its own output
// cell is an ancestor of the seed path, so re-running it would only
// reproduce a value the seed path already established. Such a link is
// suppressed for the rest of this event, not just the pass that discovered
// it: the cell it would have written keeps getting marked dirty pass after
// pass by its cycle partner (which does need to keep running), and without
// a sticky suppression the two links would trade the producer role back and
// forth every pass, each one firing once more than the mirrored scenario
// calls for.
func Propagate(eg *EventGraph, ctx *ProcessingContext) {
	suppressed := make(map[Id]bool)

	for !eg.pending.empty() {
		work := eg.pending
		eg.pending = newPendingWork()

		eg.metrics.passesTotal.Inc()

		res := buildInvolvedSet(work)
		order := res.activationOrder()

		for e := range res.cycleBreak {
			suppressed[e.from] = true
		}

		eg.metrics.cycleBreaksTotal.Add(float64(len(res.cycleBreak)))

		pass := &passState{involved: res.links, activated: make(map[Id]bool, len(order)), suppressed: suppressed}
		eg.pass = pass

		activated := 0
		for _, l := range order {
			// A newly registered link still runs in the pass that first
			// involves it, even as a cycle-break producer, so registration
			// always yields at least one activation (P6).
			if _, isNew := work.newLinks.items[l.id]; suppressed[l.id] && !isNew {
				continue
			}
			// Marked before the callback runs, not after: a link that
			// writes back into one of its own inputs mid-callback (spec.md
			// §8 scenario 4) must see itself as already-activated this
			// pass, so that write is treated as genuine follow-up work
			// rather than settled.
			pass.activated[l.id] = true
			l.cb(ctx)
			activated++
		}
		eg.pass = nil
		eg.metrics.linksActivated.Add(float64(activated))

		// Clear each dirty SeqCell's mutation log only after every link that
		// saw it dirty this pass has had a chance to read Changes(); a
		// splice made by one of those callbacks lands in a fresh log for
		// the next pass instead of being wiped before anyone reads it.
		work.dirtyCells.each(func(c CellHandle) {
			if cc, ok := c.(changeClearable); ok {
				cc.clearChanges()
			}
		})
	}
}
