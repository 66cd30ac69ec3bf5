package internal

import "weak"

// CellHandle is the type-erased view of a Cell/SeqCell that the scheduler
// needs: identity plus the ability to register and enumerate dependent
// links. Links hold inputs/output as CellHandle so that a single Link can
// mix cells of different element types, mirroring the Vec<Value> trait
// object inputs() the original implementation's LinkCb trait exposes.
type CellHandle interface {
	ID() Id
	addDependent(l *Link)
	liveDependents() []*Link
}

// depSet is the weak back-reference list a cell keeps of the links that
// declared it as an input (spec invariants I3/I4). It is the Go-idiomatic
// replacement for the teacher's intrusive DependencyLink linked list: Go
// has no borrow checker forcing an intrusive list, and the standard
// library's weak.Pointer already gives lazy invalidation for free, so a
// small ordered map suffices and is far less error-prone than reimplementing
// the teacher's manual prev/next splicing.
type depSet struct {
	order []Id
	links map[Id]weak.Pointer[Link]
}

func newDepSet() *depSet {
	return &depSet{links: make(map[Id]weak.Pointer[Link])}
}

// add registers l as a dependent, deduplicated by link identity (I3). It is
// a no-op if l is already present, even if the previous weak entry has since
// gone stale — the caller always holds a live strong reference at
// registration time, so staleness cannot apply here.
func (d *depSet) add(l *Link) {
	if _, ok := d.links[l.id]; ok {
		return
	}
	d.order = append(d.order, l.id)
	d.links[l.id] = weak.Make(l)
}

// live upgrades every weak entry, drops stale ones lazily (I3), and returns
// the surviving links in insertion order (recommended and adopted per
// spec.md's Open Questions / determinism note).
func (d *depSet) live() []*Link {
	live := make([]*Link, 0, len(d.order))
	kept := d.order[:0]
	for _, id := range d.order {
		wp, ok := d.links[id]
		if !ok {
			continue
		}
		if l := wp.Value(); l != nil {
			live = append(live, l)
			kept = append(kept, id)
		} else {
			delete(d.links, id)
		}
	}
	d.order = kept
	return live
}
