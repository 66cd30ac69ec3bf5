package internal

// Link is an executable dependency node: declared input cells, an optional
// output cell, and a callback (spec.md §3/§4.2). Links strongly own their
// inputs and output; cells only hold weak back-references to links (§9),
// so a link with no remaining strong owner simply drops out of scheduling
// the next time a cell's dep set is walked.
//
// Unlike the teacher's Computed/Effect, a Link's dependencies are declared
// at registration, never inferred by read — spec.md §9 is explicit that
// read-tracking must not be attempted here, since it would change the
// cycle/dirty semantics the scheduler relies on.
type Link struct {
	id     Id
	inputs []CellHandle
	output CellHandle // nil if this link has no output
	cb     func(ctx *ProcessingContext)
}

// RegisterLink wires a new link into the graph and schedules its first
// activation (spec.md §4.2). Registration effects happen immediately,
// before this call returns:
//
//  1. a weak back-reference to the link is added to every input's dep set.
//  2. the link is marked as a new-link seed so Propagate fires it at least
//     once even if none of its inputs were written (P6).
func RegisterLink(ctx *ProcessingContext, inputs []CellHandle, output CellHandle, cb func(ctx *ProcessingContext)) *Link {
	l := &Link{
		id:     NewId(),
		inputs: append([]CellHandle(nil), inputs...),
		output: output,
		cb:     cb,
	}
	for _, in := range l.inputs {
		in.addDependent(l)
	}
	ctx.markNewLink(l)
	return l
}

func (l *Link) ID() Id { return l.id }
