package eventgraph

import "github.com/coriolis-dev/eventgraph/internal"

// Link is an executable dependency between declared input cells and an
// optional output cell (spec.md §3/§4.2). Callers hold the returned *Link
// strongly to keep it alive; cells only hold weak back-references, so
// dropping every strong reference to a Link removes it from future
// activations (P8) without any explicit unregister call.
type Link struct {
	l *internal.Link
}

// Register wires a new link into ctx's EventGraph and schedules its first
// activation (P6), regardless of whether any input was written. cb may
// read inputs (by closing over the concrete typed Cell/SeqCell values
// passed to it — inputs here only builds the dependency graph, matching
// the original LinkCb contract's separation between declared inputs and
// how the callback actually reads them), write outputs and other cells,
// register further links, or short-circuit by returning without writing.
//
// A link registered with no inputs is legal: it activates once on
// registration and never again.
func Register(ctx *ProcessingContext, inputs []Dependency, output Dependency, cb func(ctx *ProcessingContext)) *Link {
	handles := make([]internal.CellHandle, len(inputs))
	for i, d := range inputs {
		handles[i] = d.internalHandle()
	}

	var outHandle internal.CellHandle
	if output != nil {
		outHandle = output.internalHandle()
	}

	l := internal.RegisterLink(ctx.pc, handles, outHandle, func(ipc *internal.ProcessingContext) {
		cb(&ProcessingContext{pc: ipc})
	})
	return &Link{l: l}
}
