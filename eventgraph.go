// Package eventgraph implements a synchronous, single-threaded reactive
// event-graph: typed cells, declared-dependency links, and a scheduler that
// re-evaluates exactly the links transitively affected by a batch of
// mutations, in dependency order, tolerating cycles and graph growth
// mid-pass.
package eventgraph

import "github.com/coriolis-dev/eventgraph/internal"

// EventGraph is the scheduler handle. It is an explicit value: a program
// may hold several independent graphs, each with its own scope flag and
// dirty-root bookkeeping.
type EventGraph struct {
	eg *internal.EventGraph
}

// NewEventGraph creates an empty graph.
func NewEventGraph() *EventGraph {
	return &EventGraph{eg: internal.NewEventGraph()}
}

// ProcessingContext is the capability passed to an event-scope body and to
// every link callback invoked during propagation. It proves a scope is
// active; cell writes and link registrations require one.
type ProcessingContext struct {
	pc *internal.ProcessingContext
}

// Event opens an event scope on g, runs f, and propagates: on return, every
// link transitively downstream of the mutations f made has activated in
// dependency order (§4.3.4).
//
// If a scope is already active on g — a nested Event call made from outside
// a link callback — the call is dropped: f does not run, ok is false, and
// result is the zero value of R. Link callbacks are handed a
// ProcessingContext already inside the active scope, so this can only
// happen from client code re-entering an EventGraph it is already inside.
func Event[R any](g *EventGraph, f func(ctx *ProcessingContext) R) (result R, ok bool) {
	ran := internal.RunEvent(g.eg, func(ipc *internal.ProcessingContext) {
		result = f(&ProcessingContext{pc: ipc})
	})
	return result, ran
}
