// Command eventgraphctl loads a declarative scenario file and replays it
// against a fresh eventgraph.EventGraph, printing the per-event activation
// trace. It exists to exercise the engine end to end from outside its own
// test suite, the way a small conformance-scenario CLI does for a bigger
// engine.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCodeFor(err))
	}
}
