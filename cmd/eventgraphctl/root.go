package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// exitError carries a process exit code alongside an error, mirroring the
// retrieval pack's CLI exit-code convention.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func wrapExit(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

func exitCodeFor(err error) int {
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eventgraphctl",
		Short: "Replay declarative event-graph scenarios",
		Long: `eventgraphctl loads a YAML scenario describing cells, links, and a
sequence of events, wires it into an eventgraph.EventGraph, and prints the
activation trace produced as each event propagates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newRunCommand())
	return cmd
}
