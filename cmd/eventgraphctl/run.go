package main

import (
	"github.com/spf13/cobra"

	"github.com/coriolis-dev/eventgraph/internal/scenario"
)

func newRunCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load and replay a scenario file",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(path)
			if err != nil {
				return wrapExit(2, err)
			}
			if err := scenario.Run(sc, cmd.OutOrStdout()); err != nil {
				return wrapExit(1, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "scenario", "", "path to scenario YAML file (required)")
	_ = cmd.MarkFlagRequired("scenario")

	return cmd
}
