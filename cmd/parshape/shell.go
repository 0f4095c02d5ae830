package main

import (
	"github.com/spf13/cobra"

	"github.com/vegasq/parshape/internal/shell"
	"github.com/vegasq/parshape/window"
)

func newShellCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "shell [source]",
		Short: "Explore and reshape data interactively",
		Long: `Start an interactive prompt. Type help for the list of commands.

Example session:
  parshape> load sales.parquet
  parshape> window kind=rank value=amount as=rnk partition=region order=amount:desc
  parshape> pivot index=region pivot=quarter values=rnk
  parshape> show
  parshape> save ranks.csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := shell.NewSession(
				shell.WithEngine(window.NewEngine(window.WithWorkers(opts.workers))),
				shell.WithLogger(opts.log),
			)
			if len(args) == 1 {
				msg, err := s.Execute(cmd.Context(), "load "+args[0])
				if err != nil {
					return err
				}
				cmd.Println(msg)
			}
			return s.Run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}
