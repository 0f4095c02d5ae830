package main

import (
	"github.com/spf13/cobra"

	"github.com/vegasq/parshape/config"
	"github.com/vegasq/parshape/internal/logger"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <job>",
		Short: "Run the steps of a job file",
		Long: `Load the job's input, apply its steps in order and write its output.

Job files may be YAML, JSON or TOML. Any key can be overridden from the
environment, e.g. PARSHAPE_OUTPUT_FORMAT=csv or PARSHAPE_WORKERS=4.
Command-line flags take precedence over both.

Example job:
  input:
    location: sales.parquet
  workers: 4
  steps:
    - window: {kind: rank, value: amount, output: rnk, partition_by: [region], order_by: ["amount desc"]}
    - pivot: {index: region, pivot: quarter, values: rnk}
  output:
    format: csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := config.Load(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if !flags.Changed("log-level") && !flags.Changed("log-format") {
				opts.log = logger.Setup(logger.Config{Level: job.Log.Level, Format: job.Log.Format}, cmd.ErrOrStderr())
			}
			if flags.Changed("workers") {
				job.Workers = opts.workers
			}
			if flags.Changed("sql") {
				job.Input.Query = opts.sql
			}
			if !flags.Changed("output") {
				opts.outputPath = job.Output.Path
			}
			if !flags.Changed("limit") {
				opts.limit = job.Output.Limit
			}
			// The job's format wins over the output file extension.
			if !flags.Changed("format") {
				_ = flags.Set("format", job.Output.Format)
			}

			p, err := job.Pipeline(opts.log)
			if err != nil {
				return err
			}
			snap, err := opts.open(cmd.Context(), job.Input)
			if err != nil {
				return err
			}
			out, err := p.Run(cmd.Context(), snap)
			if err != nil {
				return err
			}
			return opts.write(cmd, out)
		},
	}
}
