package main

import (
	"github.com/spf13/cobra"

	"github.com/vegasq/parshape/config"
	"github.com/vegasq/parshape/pipeline"
	"github.com/vegasq/parshape/window"
)

// runStep loads the source in args[0], applies step and writes the result.
func (o *options) runStep(cmd *cobra.Command, source string, step pipeline.Step) error {
	snap, err := o.load(cmd.Context(), source)
	if err != nil {
		return err
	}
	out, err := pipeline.New(o.log, step).Run(cmd.Context(), snap)
	if err != nil {
		return err
	}
	return o.write(cmd, out)
}

func newWindowCmd(opts *options) *cobra.Command {
	var cfg config.WindowConfig
	var offset int

	cmd := &cobra.Command{
		Use:   "window <source>",
		Short: "Append a window function column",
		Long: `Append a window function column computed per partition.

Kinds: ROW_NUMBER, RANK, DENSE_RANK, LEAD, LAG, FIRST_VALUE, LAST_VALUE,
RUNNING_SUM, RUNNING_AVG, PERCENT_RANK. Output rows are grouped by partition
in first-seen order and sorted within each partition.

Examples:
  parshape window --kind dense_rank --value score --as dr --order-by "score desc" scores.csv
  parshape window --kind lag --value amount --as prev --offset 2 --partition-by region --order-by quarter sales.parquet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("offset") {
				cfg.Offset = &offset
			}
			spec, err := cfg.Spec()
			if err != nil {
				return err
			}
			engine := window.NewEngine(window.WithWorkers(opts.workers))
			return opts.runStep(cmd, args[0], pipeline.WindowStep{Spec: spec, Engine: engine})
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Kind, "kind", "", "Window function (required)")
	f.StringVar(&cfg.Value, "value", "", "Column the function reads")
	f.StringVar(&cfg.Output, "as", "", "Name of the new column (required)")
	f.StringSliceVar(&cfg.PartitionBy, "partition-by", nil, "Partition columns")
	f.StringSliceVar(&cfg.OrderBy, "order-by", nil, `Sort terms: "col", "col desc" or "col:desc"`)
	f.IntVar(&offset, "offset", window.DefaultOffset, "Row distance for LEAD and LAG")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("as")
	return cmd
}

func newPivotCmd(opts *options) *cobra.Command {
	var cfg config.PivotConfig

	cmd := &cobra.Command{
		Use:   "pivot <source>",
		Short: "Turn the values of one column into columns",
		Long: `Produce one row per distinct (group-by..., index) tuple with one column per
distinct value of the pivot column. No aggregation is done: the first
matching row supplies each cell.

Example:
  parshape pivot --index region --pivot quarter --values amount sales.parquet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runStep(cmd, args[0], pipeline.PivotStep{Spec: cfg.Spec()})
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.Index, "index", "", "Row identifier column (required)")
	f.StringVar(&cfg.Pivot, "pivot", "", "Column whose values become columns (required)")
	f.StringVar(&cfg.Values, "values", "", "Column supplying cell values (required)")
	f.StringSliceVar(&cfg.GroupBy, "group-by", nil, "Extra grouping columns")
	_ = cmd.MarkFlagRequired("index")
	_ = cmd.MarkFlagRequired("pivot")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func newUnpivotCmd(opts *options) *cobra.Command {
	var cfg config.UnpivotConfig

	cmd := &cobra.Command{
		Use:   "unpivot <source>",
		Short: "Turn columns into (variable, value) rows",
		Long: `Emit one row per (input row, value column) pair carrying the id columns,
the value column's name and its value.

Example:
  parshape unpivot --id region --values Q1,Q2 --var quarter --value-name amount wide.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runStep(cmd, args[0], pipeline.UnpivotStep{Spec: cfg.Spec()})
		},
	}

	f := cmd.Flags()
	f.StringSliceVar(&cfg.IDColumns, "id", nil, "Columns copied to every output row")
	f.StringSliceVar(&cfg.ValueColumns, "values", nil, "Columns to unpivot (required)")
	f.StringVar(&cfg.Variable, "var", "", "Name of the variable column (default \"variable\")")
	f.StringVar(&cfg.Value, "value-name", "", "Name of the value column (default \"value\")")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}
