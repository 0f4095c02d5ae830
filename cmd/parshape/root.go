package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vegasq/parshape/internal/logger"
	"github.com/vegasq/parshape/output"
	"github.com/vegasq/parshape/reader"
	"github.com/vegasq/parshape/table"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	format     string
	outputPath string
	limit      int
	logLevel   string
	logFormat  string
	workers    int
	sql        string

	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "parshape",
		Short: "Window functions, pivot and unpivot over tabular data",
		Long: `parshape loads a table from parquet, CSV, PostgreSQL or SQLite, applies
window functions or reshapes it, and writes the result.

Examples:
  parshape window --kind rank --value amount --as rnk --partition-by region --order-by "amount desc" sales.parquet
  parshape pivot --index region --pivot quarter --values amount -f table sales.csv
  parshape unpivot --id region --values Q1,Q2 --var quarter --value-name amount wide.csv
  parshape window --kind row_number --as rn --sql "SELECT * FROM orders" sqlite:shop.db
  parshape run job.yaml
  parshape schema "data/*.parquet"
  parshape shell sales.parquet`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.limit < 0 {
				return fmt.Errorf("--limit must be non-negative, got %d", opts.limit)
			}
			if opts.workers < 1 {
				return fmt.Errorf("--workers must be at least 1, got %d", opts.workers)
			}
			opts.log = logger.Setup(logger.Config{Level: opts.logLevel, Format: opts.logFormat}, cmd.ErrOrStderr())
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.format, "format", "f", output.FormatJSONL, "Output format: "+strings.Join(output.Formats, ", "))
	flags.StringVarP(&opts.outputPath, "output", "o", "", "Write results to file instead of stdout")
	flags.IntVar(&opts.limit, "limit", 0, "Limit number of rows written (0 = unlimited)")
	flags.StringVar(&opts.logLevel, "log-level", "WARN", "Log level: DEBUG, INFO, WARN, ERROR")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format: text, json")
	flags.IntVar(&opts.workers, "workers", 1, "Partitions computed concurrently by window functions")
	flags.StringVar(&opts.sql, "sql", "", "Query sent to database sources (default: the whole --table)")

	root.AddCommand(
		newWindowCmd(opts),
		newPivotCmd(opts),
		newUnpivotCmd(opts),
		newRunCmd(opts),
		newSchemaCmd(opts),
		newShellCmd(opts),
		newVersionCmd(),
	)
	return root
}

// load opens location, sending --sql to database sources.
func (o *options) load(ctx context.Context, location string) (*table.Snapshot, error) {
	src := reader.ParseSource(location)
	src.Query = o.sql
	return o.open(ctx, src)
}

func (o *options) open(ctx context.Context, src reader.Source) (*table.Snapshot, error) {
	snap, err := reader.Open(ctx, src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file '%s' not found: %w", src.Location, err)
		}
		return nil, err
	}
	o.log.Debug("loaded source", "source", src.String(), "rows", snap.Len(), "columns", len(snap.Columns))
	return snap, nil
}

// write sends snap to --output or stdout. When -o is given without -f the
// format follows the file extension.
func (o *options) write(cmd *cobra.Command, snap *table.Snapshot) error {
	format := o.format
	if o.outputPath != "" && !cmd.Flags().Changed("format") {
		format = output.FormatForPath(o.outputPath)
	}
	return writeTo(cmd.OutOrStdout(), o.outputPath, format, output.Limit(snap, o.limit), o.log)
}

func writeTo(stdout io.Writer, path, format string, snap *table.Snapshot, log *slog.Logger) error {
	w := stdout
	var f *os.File
	if path != "" {
		var err error
		f, err = os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		w = f
	}

	formatter, err := output.New(format, w)
	if err != nil {
		if f != nil {
			_ = f.Close()
		}
		return err
	}
	if err := formatter.Format(snap); err != nil {
		if f != nil {
			_ = f.Close()
		}
		return fmt.Errorf("failed to write output: %w", err)
	}
	if f != nil {
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close output file: %w", err)
		}
	}

	log.Debug("wrote output", "format", format, "path", path, "rows", snap.Len())
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "parshape %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}
