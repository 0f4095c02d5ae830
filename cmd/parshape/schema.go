package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vegasq/parshape/reader"
	"github.com/vegasq/parshape/table"
)

var schemaColumns = []string{"name", "type", "physical_type", "logical_type", "required", "optional", "repeated"}

func newSchemaCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file.parquet>",
		Short: "Describe the columns of a parquet file",
		Long: `Print one row per leaf column of a parquet file. For glob patterns the
first matching file is described.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveSchemaPath(cmd, args[0])
			if err != nil {
				return err
			}

			infos, err := reader.ExtractSchemaInfo(path)
			if err != nil {
				return err
			}
			return opts.write(cmd, schemaSnapshot(infos))
		},
	}
}

// resolveSchemaPath picks the first match of a glob pattern.
func resolveSchemaPath(cmd *cobra.Command, pattern string) (string, error) {
	if !strings.ContainsAny(pattern, "*?[]{}") {
		return pattern, nil
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > 1 {
		fmt.Fprintf(cmd.ErrOrStderr(), "# Showing schema from: %s (%d files matched)\n", matches[0], len(matches))
	}
	return matches[0], nil
}

func schemaSnapshot(infos []reader.SchemaInfo) *table.Snapshot {
	rows := make([]table.Row, len(infos))
	for i, info := range infos {
		rows[i] = table.Row{
			"name":          table.Text(info.Name),
			"type":          table.Text(info.Type),
			"physical_type": table.Text(info.PhysicalType),
			"logical_type":  table.Text(info.LogicalType),
			"required":      table.Bool(info.Required),
			"optional":      table.Bool(info.Optional),
			"repeated":      table.Bool(info.Repeated),
		}
	}
	return table.New(schemaColumns, rows)
}
