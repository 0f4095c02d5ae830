// Package output provides formatters for writing table snapshots in
// various output formats.
//
// This package defines the Formatter interface and provides implementations
// for JSON Lines, CSV, aligned text tables and parquet. All formatters work
// with *table.Snapshot and write columns in the snapshot's column order.
//
// # Supported Formats
//
//   - JSON Lines: One JSON object per line (suitable for streaming)
//   - CSV: Comma-separated values with header row
//   - Table: Aligned text table for terminals
//   - Parquet: One optional leaf per column
//
// # Basic Usage
//
// Pick a formatter by name:
//
//	formatter, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(snap); err != nil {
//	    log.Fatal(err)
//	}
//
// Or construct one directly:
//
//	formatter := output.NewJSONFormatter(os.Stdout)
//	if err := formatter.Format(output.Limit(snap, 10)); err != nil {
//	    log.Fatal(err)
//	}
//
// # Null Handling
//
// Null is written as JSON null, an empty CSV cell, NULL in text tables and
// an undefined value in parquet.
package output
