package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/parshape/table"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write a snapshot in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes the snapshot in the formatter's specific format
	Format(t *table.Snapshot) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Names accepted by New.
const (
	FormatJSONL   = "jsonl"
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatTable   = "table"
	FormatParquet = "parquet"
)

// Formats lists the names accepted by New.
var Formats = []string{FormatJSONL, FormatJSON, FormatCSV, FormatTable, FormatParquet}

// New returns the formatter registered under format, writing to w.
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case FormatJSONL, FormatJSON, "":
		return NewJSONFormatter(w), nil
	case FormatCSV:
		return NewCSVFormatter(w), nil
	case FormatTable:
		return NewTableFormatter(w), nil
	case FormatParquet:
		return NewParquetFormatter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// FormatForPath picks a format from a file extension, falling back to
// table for anything unrecognised.
func FormatForPath(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV
	case strings.HasSuffix(lower, ".parquet"):
		return FormatParquet
	case strings.HasSuffix(lower, ".json"), strings.HasSuffix(lower, ".jsonl"):
		return FormatJSONL
	default:
		return FormatTable
	}
}

// Limit returns the first n rows of t. Non-positive n returns t unchanged.
func Limit(t *table.Snapshot, n int) *table.Snapshot {
	if n <= 0 || n >= t.Len() {
		return t
	}
	return t.Head(n)
}
