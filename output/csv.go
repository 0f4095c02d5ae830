package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/parshape/table"
)

// CSVFormatter outputs rows as CSV format
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes a header row in column order followed by one record per
// row. Null cells are empty.
func (c *CSVFormatter) Format(t *table.Snapshot) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(t.Columns) > 0 {
		if err := csvWriter.Write(t.Columns); err != nil {
			return err
		}
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = formatValue(row.Get(col))
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// formatValue converts a value to string for CSV output
func formatValue(v table.Value) string {
	if v.IsNull() {
		return ""
	}
	if s, ok := v.AsText(); ok {
		return sanitize(s)
	}
	return v.String()
}

// sanitize guards against CSV injection by quoting text that spreadsheet
// applications would treat as a formula.
func sanitize(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		return "'" + strings.ReplaceAll(s, "'", "''")
	}
	return s
}
