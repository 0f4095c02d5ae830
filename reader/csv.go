package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/vegasq/parshape/table"
)

// TimeFormats are tried in order when inferring timestamps from CSV text.
var TimeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CSVOptions configures how CSV is parsed.
type CSVOptions struct {
	// Delimiter is the field delimiter (default: comma).
	Delimiter rune

	// HasHeader indicates if the first record names the columns. Without a
	// header columns are named col0, col1, ...
	HasHeader bool

	// InferTypes converts cells to numbers, booleans and timestamps when
	// they parse as such. Otherwise every non-empty cell is text.
	InferTypes bool
}

// DefaultCSVOptions returns comma-separated input with a header and type
// inference.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{
		Delimiter:  ',',
		HasHeader:  true,
		InferTypes: true,
	}
}

// ReadCSVFile reads a CSV file with default options.
func ReadCSVFile(path string) (*table.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return ReadCSV(f, DefaultCSVOptions())
}

// ReadCSV reads CSV records into a snapshot. Empty cells become Null.
func ReadCSV(r io.Reader, opts CSVOptions) (*table.Snapshot, error) {
	cr := csv.NewReader(r)
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}
	cr.FieldsPerRecord = -1

	var columns []string
	var rows []table.Row

	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record %d: %w", line, err)
		}

		if columns == nil {
			if opts.HasHeader {
				columns = append([]string(nil), record...)
				continue
			}
			columns = make([]string, len(record))
			for i := range record {
				columns[i] = "col" + strconv.Itoa(i)
			}
		}

		if len(record) > len(columns) {
			return nil, fmt.Errorf("CSV record %d has %d fields, header has %d", line, len(record), len(columns))
		}

		row := make(table.Row, len(columns))
		for i, cell := range record {
			row[columns[i]] = parseCell(cell, opts.InferTypes)
		}
		rows = append(rows, row)
	}

	return table.New(columns, rows), nil
}

func parseCell(s string, infer bool) table.Value {
	if s == "" {
		return table.Null()
	}
	if !infer {
		return table.Text(s)
	}
	return InferValue(s)
}

// InferValue interprets s as an integer, float, boolean or timestamp, in
// that order, falling back to text.
func InferValue(s string) table.Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return table.Number(float64(i))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return table.Number(f)
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return table.Bool(b)
	}
	for _, format := range TimeFormats {
		if t, err := time.Parse(format, s); err == nil {
			return table.Timestamp(t)
		}
	}
	return table.Text(s)
}
