package output

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/segmentio/encoding/json"

	"github.com/vegasq/parshape/table"
)

// JSONFormatter outputs rows as JSON Lines format
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes one JSON object per row. Keys follow the snapshot's
// column order rather than being sorted; Null and non-finite numbers are
// written as null.
func (j *JSONFormatter) Format(t *table.Snapshot) error {
	bw := bufio.NewWriter(j.writer)

	keys := make([][]byte, len(t.Columns))
	for i, col := range t.Columns {
		k, err := json.Marshal(col)
		if err != nil {
			return fmt.Errorf("failed to encode column name %q: %w", col, err)
		}
		keys[i] = k
	}

	for n, row := range t.Rows {
		_ = bw.WriteByte('{')
		for i, col := range t.Columns {
			if i > 0 {
				_ = bw.WriteByte(',')
			}
			v, err := json.Marshal(jsonValue(row.Get(col)))
			if err != nil {
				return fmt.Errorf("row %d column %q: %w", n, col, err)
			}
			_, _ = bw.Write(keys[i])
			_ = bw.WriteByte(':')
			_, _ = bw.Write(v)
		}
		_, _ = bw.WriteString("}\n")
	}

	return bw.Flush()
}

// jsonValue converts v for encoding. JSON has no NaN or infinities, so
// non-finite numbers are written as null.
func jsonValue(v table.Value) interface{} {
	if f, ok := v.AsNumber(); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil
	}
	return v.Any()
}
