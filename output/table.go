package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/parshape/table"
)

// nullCell is how Null renders in text tables, so it stays distinct from
// the text "null".
const nullCell = "NULL"

// TableFormatter renders rows as an aligned text table.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new text table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format renders the snapshot with a header row.
func (f *TableFormatter) Format(t *table.Snapshot) error {
	tw := tablewriter.NewWriter(f.writer)
	tw.SetHeader(t.Columns)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	for _, row := range t.Rows {
		cells := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			v := row.Get(col)
			if v.IsNull() {
				cells[i] = nullCell
				continue
			}
			cells[i] = v.String()
		}
		tw.Append(cells)
	}

	tw.Render()
	return nil
}
