// Package reshape converts table snapshots between long and wide layouts.
//
// Pivot turns the distinct values of one column into new columns, one row
// per group. Unpivot does the reverse, emitting one row per (input row,
// value column) pair. Neither operation aggregates: when a group has more
// than one row for the same pivot value, the first row wins.
package reshape

import (
	"fmt"
	"sort"

	"github.com/vegasq/parshape/table"
)

// PivotSpec configures Pivot.
type PivotSpec struct {
	IndexColumn  string
	PivotColumn  string
	ValuesColumn string
	GroupBy      []string
}

// groupColumns returns GroupBy followed by IndexColumn.
func (s PivotSpec) groupColumns() []string {
	cols := make([]string, 0, len(s.GroupBy)+1)
	cols = append(cols, s.GroupBy...)
	return append(cols, s.IndexColumn)
}

// Validate checks that the spec names existing columns.
func (s PivotSpec) Validate(t *table.Snapshot) error {
	required := []struct{ role, name string }{
		{"index", s.IndexColumn},
		{"pivot", s.PivotColumn},
		{"values", s.ValuesColumn},
	}
	for _, r := range required {
		if r.name == "" {
			return fmt.Errorf("%w: pivot: %s column is required", table.ErrInvalidSpec, r.role)
		}
		if !t.HasColumn(r.name) {
			return fmt.Errorf("%w: pivot: %s column %q not found", table.ErrInvalidSpec, r.role, r.name)
		}
	}
	for _, col := range s.GroupBy {
		if !t.HasColumn(col) {
			return fmt.Errorf("%w: pivot: group column %q not found", table.ErrInvalidSpec, col)
		}
	}
	return nil
}

// Pivot reshapes t from long to wide.
//
// Output columns are GroupBy, IndexColumn, then one column per distinct
// rendering of PivotColumn across the whole input, sorted ascending. There
// is one output row per distinct (GroupBy, IndexColumn) tuple, in the order
// the tuple first appears. Each pivot cell holds ValuesColumn from the first
// row of the group with that pivot value, or Null if there is none.
func Pivot(t *table.Snapshot, spec PivotSpec) (*table.Snapshot, error) {
	if err := spec.Validate(t); err != nil {
		return nil, err
	}

	pivotValues := distinctRendered(t.Rows, spec.PivotColumn)

	keyColumns := spec.groupColumns()
	taken := make(map[string]bool, len(keyColumns))
	for _, col := range keyColumns {
		taken[col] = true
	}
	for _, pv := range pivotValues {
		if taken[pv] {
			return nil, fmt.Errorf("%w: pivot: value %q of column %q collides with a group column", table.ErrInvalidSpec, pv, spec.PivotColumn)
		}
	}

	columns := make([]string, 0, len(keyColumns)+len(pivotValues))
	columns = append(columns, keyColumns...)
	columns = append(columns, pivotValues...)

	groups := table.PartitionRows(t.Rows, keyColumns)
	rows := make([]table.Row, 0, len(groups))
	for _, g := range groups {
		if len(g.Rows) == 0 {
			continue
		}
		out := make(table.Row, len(columns))
		first := g.Rows[0]
		for _, col := range keyColumns {
			out[col] = first.Get(col)
		}
		for _, pv := range pivotValues {
			out[pv] = firstMatch(g.Rows, spec, pv)
		}
		rows = append(rows, out)
	}

	return table.New(columns, rows), nil
}

// distinctRendered returns the sorted set of string renderings of column.
func distinctRendered(rows []table.Row, column string) []string {
	seen := make(map[string]bool)
	var values []string
	for _, row := range rows {
		s := row.Get(column).String()
		if !seen[s] {
			seen[s] = true
			values = append(values, s)
		}
	}
	sort.Strings(values)
	return values
}

// firstMatch returns the values cell of the first row whose pivot rendering
// equals pv. Later matches are ignored.
func firstMatch(rows []table.Row, spec PivotSpec, pv string) table.Value {
	for _, row := range rows {
		if row.Get(spec.PivotColumn).String() == pv {
			return row.Get(spec.ValuesColumn)
		}
	}
	return table.Null()
}
