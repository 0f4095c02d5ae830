package reshape

import (
	"fmt"

	"github.com/vegasq/parshape/table"
)

// Default output column names for Unpivot.
const (
	DefaultVariableColumn = "variable"
	DefaultValueColumn    = "value"
)

// UnpivotSpec configures Unpivot. Empty VariableColumn and ValueColumn fall
// back to DefaultVariableColumn and DefaultValueColumn.
type UnpivotSpec struct {
	IDColumns      []string
	ValueColumns   []string
	VariableColumn string
	ValueColumn    string
}

func (s UnpivotSpec) withDefaults() UnpivotSpec {
	if s.VariableColumn == "" {
		s.VariableColumn = DefaultVariableColumn
	}
	if s.ValueColumn == "" {
		s.ValueColumn = DefaultValueColumn
	}
	return s
}

// Validate checks the spec against the columns of t. IDColumns and
// ValueColumns may overlap.
func (s UnpivotSpec) Validate(t *table.Snapshot) error {
	s = s.withDefaults()
	if len(s.ValueColumns) == 0 {
		return fmt.Errorf("%w: unpivot: at least one value column is required", table.ErrInvalidSpec)
	}
	if s.VariableColumn == s.ValueColumn {
		return fmt.Errorf("%w: unpivot: variable and value columns are both %q", table.ErrInvalidSpec, s.ValueColumn)
	}
	for _, col := range s.IDColumns {
		if !t.HasColumn(col) {
			return fmt.Errorf("%w: unpivot: id column %q not found", table.ErrInvalidSpec, col)
		}
		if col == s.VariableColumn || col == s.ValueColumn {
			return fmt.Errorf("%w: unpivot: id column %q clashes with an output column", table.ErrInvalidSpec, col)
		}
	}
	for _, col := range s.ValueColumns {
		if !t.HasColumn(col) {
			return fmt.Errorf("%w: unpivot: value column %q not found", table.ErrInvalidSpec, col)
		}
	}
	return nil
}

// Unpivot reshapes t from wide to long. For each input row and each entry
// of ValueColumns, in that order, it emits the IDColumns unchanged, the
// source column name in VariableColumn and its cell in ValueColumn.
func Unpivot(t *table.Snapshot, spec UnpivotSpec) (*table.Snapshot, error) {
	if err := spec.Validate(t); err != nil {
		return nil, err
	}
	spec = spec.withDefaults()

	columns := make([]string, 0, len(spec.IDColumns)+2)
	columns = append(columns, spec.IDColumns...)
	columns = append(columns, spec.VariableColumn, spec.ValueColumn)

	rows := make([]table.Row, 0, len(t.Rows)*len(spec.ValueColumns))
	for _, in := range t.Rows {
		for _, col := range spec.ValueColumns {
			out := make(table.Row, len(columns))
			for _, id := range spec.IDColumns {
				out[id] = in.Get(id)
			}
			out[spec.VariableColumn] = table.Text(col)
			out[spec.ValueColumn] = in.Get(col)
			rows = append(rows, out)
		}
	}

	return table.New(columns, rows), nil
}
