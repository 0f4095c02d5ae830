package window

import (
	"fmt"

	"github.com/vegasq/parshape/table"
)

// DefaultOffset is the Lead/Lag distance used when Spec.Offset is nil.
const DefaultOffset = 1

// Spec describes one window function application.
type Spec struct {
	Kind         Kind
	OutputColumn string
	ValueColumn  string
	PartitionBy  []string
	OrderBy      []table.SortKey
	Offset       *int // Lead/Lag only; nil means DefaultOffset
}

// offset returns the effective Lead/Lag distance.
func (s Spec) offset() int {
	if s.Offset == nil {
		return DefaultOffset
	}
	return *s.Offset
}

// Validate checks the spec against the columns of t without touching any
// row. All failures wrap table.ErrInvalidSpec.
func (s Spec) Validate(t *table.Snapshot) error {
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: unknown window function %s", table.ErrInvalidSpec, s.Kind)
	}
	if s.OutputColumn == "" {
		return fmt.Errorf("%w: %s: output column is required", table.ErrInvalidSpec, s.Kind)
	}
	if s.Kind.readsValue() && s.ValueColumn == "" {
		return fmt.Errorf("%w: %s: value column is required", table.ErrInvalidSpec, s.Kind)
	}
	if s.Offset != nil && *s.Offset < 0 {
		return fmt.Errorf("%w: %s: offset must be non-negative, got %d", table.ErrInvalidSpec, s.Kind, *s.Offset)
	}
	if t.HasColumn(s.OutputColumn) {
		return fmt.Errorf("%w: %s: output column %q already exists", table.ErrInvalidSpec, s.Kind, s.OutputColumn)
	}

	if s.ValueColumn != "" && !t.HasColumn(s.ValueColumn) {
		return fmt.Errorf("%w: %s: value column %q not found", table.ErrInvalidSpec, s.Kind, s.ValueColumn)
	}
	for _, col := range s.PartitionBy {
		if !t.HasColumn(col) {
			return fmt.Errorf("%w: %s: partition column %q not found", table.ErrInvalidSpec, s.Kind, col)
		}
	}
	for _, key := range s.OrderBy {
		if !t.HasColumn(key.Column) {
			return fmt.Errorf("%w: %s: order column %q not found", table.ErrInvalidSpec, s.Kind, key.Column)
		}
	}
	return nil
}
