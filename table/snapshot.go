// Package table holds the in-memory data model shared by the window and
// reshape engines: tagged cell values, row-oriented snapshots, and the
// partitioning and ordering primitives built on top of them.
//
// A Snapshot is read-only once built. Every operation in this module
// returns a new Snapshot and leaves its input untouched.
package table

import "sort"

// Row maps column names to cell values. A missing key reads as Null.
type Row map[string]Value

// Get returns the value of column, or Null when the row lacks it.
func (r Row) Get(column string) Value {
	return r[column]
}

// Clone returns a shallow copy of the row with room for extra columns.
func (r Row) Clone(extra int) Row {
	out := make(Row, len(r)+extra)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Snapshot is a fully materialised table: ordered column names and ordered
// rows. Column names need not be unique.
type Snapshot struct {
	Columns []string
	Rows    []Row
}

// New builds a snapshot from columns and rows.
func New(columns []string, rows []Row) *Snapshot {
	if rows == nil {
		rows = []Row{}
	}
	return &Snapshot{Columns: columns, Rows: rows}
}

// FromMaps converts rows of plain Go values into a snapshot. When columns
// is empty the column list is the sorted union of all row keys.
func FromMaps(columns []string, maps []map[string]interface{}) *Snapshot {
	if len(columns) == 0 {
		columns = unionColumns(maps)
	}

	rows := make([]Row, len(maps))
	for i, m := range maps {
		row := make(Row, len(m))
		for k, v := range m {
			row[k] = FromAny(v)
		}
		rows[i] = row
	}
	return New(columns, rows)
}

// unionColumns collects every key seen across rows, sorted for stable output.
func unionColumns(maps []map[string]interface{}) []string {
	seen := make(map[string]bool)
	for _, m := range maps {
		for k := range m {
			seen[k] = true
		}
	}
	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)
	return columns
}

// Maps converts the snapshot back into plain Go values keyed by column.
// Every listed column is present in every map; missing cells become nil.
func (s *Snapshot) Maps() []map[string]interface{} {
	out := make([]map[string]interface{}, len(s.Rows))
	for i, row := range s.Rows {
		m := make(map[string]interface{}, len(s.Columns))
		for _, col := range s.Columns {
			m[col] = row.Get(col).Any()
		}
		out[i] = m
	}
	return out
}

// Len returns the number of rows.
func (s *Snapshot) Len() int {
	return len(s.Rows)
}

// HasColumn reports whether name is one of the snapshot's columns.
func (s *Snapshot) HasColumn(name string) bool {
	for _, col := range s.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Column returns every value of the named column in row order.
func (s *Snapshot) Column(name string) []Value {
	values := make([]Value, len(s.Rows))
	for i, row := range s.Rows {
		values[i] = row.Get(name)
	}
	return values
}

// Head returns a snapshot holding at most n leading rows. A non-positive n
// returns s unchanged.
func (s *Snapshot) Head(n int) *Snapshot {
	if n <= 0 || n >= len(s.Rows) {
		return s
	}
	return New(s.Columns, s.Rows[:n])
}
