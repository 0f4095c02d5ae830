package table

import "strings"

const (
	// KeyDelimiter separates column renderings inside a partition key.
	KeyDelimiter = "||"

	// NullSentinel stands in for Null inside a partition key.
	NullSentinel = "__NULL__"
)

// Partition is a run of rows sharing the same partition key, in input order.
type Partition struct {
	Key  string
	Rows []Row
}

// PartitionKey renders the values of columns for row into a single key.
//
// Text values that contain KeyDelimiter or equal NullSentinel can make two
// different tuples produce the same key.
func PartitionKey(row Row, columns []string) string {
	var b strings.Builder
	for i, col := range columns {
		if i > 0 {
			b.WriteString(KeyDelimiter)
		}
		v := row.Get(col)
		if v.IsNull() {
			b.WriteString(NullSentinel)
			continue
		}
		b.WriteString(v.String())
	}
	return b.String()
}

// PartitionRows groups rows by the key built from columns. Partitions are
// returned in the order their key first appears. With no columns, all rows
// form a single partition in their original order.
func PartitionRows(rows []Row, columns []string) []Partition {
	if len(columns) == 0 {
		all := make([]Row, len(rows))
		copy(all, rows)
		return []Partition{{Rows: all}}
	}

	index := make(map[string]int)
	var partitions []Partition
	for _, row := range rows {
		key := PartitionKey(row, columns)
		pos, ok := index[key]
		if !ok {
			pos = len(partitions)
			index[key] = pos
			partitions = append(partitions, Partition{Key: key})
		}
		partitions[pos].Rows = append(partitions[pos].Rows, row)
	}
	return partitions
}
