package table

import (
	"fmt"
	"sort"
)

// SortKey is one ORDER BY entry.
type SortKey struct {
	Column    string
	Ascending bool
}

// SortRows returns a stably sorted copy of rows. Earlier keys take
// precedence; rows equal on every key keep their relative order. Null is the
// minimum under both directions, so it sorts first ascending and last
// descending. With no keys the copy keeps the input order.
//
// The first comparison between incompatible kinds aborts the sort and is
// returned as an error.
func SortRows(rows []Row, keys []SortKey) ([]Row, error) {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	if len(keys) == 0 {
		return sorted, nil
	}

	var sortErr error
	sort.SliceStable(sorted, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		for _, key := range keys {
			cmp, err := Compare(sorted[i].Get(key.Column), sorted[j].Get(key.Column))
			if err != nil {
				sortErr = fmt.Errorf("order by %q: %w", key.Column, err)
				return false
			}
			if cmp != 0 {
				if key.Ascending {
					return cmp < 0
				}
				return cmp > 0
			}
		}
		return false
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return sorted, nil
}
