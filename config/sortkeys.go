package config

import (
	"fmt"
	"strings"

	"github.com/vegasq/parshape/table"
)

// ParseSortKeys parses order-by terms. Each term is a column name followed
// by an optional direction, separated by a space or a colon:
//
//	amount          ascending
//	amount desc     descending
//	amount:desc     descending
func ParseSortKeys(terms []string) ([]table.SortKey, error) {
	keys := make([]table.SortKey, 0, len(terms))
	for _, term := range terms {
		key, err := parseSortKey(term)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func parseSortKey(term string) (table.SortKey, error) {
	term = strings.TrimSpace(term)

	var column, dir string
	if i := strings.LastIndex(term, ":"); i >= 0 {
		column, dir = term[:i], term[i+1:]
	} else if fields := strings.Fields(term); len(fields) == 2 {
		column, dir = fields[0], fields[1]
	} else {
		column = term
	}
	column = strings.TrimSpace(column)

	if column == "" {
		return table.SortKey{}, fmt.Errorf("%w: empty order-by term %q", table.ErrInvalidSpec, term)
	}

	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
		return table.SortKey{Column: column, Ascending: true}, nil
	case "desc":
		return table.SortKey{Column: column, Ascending: false}, nil
	default:
		return table.SortKey{}, fmt.Errorf("%w: unknown sort direction %q in %q", table.ErrInvalidSpec, dir, term)
	}
}
