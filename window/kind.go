package window

import (
	"fmt"
	"strings"

	"github.com/vegasq/parshape/table"
)

// Kind selects the window function to compute.
type Kind int

const (
	RowNumber Kind = iota + 1
	Rank
	DenseRank
	Lead
	Lag
	FirstValue
	LastValue
	RunningSum
	RunningAvg
	PercentRank
)

var kindNames = map[Kind]string{
	RowNumber:   "ROW_NUMBER",
	Rank:        "RANK",
	DenseRank:   "DENSE_RANK",
	Lead:        "LEAD",
	Lag:         "LAG",
	FirstValue:  "FIRST_VALUE",
	LastValue:   "LAST_VALUE",
	RunningSum:  "RUNNING_SUM",
	RunningAvg:  "RUNNING_AVG",
	PercentRank: "PERCENT_RANK",
}

// Kinds lists every supported kind in declaration order.
func Kinds() []Kind {
	return []Kind{RowNumber, Rank, DenseRank, Lead, Lag, FirstValue, LastValue, RunningSum, RunningAvg, PercentRank}
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// readsValue reports whether the kind reads the value column.
func (k Kind) readsValue() bool {
	return k != RowNumber && k != PercentRank
}

// ParseKind resolves a kind name case-insensitively, ignoring underscores,
// dashes and spaces ("row_number", "RowNumber" and "row-number" all match).
func ParseKind(s string) (Kind, error) {
	want := normalizeKindName(s)
	for k, name := range kindNames {
		if normalizeKindName(name) == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown window function %q", table.ErrInvalidSpec, s)
}

func normalizeKindName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: unknown window function %d", table.ErrInvalidSpec, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
