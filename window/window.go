package window

import (
	"fmt"

	"github.com/vegasq/parshape/table"
)

// computeFunc produces one output value per row of a sorted partition.
type computeFunc func(partition []table.Row, spec Spec) ([]table.Value, error)

var computeFuncs = map[Kind]computeFunc{
	RowNumber:   computeRowNumber,
	Rank:        computeRank,
	DenseRank:   computeDenseRank,
	Lead:        computeLead,
	Lag:         computeLag,
	FirstValue:  computeFirstValue,
	LastValue:   computeLastValue,
	RunningSum:  computeRunningSum,
	RunningAvg:  computeRunningAvg,
	PercentRank: computePercentRank,
}

// computePartition sorts a partition and appends the output column to a
// copy of each of its rows.
func computePartition(partition []table.Row, spec Spec) ([]table.Row, error) {
	sorted, err := table.SortRows(partition, spec.OrderBy)
	if err != nil {
		return nil, err
	}

	compute, ok := computeFuncs[spec.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported window function %s", table.ErrInvalidSpec, spec.Kind)
	}
	values, err := compute(sorted, spec)
	if err != nil {
		return nil, err
	}

	out := make([]table.Row, len(sorted))
	for i, row := range sorted {
		clone := row.Clone(1)
		clone[spec.OutputColumn] = values[i]
		out[i] = clone
	}
	return out, nil
}

// computeRowNumber numbers rows from 1 in partition order.
func computeRowNumber(partition []table.Row, _ Spec) ([]table.Value, error) {
	results := make([]table.Value, len(partition))
	for i := range partition {
		results[i] = table.Number(float64(i + 1))
	}
	return results, nil
}

// computeRank assigns gap ranks. Adjacent rows tie when their value column
// cells are equal, whatever the ORDER BY columns are.
func computeRank(partition []table.Row, spec Spec) ([]table.Value, error) {
	results := make([]table.Value, len(partition))
	rank := 1
	for i := range partition {
		if i > 0 && !tied(partition[i-1], partition[i], spec.ValueColumn) {
			rank = i + 1
		}
		results[i] = table.Number(float64(rank))
	}
	return results, nil
}

// computeDenseRank assigns ranks without gaps, using the same tie test as
// computeRank.
func computeDenseRank(partition []table.Row, spec Spec) ([]table.Value, error) {
	results := make([]table.Value, len(partition))
	rank := 1
	for i := range partition {
		if i > 0 && !tied(partition[i-1], partition[i], spec.ValueColumn) {
			rank++
		}
		results[i] = table.Number(float64(rank))
	}
	return results, nil
}

func tied(prev, cur table.Row, column string) bool {
	return prev.Get(column).Equal(cur.Get(column))
}

// computeLead reads the value column offset rows ahead.
func computeLead(partition []table.Row, spec Spec) ([]table.Value, error) {
	offset := spec.offset()
	results := make([]table.Value, len(partition))
	for i := range partition {
		// Compared as a distance so a huge offset cannot overflow i+offset.
		if offset < len(partition)-i {
			results[i] = partition[i+offset].Get(spec.ValueColumn)
		}
	}
	return results, nil
}

// computeLag reads the value column offset rows behind.
func computeLag(partition []table.Row, spec Spec) ([]table.Value, error) {
	offset := spec.offset()
	results := make([]table.Value, len(partition))
	for i := range partition {
		if offset <= i {
			results[i] = partition[i-offset].Get(spec.ValueColumn)
		}
	}
	return results, nil
}

// computeFirstValue broadcasts the first row's value.
func computeFirstValue(partition []table.Row, spec Spec) ([]table.Value, error) {
	if len(partition) == 0 {
		return []table.Value{}, nil
	}
	return broadcast(partition[0].Get(spec.ValueColumn), len(partition)), nil
}

// computeLastValue broadcasts the last row's value.
func computeLastValue(partition []table.Row, spec Spec) ([]table.Value, error) {
	if len(partition) == 0 {
		return []table.Value{}, nil
	}
	return broadcast(partition[len(partition)-1].Get(spec.ValueColumn), len(partition)), nil
}

func broadcast(v table.Value, n int) []table.Value {
	results := make([]table.Value, n)
	for i := range results {
		results[i] = v
	}
	return results
}

// computeRunningSum accumulates the value column, counting Null as zero.
func computeRunningSum(partition []table.Row, spec Spec) ([]table.Value, error) {
	sums, err := runningSums(partition, spec)
	if err != nil {
		return nil, err
	}
	results := make([]table.Value, len(sums))
	for i, s := range sums {
		results[i] = table.Number(s)
	}
	return results, nil
}

// computeRunningAvg divides the running sum by the number of rows seen,
// Null rows included.
func computeRunningAvg(partition []table.Row, spec Spec) ([]table.Value, error) {
	sums, err := runningSums(partition, spec)
	if err != nil {
		return nil, err
	}
	results := make([]table.Value, len(sums))
	for i, s := range sums {
		results[i] = table.Number(s / float64(i+1))
	}
	return results, nil
}

func runningSums(partition []table.Row, spec Spec) ([]float64, error) {
	sums := make([]float64, len(partition))
	var total float64
	for i, row := range partition {
		n, err := row.Get(spec.ValueColumn).Numeric()
		if err != nil {
			return nil, fmt.Errorf("%s: column %q at partition position %d: %w", spec.Kind, spec.ValueColumn, i, err)
		}
		total += n
		sums[i] = total
	}
	return sums, nil
}

// computePercentRank returns i/(n-1). It is positional: tied rows still get
// distinct values, unlike SQL PERCENT_RANK.
func computePercentRank(partition []table.Row, _ Spec) ([]table.Value, error) {
	n := len(partition)
	results := make([]table.Value, n)
	for i := range partition {
		if n > 1 {
			results[i] = table.Number(float64(i) / float64(n-1))
		} else {
			results[i] = table.Number(0)
		}
	}
	return results, nil
}
