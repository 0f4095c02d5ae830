// Package window applies partitioned window functions to table snapshots.
//
// A window function splits the input rows into partitions by the
// PartitionBy columns, sorts each partition by OrderBy, and computes one
// value per row into a new output column. The input snapshot is never
// modified.
//
// # Basic Usage
//
//	spec := window.Spec{
//	    Kind:         window.Rank,
//	    OutputColumn: "salary_rank",
//	    ValueColumn:  "salary",
//	    PartitionBy:  []string{"department"},
//	    OrderBy:      []table.SortKey{{Column: "salary", Ascending: false}},
//	}
//
//	ranked, err := window.Apply(snapshot, spec)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Supported Functions
//
//   - ROW_NUMBER: position within the partition, starting at 1
//   - RANK, DENSE_RANK: ranks with and without gaps
//   - LEAD, LAG: value Offset rows ahead or behind (default 1)
//   - FIRST_VALUE, LAST_VALUE: first or last value of the partition
//   - RUNNING_SUM, RUNNING_AVG: cumulative sum and mean, Null counted as 0
//   - PERCENT_RANK: i/(n-1) by position
//
// # Row Order
//
// The result lists partitions in the order their key first appears in the
// input, and rows inside a partition in sorted order. Without OrderBy a
// partition keeps its input order.
//
// # Ties
//
// RANK and DENSE_RANK decide ties by comparing ValueColumn of adjacent
// sorted rows, not the OrderBy columns. Order by the value column to get
// the usual SQL ranking.
//
// # Parallelism
//
// Engines built with WithWorkers(n) compute up to n partitions at once.
// The output order does not depend on the worker count.
package window
