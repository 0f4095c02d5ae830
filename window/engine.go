package window

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vegasq/parshape/table"
)

// Engine applies window functions. Partitions are independent, so an
// engine with more than one worker computes them concurrently; the output
// keeps partitions in first-seen order either way.
type Engine struct {
	workers int
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets how many partitions may be computed at once. Values
// below 1 are treated as 1.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		e.workers = n
	}
}

// NewEngine returns an engine. The default engine is single-worker.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{workers: 1}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Workers returns the configured concurrency.
func (e *Engine) Workers() int {
	return e.workers
}

// Apply computes spec over t with a default engine.
func Apply(t *table.Snapshot, spec Spec) (*table.Snapshot, error) {
	return NewEngine().Apply(context.Background(), t, spec)
}

// Apply validates spec, partitions t, sorts each partition and appends
// spec.OutputColumn. The result has the same number of rows as t, grouped
// by partition in first-seen order and sorted within each partition. On any
// error no snapshot is returned.
func (e *Engine) Apply(ctx context.Context, t *table.Snapshot, spec Spec) (*table.Snapshot, error) {
	if err := spec.Validate(t); err != nil {
		return nil, err
	}

	partitions := table.PartitionRows(t.Rows, spec.PartitionBy)
	results := make([][]table.Row, len(partitions))

	if e.workers <= 1 || len(partitions) <= 1 {
		for i, p := range partitions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			rows, err := computePartition(p.Rows, spec)
			if err != nil {
				return nil, fmt.Errorf("window function %s: %w", spec.Kind, err)
			}
			results[i] = rows
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.workers)
		for i, p := range partitions {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				rows, err := computePartition(p.Rows, spec)
				if err != nil {
					return fmt.Errorf("window function %s: %w", spec.Kind, err)
				}
				results[i] = rows
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	columns := make([]string, 0, len(t.Columns)+1)
	columns = append(columns, t.Columns...)
	columns = append(columns, spec.OutputColumn)

	rows := make([]table.Row, 0, len(t.Rows))
	for _, part := range results {
		rows = append(rows, part...)
	}
	return table.New(columns, rows), nil
}
