// Package pipeline chains window, pivot and unpivot steps over a snapshot.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vegasq/parshape/internal/logger"
	"github.com/vegasq/parshape/reshape"
	"github.com/vegasq/parshape/table"
	"github.com/vegasq/parshape/window"
)

// Step transforms one snapshot into another.
type Step interface {
	Name() string
	Apply(ctx context.Context, t *table.Snapshot) (*table.Snapshot, error)
}

// WindowStep appends a window function column.
type WindowStep struct {
	Spec   window.Spec
	Engine *window.Engine
}

// Name describes the step as kind(output).
func (s WindowStep) Name() string {
	return fmt.Sprintf("window %s(%s)", s.Spec.Kind, s.Spec.OutputColumn)
}

// Apply runs the window function, using a single-worker engine when none
// is set.
func (s WindowStep) Apply(ctx context.Context, t *table.Snapshot) (*table.Snapshot, error) {
	engine := s.Engine
	if engine == nil {
		engine = window.NewEngine()
	}
	return engine.Apply(ctx, t, s.Spec)
}

// PivotStep reshapes long rows into wide ones.
type PivotStep struct {
	Spec reshape.PivotSpec
}

// Name describes the step.
func (s PivotStep) Name() string {
	return fmt.Sprintf("pivot %s by %s", s.Spec.ValuesColumn, s.Spec.PivotColumn)
}

// Apply runs the pivot.
func (s PivotStep) Apply(_ context.Context, t *table.Snapshot) (*table.Snapshot, error) {
	return reshape.Pivot(t, s.Spec)
}

// UnpivotStep reshapes wide rows into long ones.
type UnpivotStep struct {
	Spec reshape.UnpivotSpec
}

// Name describes the step.
func (s UnpivotStep) Name() string {
	return fmt.Sprintf("unpivot %d columns", len(s.Spec.ValueColumns))
}

// Apply runs the unpivot.
func (s UnpivotStep) Apply(_ context.Context, t *table.Snapshot) (*table.Snapshot, error) {
	return reshape.Unpivot(t, s.Spec)
}

// Pipeline applies steps in order.
type Pipeline struct {
	logger *slog.Logger
	steps  []Step
}

// New returns a pipeline. A nil logger discards records.
func New(l *slog.Logger, steps ...Step) *Pipeline {
	if l == nil {
		l = logger.Discard()
	}
	return &Pipeline{logger: l, steps: steps}
}

// Steps returns the configured steps.
func (p *Pipeline) Steps() []Step {
	return p.steps
}

// Run applies every step to t under a fresh run id. It stops at the first
// failing step, wrapping the error with the step's position and name, and
// checks ctx before each step. t itself is never modified.
func (p *Pipeline) Run(ctx context.Context, t *table.Snapshot) (*table.Snapshot, error) {
	ctx = logger.WithRunID(ctx, uuid.NewString())
	log := logger.FromContext(ctx, p.logger)

	cur := t
	for i, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Name(), err)
		}

		start := time.Now()
		next, err := step.Apply(ctx, cur)
		if err != nil {
			log.Error("step failed", "step", step.Name(), "index", i+1, "error", err)
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Name(), err)
		}

		log.Info("step done",
			"step", step.Name(),
			"rows_in", cur.Len(),
			"rows_out", next.Len(),
			"duration", time.Since(start),
		)
		cur = next
	}
	return cur, nil
}
