package pipeline

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/parshape/internal/logger"
	"github.com/vegasq/parshape/reshape"
	"github.com/vegasq/parshape/table"
	"github.com/vegasq/parshape/window"
)

func sales() *table.Snapshot {
	return table.New([]string{"region", "quarter", "amount"}, []table.Row{
		{"region": table.Text("north"), "quarter": table.Text("Q1"), "amount": table.Number(10)},
		{"region": table.Text("north"), "quarter": table.Text("Q2"), "amount": table.Number(20)},
		{"region": table.Text("south"), "quarter": table.Text("Q1"), "amount": table.Number(5)},
	})
}

func TestRun_ChainsSteps(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Level: "INFO", Format: "text"}, &buf)

	p := New(l,
		WindowStep{Spec: window.Spec{
			Kind:         window.RunningSum,
			OutputColumn: "cumulative",
			ValueColumn:  "amount",
			PartitionBy:  []string{"region"},
			OrderBy:      []table.SortKey{{Column: "quarter", Ascending: true}},
		}},
		UnpivotStep{Spec: reshape.UnpivotSpec{
			IDColumns:    []string{"region", "quarter"},
			ValueColumns: []string{"amount", "cumulative"},
		}},
	)

	out, err := p.Run(context.Background(), sales())
	require.NoError(t, err)

	assert.Equal(t, 6, out.Len())
	assert.Equal(t, []string{"region", "quarter", "variable", "value"}, out.Columns)

	logs := buf.String()
	assert.Equal(t, 2, strings.Count(logs, "step done"))
	assert.Contains(t, logs, "run_id=")
	assert.Contains(t, logs, "rows_in=3")
	assert.Contains(t, logs, "rows_out=6")
}

func TestRun_PivotStep(t *testing.T) {
	p := New(nil, PivotStep{Spec: reshape.PivotSpec{
		IndexColumn:  "region",
		PivotColumn:  "quarter",
		ValuesColumn: "amount",
	}})

	out, err := p.Run(context.Background(), sales())
	require.NoError(t, err)
	assert.Equal(t, []string{"region", "Q1", "Q2"}, out.Columns)
	assert.Equal(t, 2, out.Len())
}

func TestRun_StopsAtFirstError(t *testing.T) {
	p := New(nil,
		PivotStep{Spec: reshape.PivotSpec{IndexColumn: "region", PivotColumn: "missing", ValuesColumn: "amount"}},
		WindowStep{Spec: window.Spec{Kind: window.RowNumber, OutputColumn: "rn"}},
	)

	_, err := p.Run(context.Background(), sales())
	require.Error(t, err)
	assert.ErrorIs(t, err, table.ErrInvalidSpec)
	assert.Contains(t, err.Error(), "step 1 (pivot amount by missing)")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(nil, WindowStep{Spec: window.Spec{Kind: window.RowNumber, OutputColumn: "rn"}})
	_, err := p.Run(ctx, sales())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun_NoSteps(t *testing.T) {
	in := sales()
	out, err := New(nil).Run(context.Background(), in)
	require.NoError(t, err)
	assert.Same(t, in, out)
}

func TestWindowStep_Name(t *testing.T) {
	s := WindowStep{Spec: window.Spec{Kind: window.DenseRank, OutputColumn: "dr"}}
	assert.Equal(t, "window DENSE_RANK(dr)", s.Name())
}
