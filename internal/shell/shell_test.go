package shell

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/parshape/reader"
	"github.com/vegasq/parshape/table"
)

const salesCSV = `region,quarter,amount
north,Q1,10
north,Q2,20
south,Q1,5
south,Q2,
`

func loadedSession(t *testing.T) (*Session, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(salesCSV), 0o644))

	s := NewSession()
	out, err := s.Execute(context.Background(), "load "+path)
	require.NoError(t, err)
	assert.Equal(t, "loaded 4 rows, 3 columns", out)
	return s, dir
}

func run(t *testing.T, s *Session, line string) string {
	t.Helper()
	out, err := s.Execute(context.Background(), line)
	require.NoError(t, err, line)
	return out
}

func TestExecute_RequiresData(t *testing.T) {
	s := NewSession()
	_, err := s.Execute(context.Background(), "columns")
	assert.ErrorIs(t, err, ErrNoData)

	out, err := s.Execute(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExecute_ExitAndHelp(t *testing.T) {
	s := NewSession()
	_, err := s.Execute(context.Background(), "quit")
	assert.ErrorIs(t, err, ErrExit)
	_, err = s.Execute(context.Background(), "EXIT")
	assert.ErrorIs(t, err, ErrExit)

	assert.Contains(t, run(t, s, "help"), "unpivot")
}

func TestExecute_ColumnsAndShow(t *testing.T) {
	s, _ := loadedSession(t)

	assert.Equal(t, "region\nquarter\namount", run(t, s, "columns"))

	out := run(t, s, "show 2")
	assert.Contains(t, out, "north")
	assert.Contains(t, out, "(2 of 4 rows)")
	assert.NotContains(t, out, "south")

	assert.Contains(t, run(t, s, "show"), "NULL")

	_, err := s.Execute(context.Background(), "show zero")
	assert.Error(t, err)
}

func TestExecute_WindowUndoHistory(t *testing.T) {
	s, _ := loadedSession(t)

	out := run(t, s, "window kind=running_sum value=amount as=total partition=region order=quarter")
	assert.Equal(t, "4 rows, 4 columns", out)
	assert.Equal(t, []string{"region", "quarter", "amount", "total"}, s.Current().Columns)

	totals := s.Current().Column("total")
	assert.True(t, table.Number(10).Equal(totals[0]))
	assert.True(t, table.Number(30).Equal(totals[1]))
	assert.True(t, table.Number(5).Equal(totals[3]), "null adds zero")

	run(t, s, "window kind=row_number order=amount:desc")
	assert.True(t, s.Current().HasColumn("row_number"))

	assert.Equal(t, "1  window kind=running_sum value=amount as=total partition=region order=quarter\n2  window kind=row_number order=amount:desc",
		run(t, s, "history"))

	run(t, s, "undo")
	assert.False(t, s.Current().HasColumn("row_number"))
	run(t, s, "undo")
	assert.Len(t, s.Current().Columns, 3)
	assert.Equal(t, "no transformations", run(t, s, "history"))

	_, err := s.Execute(context.Background(), "undo")
	assert.Error(t, err)
}

func TestExecute_FailedCommandKeepsState(t *testing.T) {
	s, _ := loadedSession(t)
	before := s.Current()

	for _, line := range []string{
		"window kind=rank value=missing as=r",
		"window kind=median value=amount",
		"window kind=lag value=amount offset=two",
		"window kind=rank amount",
		"window colour=blue",
		"pivot index=region pivot=quarter",
		"bogus",
	} {
		_, err := s.Execute(context.Background(), line)
		assert.Error(t, err, line)
	}
	assert.Same(t, before, s.Current())
}

func TestExecute_PivotAndUnpivot(t *testing.T) {
	s, _ := loadedSession(t)

	run(t, s, "pivot index=region pivot=quarter values=amount")
	assert.Equal(t, []string{"region", "Q1", "Q2"}, s.Current().Columns)
	assert.Equal(t, 2, s.Current().Len())

	run(t, s, "unpivot id=region values=Q1,Q2 var=quarter value=amount")
	assert.Equal(t, []string{"region", "quarter", "amount"}, s.Current().Columns)
	assert.Equal(t, 4, s.Current().Len())
}

func TestExecute_Save(t *testing.T) {
	s, dir := loadedSession(t)

	for _, name := range []string{"out.csv", "out.parquet", "out.jsonl", "out.txt"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			out := run(t, s, "save "+path)
			assert.True(t, strings.HasPrefix(out, "wrote 4 rows"))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}

	snap, err := reader.ReadCSVFile(filepath.Join(dir, "out.csv"))
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Len())

	// south/Q2 has a Null amount, which parquet writes as an undefined value.
	snap, err = reader.ReadFile(filepath.Join(dir, "out.parquet"))
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Len())
}

func TestExecute_LoadResetsHistory(t *testing.T) {
	s, dir := loadedSession(t)
	run(t, s, "window kind=row_number as=rn")
	run(t, s, "load "+filepath.Join(dir, "sales.csv"))
	assert.Equal(t, "no transformations", run(t, s, "history"))

	_, err := s.Execute(context.Background(), "load")
	assert.Error(t, err)
	_, err = s.Execute(context.Background(), "load "+filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}
