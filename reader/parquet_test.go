package reader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/parshape/output"
	"github.com/vegasq/parshape/table"
)

type userRow struct {
	ID     int64   `parquet:"id"`
	Name   string  `parquet:"name"`
	Age    int32   `parquet:"age"`
	Score  float64 `parquet:"score"`
	Active bool    `parquet:"active"`
}

func TestReadFile(t *testing.T) {
	path := writeParquet(t, t.TempDir(), "users.parquet", []userRow{
		{ID: 1, Name: "alice", Age: 30, Score: 95.5, Active: true},
		{ID: 2, Name: "bob", Age: 25, Score: 82.25, Active: false},
	})

	snap, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "age", "score", "active"}, snap.Columns)
	require.Equal(t, 2, snap.Len())

	first := snap.Rows[0]
	assert.True(t, table.Number(1).Equal(first.Get("id")))
	assert.True(t, table.Text("alice").Equal(first.Get("name")))
	assert.True(t, table.Number(30).Equal(first.Get("age")))
	assert.True(t, table.Number(95.5).Equal(first.Get("score")))
	assert.True(t, table.Bool(true).Equal(first.Get("active")))

	_, hasFile := first[FileColumn]
	assert.False(t, hasFile, "single file reads should not add %s", FileColumn)
}

func TestReadFile_Nested(t *testing.T) {
	type address struct {
		Street string `parquet:"street"`
		City   string `parquet:"city"`
	}
	type row struct {
		ID      int64   `parquet:"id"`
		Address address `parquet:"address"`
	}

	path := writeParquet(t, t.TempDir(), "nested.parquet", []row{
		{ID: 1, Address: address{Street: "1 Main St", City: "Springfield"}},
	})

	snap, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "address.street", "address.city"}, snap.Columns)
	assert.True(t, table.Text("Springfield").Equal(snap.Rows[0].Get("address.city")))
}

func TestReadFile_TimestampRoundTrip(t *testing.T) {
	soldAt := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	snap := table.New([]string{"product", "sold_at"}, []table.Row{
		{"product": table.Text("widget"), "sold_at": table.Timestamp(soldAt)},
		{"product": table.Text("gadget"), "sold_at": table.Null()},
	})

	path := filepath.Join(t.TempDir(), "sales.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, output.NewParquetFormatter(f).Format(snap))
	require.NoError(t, f.Close())

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	first := got.Rows[0].Get("sold_at")
	require.Equal(t, table.KindTimestamp, first.Kind(), "got %s", first)
	ts, _ := first.AsTimestamp()
	assert.True(t, soldAt.Equal(ts), "got %s", ts)
	assert.True(t, got.Rows[1].Get("sold_at").IsNull())
}

func TestReadFile_DateColumn(t *testing.T) {
	type row struct {
		Day int32 `parquet:"day,date"`
	}
	path := writeParquet(t, t.TempDir(), "days.parquet", []row{{Day: 19783}})

	snap, err := ReadFile(path)
	require.NoError(t, err)

	day, ok := snap.Rows[0].Get("day").AsTimestamp()
	require.True(t, ok)
	assert.True(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).Equal(day), "got %s", day)
}

func TestReadFile_Errors(t *testing.T) {
	_, err := ReadFile("nonexistent.parquet")
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "invalid.parquet")
	require.NoError(t, os.WriteFile(bad, []byte("not a parquet file"), 0o644))
	_, err = ReadFile(bad)
	assert.Error(t, err)
}

func TestReader_CloseTwice(t *testing.T) {
	path := writeParquet(t, t.TempDir(), "users.parquet", []userRow{{ID: 1}})

	r, err := NewReader(path)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}

func TestReadMultipleFiles_GlobPattern(t *testing.T) {
	dir := t.TempDir()
	writeParquet(t, dir, "file1.parquet", []userRow{{ID: 1, Name: "alice"}})
	writeParquet(t, dir, "file2.parquet", []userRow{{ID: 2, Name: "bob"}})
	writeParquet(t, dir, "file3.parquet", []userRow{{ID: 3, Name: "carol"}})

	snap, err := ReadMultipleFiles(filepath.Join(dir, "*.parquet"))
	require.NoError(t, err)
	require.Equal(t, 3, snap.Len())
	assert.Equal(t, FileColumn, snap.Columns[len(snap.Columns)-1])

	files := make(map[string]bool)
	for _, row := range snap.Rows {
		path, ok := row.Get(FileColumn).AsText()
		require.True(t, ok)
		files[path] = true
	}
	assert.Len(t, files, 3)
}

func TestReadMultipleFiles_SpecificPattern(t *testing.T) {
	dir := t.TempDir()
	writeParquet(t, dir, "data-2024.parquet", []userRow{{ID: 1}})
	writeParquet(t, dir, "data-2025.parquet", []userRow{{ID: 2}})
	writeParquet(t, dir, "other-2024.parquet", []userRow{{ID: 3}})

	snap, err := ReadMultipleFiles(filepath.Join(dir, "data-*.parquet"))
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Len())
}

func TestReadMultipleFiles_NoMatch(t *testing.T) {
	_, err := ReadMultipleFiles(filepath.Join(t.TempDir(), "*.parquet"))
	assert.Error(t, err)
}
