package reader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/parshape/table"
)

func TestReadCSV_Header(t *testing.T) {
	data := `id,name,score
1,Alice,9.5
2,Bob,
3,Charlie,7`

	snap, err := ReadCSV(strings.NewReader(data), DefaultCSVOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "score"}, snap.Columns)
	require.Equal(t, 3, snap.Len())
	assert.True(t, table.Number(1).Equal(snap.Rows[0].Get("id")))
	assert.True(t, table.Text("Alice").Equal(snap.Rows[0].Get("name")))
	assert.True(t, table.Number(9.5).Equal(snap.Rows[0].Get("score")))
	assert.True(t, snap.Rows[1].Get("score").IsNull())
}

func TestReadCSV_NoHeader(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.HasHeader = false
	opts.Delimiter = ';'

	snap, err := ReadCSV(strings.NewReader("a;1\nb;2\n"), opts)
	require.NoError(t, err)

	assert.Equal(t, []string{"col0", "col1"}, snap.Columns)
	assert.Equal(t, 2, snap.Len())
	assert.True(t, table.Text("b").Equal(snap.Rows[1].Get("col0")))
}

func TestReadCSV_WithoutInference(t *testing.T) {
	opts := DefaultCSVOptions()
	opts.InferTypes = false

	snap, err := ReadCSV(strings.NewReader("n\n42\n"), opts)
	require.NoError(t, err)
	assert.True(t, table.Text("42").Equal(snap.Rows[0].Get("n")))
}

func TestReadCSV_TooManyFields(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,b\n1,2,3\n"), DefaultCSVOptions())
	assert.Error(t, err)
}

func TestReadCSV_ShortRecordLeavesNull(t *testing.T) {
	snap, err := ReadCSV(strings.NewReader("a,b\n1\n"), DefaultCSVOptions())
	require.NoError(t, err)
	assert.True(t, snap.Rows[0].Get("b").IsNull())
}

func TestInferValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in   string
		want table.Value
	}{
		{"12", table.Number(12)},
		{"-3.25", table.Number(-3.25)},
		{"true", table.Bool(true)},
		{"FALSE", table.Bool(false)},
		{"2024-03-01", table.Timestamp(ts)},
		{"2024-03-01T00:00:00Z", table.Timestamp(ts)},
		{"north", table.Text("north")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := InferValue(tt.in)
			assert.Equal(t, tt.want.Kind(), got.Kind())
			if ts, ok := tt.want.AsTimestamp(); ok {
				gotTS, _ := got.AsTimestamp()
				assert.True(t, ts.Equal(gotTS))
				return
			}
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestReadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("region,amount\nnorth,10\n"), 0o644))

	snap, err := ReadCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Len())

	_, err = ReadCSVFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
