package reader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/parshape/table"
)

func seedSQLite(t *testing.T, path string) {
	t.Helper()
	db, err := OpenSQLite(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`CREATE TABLE sales (region TEXT, quarter TEXT, amount REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO sales VALUES ('north', 'Q1', 10), ('north', 'Q2', NULL), ('south', 'Q1', 7.5)`)
	require.NoError(t, err)
}

func TestReadSQL(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE t (id INTEGER, name TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO t VALUES (1, 'a'), (2, 'b')`)
	require.NoError(t, err)

	snap, err := ReadSQL(context.Background(), db, "SELECT id, name FROM t WHERE id > ?", 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name"}, snap.Columns)
	require.Equal(t, 1, snap.Len())
	assert.True(t, table.Number(2).Equal(snap.Rows[0].Get("id")))
	assert.True(t, table.Text("b").Equal(snap.Rows[0].Get("name")))
}

func TestReadSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.db")
	seedSQLite(t, path)

	snap, err := ReadSQLite(context.Background(), path, "SELECT * FROM sales ORDER BY region, quarter")
	require.NoError(t, err)

	require.Equal(t, 3, snap.Len())
	assert.Equal(t, []string{"region", "quarter", "amount"}, snap.Columns)
	assert.True(t, snap.Rows[1].Get("amount").IsNull())
	assert.True(t, table.Number(7.5).Equal(snap.Rows[2].Get("amount")))
}

func TestReadSQL_BadQuery(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = ReadSQL(context.Background(), db, "SELECT * FROM missing")
	assert.Error(t, err)
}
