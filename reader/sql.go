package reader

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/vegasq/parshape/table"
)

// OpenSQLite opens a SQLite database file with the pure-Go driver.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return db, nil
}

// ReadSQL runs query on db and loads the full result set. The query text is
// passed to the driver unchanged.
func ReadSQL(ctx context.Context, db *sql.DB, query string, args ...any) (*table.Snapshot, error) {
	sqlRows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = sqlRows.Close() }()

	columns, err := sqlRows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	var rows []table.Row
	for sqlRows.Next() {
		if err := sqlRows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d: %w", len(rows), err)
		}
		row := make(table.Row, len(columns))
		for i, v := range values {
			row[columns[i]] = table.FromAny(v)
		}
		rows = append(rows, row)
	}
	if err := sqlRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return table.New(columns, rows), nil
}

// ReadSQLite opens path, runs query and closes the database.
func ReadSQLite(ctx context.Context, path, query string) (*table.Snapshot, error) {
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	return ReadSQL(ctx, db, query)
}
