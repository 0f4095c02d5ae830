package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/segmentio/parquet-go"

	"github.com/vegasq/parshape/table"
)

// FileColumn is the column added to rows read through a glob pattern.
const FileColumn = "_file"

// maxGlobFiles bounds how many files one glob pattern may expand to.
const maxGlobFiles = 1000

// Reader reads a parquet file into a table snapshot.
//
// It maintains both an OS file handle and a parquet file handle to enable
// proper resource cleanup.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader opens path and validates it as a parquet file.
//
// Example:
//
//	r, err := reader.NewReader("sales.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll loads every row of the file into a snapshot.
//
// Columns follow the schema's leaf order; nested fields are flattened into
// dot-separated names. TIMESTAMP and DATE leaves become timestamps. The
// whole file is held in memory.
func (r *Reader) ReadAll() (*table.Snapshot, error) {
	columns := ColumnNames(r.pqFile.Schema())
	decoders := timeDecoders(r.pqFile.Schema())
	rows := make([]table.Row, 0, r.pqFile.NumRows())

	pr := parquet.NewReader(r.pqFile)
	defer func() { _ = pr.Close() }()

	for {
		raw := make(map[string]interface{})
		err := pr.Read(&raw)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows), err)
		}
		row := make(table.Row, len(columns))
		flatten(row, "", raw, decoders)
		rows = append(rows, row)
	}

	return table.New(columns, rows), nil
}

// flatten copies raw into row, joining nested group names with dots.
func flatten(row table.Row, prefix string, raw map[string]interface{}, decoders map[string]timeDecoder) {
	for k, v := range raw {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			flatten(row, name, nested, decoders)
			continue
		}
		if decode, ok := decoders[name]; ok {
			row[name] = decodeTime(v, decode)
			continue
		}
		row[name] = table.FromAny(v)
	}
}

// decodeTime converts the integer stored in a time leaf. Values the driver
// already decoded pass through FromAny.
func decodeTime(v interface{}, decode timeDecoder) table.Value {
	switch n := v.(type) {
	case int64:
		return table.Timestamp(decode(n))
	case int32:
		return table.Timestamp(decode(int64(n)))
	default:
		return table.FromAny(v)
	}
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close releases the file handle. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ReadFile reads a single parquet file.
func ReadFile(path string) (*table.Snapshot, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	return r.ReadAll()
}

// ReadMultipleFiles reads every parquet file matching a glob pattern into a
// single snapshot.
//
// A pattern without wildcards reads one file unchanged. Glob reads append a
// FileColumn holding each row's source path. Files must share the same
// columns; the first file fixes the column order and extra columns from
// later files are appended as they appear.
func ReadMultipleFiles(pattern string) (*table.Snapshot, error) {
	if !strings.ContainsAny(pattern, "*?[]{}") {
		return ReadFile(pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match pattern: %s", pattern)
	}
	if len(matches) > maxGlobFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxGlobFiles)
	}

	var columns []string
	seen := make(map[string]bool)
	var rows []table.Row

	for _, path := range matches {
		snap, err := ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for _, col := range snap.Columns {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
		for _, row := range snap.Rows {
			row[FileColumn] = table.Text(path)
			rows = append(rows, row)
		}
	}

	if !seen[FileColumn] {
		columns = append(columns, FileColumn)
	}
	return table.New(columns, rows), nil
}
