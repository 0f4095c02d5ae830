package output

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/segmentio/parquet-go"

	"github.com/vegasq/parshape/table"
)

// ParquetFormatter writes the snapshot as a single parquet file.
//
// Every column becomes an optional leaf, in snapshot column order, whose
// type is taken from the column's first non-null value: numbers are
// DOUBLE, text is STRING, booleans are BOOLEAN and timestamps are
// TIMESTAMP. Columns that are entirely Null are written as STRING.
type ParquetFormatter struct {
	writer io.Writer
}

// NewParquetFormatter creates a new parquet formatter
func NewParquetFormatter(w io.Writer) *ParquetFormatter {
	return &ParquetFormatter{writer: w}
}

// SetOutput sets the output writer
func (p *ParquetFormatter) SetOutput(w io.Writer) {
	p.writer = w
}

// Format writes t as parquet. A column holding more than one kind of
// non-null value fails with table.ErrTypeMismatch; duplicate, empty or
// comma-bearing column names fail with table.ErrInvalidSpec.
func (p *ParquetFormatter) Format(t *table.Snapshot) error {
	kinds, err := columnKinds(t)
	if err != nil {
		return err
	}

	schema := schemaFor(t.Columns, kinds)
	encoders := make([]func(table.Value) parquet.Value, len(t.Columns))
	for i, field := range schema.Fields() {
		encoders[i] = encoderFor(field)
	}

	w := parquet.NewWriter(p.writer, schema)
	rows := make([]parquet.Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make(parquet.Row, len(t.Columns))
		for i, col := range t.Columns {
			v := r.Get(col)
			if v.IsNull() {
				row[i] = parquet.Value{}.Level(0, 0, i)
				continue
			}
			row[i] = encoders[i](v).Level(0, 1, i)
		}
		rows = append(rows, row)
	}

	if _, err := w.WriteRows(rows); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

// columnKinds finds the kind of every column, rejecting names the schema
// cannot carry and columns that mix kinds.
func columnKinds(t *table.Snapshot) (map[string]table.Kind, error) {
	kinds := make(map[string]table.Kind, len(t.Columns))
	for _, col := range t.Columns {
		if _, dup := kinds[col]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", table.ErrInvalidSpec, col)
		}
		if col == "" || strings.Contains(col, ",") {
			return nil, fmt.Errorf("%w: column name %q cannot be written to parquet", table.ErrInvalidSpec, col)
		}
		kinds[col] = table.KindNull
	}

	for i, row := range t.Rows {
		for _, col := range t.Columns {
			v := row.Get(col)
			if v.IsNull() {
				continue
			}
			switch seen := kinds[col]; {
			case seen == table.KindNull:
				kinds[col] = v.Kind()
			case seen != v.Kind():
				return nil, fmt.Errorf("%w: column %q holds %s and %s (row %d)",
					table.ErrTypeMismatch, col, seen, v.Kind(), i)
			}
		}
	}
	return kinds, nil
}

// schemaFor builds the file schema from a struct type, since struct fields
// keep their declaration order where a parquet.Group sorts by name.
func schemaFor(columns []string, kinds map[string]table.Kind) *parquet.Schema {
	fields := make([]reflect.StructField, len(columns))
	for i, col := range columns {
		goType, tag := reflect.TypeOf(""), "optional"
		switch kinds[col] {
		case table.KindNumber:
			goType = reflect.TypeOf(float64(0))
		case table.KindBool:
			goType = reflect.TypeOf(false)
		case table.KindTimestamp:
			goType, tag = reflect.TypeOf(int64(0)), "optional,timestamp"
		}
		fields[i] = reflect.StructField{
			Name: "F" + strconv.Itoa(i),
			Type: goType,
			Tag:  reflect.StructTag("parquet:" + strconv.Quote(col+","+tag)),
		}
	}
	model := reflect.New(reflect.StructOf(fields)).Elem().Interface()
	return parquet.SchemaOf(model)
}

// encoderFor converts non-null cells into values of field's physical type.
// Timestamps follow the unit recorded in the field's logical type.
func encoderFor(field parquet.Field) func(table.Value) parquet.Value {
	if lt := field.Type().LogicalType(); lt != nil && lt.Timestamp != nil {
		unit := lt.Timestamp.Unit
		return func(v table.Value) parquet.Value {
			ts, _ := v.AsTimestamp()
			switch {
			case unit.Millis != nil:
				return parquet.Int64Value(ts.UnixMilli())
			case unit.Micros != nil:
				return parquet.Int64Value(ts.UnixMicro())
			default:
				return parquet.Int64Value(ts.UnixNano())
			}
		}
	}
	return parquetValue
}

func parquetValue(v table.Value) parquet.Value {
	switch v.Kind() {
	case table.KindNumber:
		f, _ := v.AsNumber()
		return parquet.DoubleValue(f)
	case table.KindText:
		s, _ := v.AsText()
		return parquet.ByteArrayValue([]byte(s))
	case table.KindBool:
		b, _ := v.AsBool()
		return parquet.BooleanValue(b)
	case table.KindTimestamp:
		ts, _ := v.AsTimestamp()
		return parquet.Int64Value(ts.UnixNano())
	default:
		return parquet.Value{}
	}
}
