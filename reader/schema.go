package reader

import (
	"fmt"
	"time"

	"github.com/segmentio/parquet-go"
)

// SchemaInfo describes one leaf column of a parquet file.
type SchemaInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	PhysicalType string `json:"physical_type"`
	LogicalType  string `json:"logical_type"`
	Required     bool   `json:"required"`
	Optional     bool   `json:"optional"`
	Repeated     bool   `json:"repeated"`
}

// ExtractSchemaInfo opens path and describes its leaf columns. Nested
// fields use dot notation (e.g. "address.street").
func ExtractSchemaInfo(path string) ([]SchemaInfo, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = r.Close() }()

	return DescribeSchema(r.Schema()), nil
}

// DescribeSchema lists the leaf columns of schema in order.
func DescribeSchema(schema *parquet.Schema) []SchemaInfo {
	var infos []SchemaInfo
	walkLeaves(schema, func(name string, field parquet.Field, repeated bool) {
		infos = append(infos, SchemaInfo{
			Name:         name,
			Type:         friendlyType(field),
			PhysicalType: physicalType(field),
			LogicalType:  logicalType(field),
			Required:     field.Required(),
			Optional:     field.Optional(),
			Repeated:     repeated,
		})
	})
	return infos
}

// ColumnNames returns the dot-joined leaf names of schema in order.
func ColumnNames(schema *parquet.Schema) []string {
	var names []string
	walkLeaves(schema, func(name string, _ parquet.Field, _ bool) {
		names = append(names, name)
	})
	return names
}

// walkLeaves calls fn for every leaf of schema, depth-first, with its
// dot-joined name. A repeated group marks every leaf beneath it as
// repeated.
func walkLeaves(schema *parquet.Schema, fn func(name string, field parquet.Field, repeated bool)) {
	var walk func(field parquet.Field, prefix string, parentRepeated bool)
	walk = func(field parquet.Field, prefix string, parentRepeated bool) {
		name := field.Name()
		if prefix != "" {
			name = prefix + "." + name
		}
		repeated := parentRepeated || field.Repeated()

		if children := field.Fields(); len(children) > 0 {
			for _, child := range children {
				walk(child, name, repeated)
			}
			return
		}
		fn(name, field, repeated)
	}

	for _, field := range schema.Fields() {
		walk(field, "", false)
	}
}

// timeDecoder turns the integer stored in a TIMESTAMP or DATE leaf into a
// time in UTC.
type timeDecoder func(int64) time.Time

// timeDecoders maps the leaf names of TIMESTAMP and DATE columns to the
// decoder for their unit.
func timeDecoders(schema *parquet.Schema) map[string]timeDecoder {
	decoders := make(map[string]timeDecoder)
	walkLeaves(schema, func(name string, field parquet.Field, _ bool) {
		if field.Type() == nil {
			return
		}
		lt := field.Type().LogicalType()
		switch {
		case lt == nil:
		case lt.Timestamp != nil:
			switch unit := lt.Timestamp.Unit; {
			case unit.Millis != nil:
				decoders[name] = func(n int64) time.Time { return time.UnixMilli(n).UTC() }
			case unit.Micros != nil:
				decoders[name] = func(n int64) time.Time { return time.UnixMicro(n).UTC() }
			default:
				decoders[name] = func(n int64) time.Time { return time.Unix(0, n).UTC() }
			}
		case lt.Date != nil:
			decoders[name] = func(days int64) time.Time { return time.Unix(days*86400, 0).UTC() }
		}
	})
	return decoders
}

var physicalNames = map[parquet.Kind]string{
	parquet.Boolean:           "BOOLEAN",
	parquet.Int32:             "INT32",
	parquet.Int64:             "INT64",
	parquet.Int96:             "INT96",
	parquet.Float:             "FLOAT",
	parquet.Double:            "DOUBLE",
	parquet.ByteArray:         "BYTE_ARRAY",
	parquet.FixedLenByteArray: "FIXED_LEN_BYTE_ARRAY",
}

func physicalType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}
	if name, ok := physicalNames[field.Type().Kind()]; ok {
		return name
	}
	return "UNKNOWN"
}

func logicalType(field parquet.Field) string {
	if field.Type() == nil {
		return ""
	}
	lt := field.Type().LogicalType()
	if lt == nil {
		return ""
	}
	return lt.String()
}

// friendlyType prefers the logical type and falls back to the physical
// one, naming floats by width.
func friendlyType(field parquet.Field) string {
	if field.Type() == nil {
		return "GROUP"
	}

	switch lt := logicalType(field); lt {
	case "STRING", "UTF8":
		return "STRING"
	case "ENUM", "UUID", "DATE", "TIME", "TIMESTAMP", "DECIMAL", "JSON", "BSON":
		return lt
	}

	switch field.Type().Kind() {
	case parquet.Float:
		return "FLOAT32"
	case parquet.Double:
		return "FLOAT64"
	}
	return physicalType(field)
}
