package reader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vegasq/parshape/table"
)

// Source kinds understood by Open.
const (
	KindParquet  = "parquet"
	KindCSV      = "csv"
	KindPostgres = "postgres"
	KindSQLite   = "sqlite"
)

// Source names where a snapshot comes from.
type Source struct {
	// Kind is one of the Kind constants. Empty means infer from Location.
	Kind string `mapstructure:"kind"`

	// Location is a file path, glob pattern, PostgreSQL DSN or SQLite path.
	Location string `mapstructure:"location"`

	// Query is the SQL sent to database sources.
	Query string `mapstructure:"query"`

	// Table is read in full when Query is empty (database sources only).
	Table string `mapstructure:"table"`
}

// ParseSource builds a Source from a location, inferring its kind:
// postgres:// and postgresql:// URLs, sqlite:<path>, *.csv files, and
// parquet for everything else.
func ParseSource(location string) Source {
	switch {
	case strings.HasPrefix(location, "postgres://"), strings.HasPrefix(location, "postgresql://"):
		return Source{Kind: KindPostgres, Location: location}
	case strings.HasPrefix(location, "sqlite:"):
		return Source{Kind: KindSQLite, Location: strings.TrimPrefix(location, "sqlite:")}
	case strings.EqualFold(filepath.Ext(location), ".csv"):
		return Source{Kind: KindCSV, Location: location}
	default:
		return Source{Kind: KindParquet, Location: location}
	}
}

// resolved fills in Kind when it is empty.
func (s Source) resolved() Source {
	if s.Kind != "" {
		return s
	}
	inferred := ParseSource(s.Location)
	inferred.Query = s.Query
	inferred.Table = s.Table
	return inferred
}

// String describes the source for logs and errors. PostgreSQL DSNs are
// left out since they may carry credentials.
func (s Source) String() string {
	s = s.resolved()
	if s.Kind == KindPostgres {
		return "postgres"
	}
	return s.Kind + ":" + s.Location
}

// Open loads the source into a snapshot.
func Open(ctx context.Context, src Source) (*table.Snapshot, error) {
	src = src.resolved()
	if src.Location == "" {
		return nil, fmt.Errorf("source location is required")
	}

	switch src.Kind {
	case KindParquet:
		return ReadMultipleFiles(src.Location)
	case KindCSV:
		return ReadCSVFile(src.Location)
	case KindPostgres:
		return ReadPostgres(ctx, PostgresConfig{DSN: src.Location, Query: src.Query, Table: src.Table})
	case KindSQLite:
		q := src.Query
		if q == "" {
			if src.Table == "" {
				return nil, fmt.Errorf("sqlite: either a table or a query is required")
			}
			q = "SELECT * FROM " + src.Table
		}
		return ReadSQLite(ctx, src.Location, q)
	default:
		return nil, fmt.Errorf("unsupported source kind %q", src.Kind)
	}
}
