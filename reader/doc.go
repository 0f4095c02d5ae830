// Package reader loads tables from parquet files, CSV files and SQL
// databases into table snapshots.
//
// # Parquet
//
// Reading a single parquet file:
//
//	r, err := reader.NewReader("sales.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	snap, err := r.ReadAll()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Reading multiple files using glob patterns:
//
//	snap, err := reader.ReadMultipleFiles("data/*.parquet")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Each row carries a "_file" column with its source path
//	for _, row := range snap.Rows {
//	    fmt.Println(row.Get("_file"))
//	}
//
// # CSV
//
// Cells are typed by inference (integer, float, boolean, timestamp, text)
// unless CSVOptions.InferTypes is false. Empty cells are Null.
//
//	snap, err := reader.ReadCSV(f, reader.DefaultCSVOptions())
//
// # Databases
//
// PostgreSQL results are read through pgx; any database/sql handle can be
// read with ReadSQL, and SQLite files open with the pure-Go driver:
//
//	snap, err := reader.ReadPostgres(ctx, reader.PostgresConfig{
//	    DSN:   "postgres://localhost/shop",
//	    Table: "orders",
//	})
//
//	snap, err := reader.ReadSQLite(ctx, "shop.db", "SELECT * FROM orders")
//
// # Sources
//
// Open dispatches on a Source, inferring the kind from the location when
// it is not set:
//
//	snap, err := reader.Open(ctx, reader.ParseSource("sales.csv"))
//
// The package uses github.com/segmentio/parquet-go for parquet files and
// github.com/jackc/pgx/v5 for PostgreSQL.
package reader
