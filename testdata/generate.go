// Command generate writes sales.parquet, a small long-format sales table
// for trying out parshape:
//
//	go run ./testdata/generate.go
//	parshape pivot --index region --pivot quarter --values amount -f table testdata/sales.parquet
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/vegasq/parshape/output"
	"github.com/vegasq/parshape/table"
)

func main() {
	regions := []string{"north", "south", "east", "west"}
	products := []string{"widget", "gadget", "gizmo"}
	quarters := []string{"Q1", "Q2", "Q3", "Q4"}

	columns := []string{"region", "quarter", "product", "amount", "sold_at"}
	var rows []table.Row

	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	for qi, q := range quarters {
		for ri, region := range regions {
			for pi, product := range products {
				amount := table.Number(float64(100 + 37*ri + 11*pi + 23*qi))
				// Leave a few gaps so nulls show up in window and pivot output.
				if (ri+pi+qi)%7 == 0 {
					amount = table.Null()
				}
				rows = append(rows, table.Row{
					"region":  table.Text(region),
					"quarter": table.Text(q),
					"product": table.Text(product),
					"amount":  amount,
					"sold_at": table.Timestamp(start.AddDate(0, 3*qi, ri*7+pi)),
				})
			}
		}
	}

	file, err := os.Create("sales.parquet")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	if err := output.NewParquetFormatter(file).Format(table.New(columns, rows)); err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Generated sales.parquet with %d rows\n", len(rows))
}
