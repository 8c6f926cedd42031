// Command import_csv bulk-imports an asset CSV or XLSX file directly into
// the database, bypassing the HTTP API. Useful for seeding and one-off
// migrations.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"reclaimit-api/pkg/importer"
)

func main() {
	var (
		file      = flag.String("file", "", "path to the .csv or .xlsx file (required)")
		mapping   = flag.String("mapping", "", "optional yaml header-alias mapping")
		dryRun    = flag.Bool("dry-run", false, "parse and validate without committing")
		maxErrors = flag.Int("max-errors", 50, "abort after this many row errors")
	)
	flag.Parse()

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal("Failed to create pgxpool:", err)
	}
	defer pool.Close()

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal("Failed to open input file:", err)
	}
	defer f.Close()

	opts := importer.ImportOptions{
		MappingPath: *mapping,
		DryRun:      *dryRun,
		MaxErrors:   *maxErrors,
	}

	var sum importer.ImportSummary
	switch {
	case strings.HasSuffix(strings.ToLower(*file), ".csv"):
		sum, err = importer.ImportCSV(ctx, pool, f, opts)
	case strings.HasSuffix(strings.ToLower(*file), ".xlsx"):
		sum, err = importer.ImportXLSX(ctx, pool, f, opts)
	default:
		log.Fatal("Only .csv and .xlsx files are supported")
	}
	if err != nil {
		log.Fatal("Import failed: ", err)
	}

	fmt.Printf("created=%d skipped=%d errors=%d dry_run=%v\n", sum.Created, sum.Skipped, sum.Errors, sum.DryRun)
	for _, re := range sum.Samples {
		fmt.Printf("  row %d: %s\n", re.Row, re.Message)
	}
}
