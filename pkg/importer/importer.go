// Package importer ingests tabular asset data (CSV or XLSX) into the assets
// table. Header names are normalized through an alias mapping so exports from
// different inventory tools land on the same columns.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tealeg/xlsx/v3"
	"gopkg.in/yaml.v3"
)

// ImportOptions defines the configuration for bulk import operations
type ImportOptions struct {
	MappingPath string // optional yaml alias mapping; empty uses the built-in one
	DryRun      bool
	MaxErrors   int // default 50
}

// RowError represents an error that occurred during row processing
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportSummary contains the overall import statistics
type ImportSummary struct {
	Created int        `json:"created"`
	Skipped int        `json:"skipped"`
	Errors  int        `json:"errors"`
	Samples []RowError `json:"error_samples,omitempty"`
	DryRun  bool       `json:"dry_run"`
}

// MappingConfig represents the YAML header-alias configuration
type MappingConfig struct {
	Version int                 `yaml:"version"`
	Aliases map[string][]string `yaml:"aliases"` // canonical field -> accepted headers
}

// assetFields are the canonical columns a row may populate.
var assetFields = []string{
	"asset_id", "name", "category", "owner", "owner_email", "last_seen",
	"location", "status", "value_estimate", "model", "serial_number", "notes",
}

// defaultMapping covers the header spellings seen in the wild.
var defaultMapping = MappingConfig{
	Version: 1,
	Aliases: map[string][]string{
		"asset_id":       {"asset id", "asset tag", "tag", "id"},
		"owner":          {"assigned to", "user", "employee"},
		"owner_email":    {"email", "owner email"},
		"last_seen":      {"last seen", "last checkin", "last check-in"},
		"serial_number":  {"serial", "serial no", "serial number"},
		"value_estimate": {"value", "estimated value"},
	},
}

func loadMappingConfig(path string) (MappingConfig, error) {
	if path == "" {
		return defaultMapping, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return MappingConfig{}, fmt.Errorf("failed to read mapping config: %w", err)
	}
	var cfg MappingConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MappingConfig{}, fmt.Errorf("failed to parse mapping config: %w", err)
	}
	if cfg.Aliases == nil {
		cfg.Aliases = map[string][]string{}
	}
	return cfg, nil
}

// headerIndex maps each recognized column of the header row to its canonical
// field name. Unknown headers are ignored.
func headerIndex(header []string, mapping MappingConfig) map[int]string {
	canonical := map[string]string{}
	for _, f := range assetFields {
		canonical[f] = f
		for _, alias := range mapping.Aliases[f] {
			canonical[strings.ToLower(strings.TrimSpace(alias))] = f
		}
	}

	idx := map[int]string{}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if field, ok := canonical[key]; ok {
			idx[i] = field
		}
	}
	return idx
}

// lastSeenFormats are tried in order when parsing the last_seen column.
var lastSeenFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006",
}

func parseLastSeen(s string) *time.Time {
	for _, layout := range lastSeenFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	// An unparseable date degrades to NULL rather than failing the row.
	return nil
}

// decodeRow converts one data row into canonical field values. Empty cells
// become absent fields.
func decodeRow(cells []string, idx map[int]string) map[string]string {
	fields := map[string]string{}
	for i, cell := range cells {
		field, ok := idx[i]
		if !ok {
			continue
		}
		v := strings.TrimSpace(cell)
		if v == "" {
			continue
		}
		fields[field] = v
	}
	return fields
}

// ImportCSV imports a CSV stream. The first record is the header row.
func ImportCSV(ctx context.Context, db *pgxpool.Pool, r io.Reader, opts ImportOptions) (ImportSummary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return ImportSummary{DryRun: opts.DryRun}, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return ImportSummary{DryRun: opts.DryRun}, fmt.Errorf("empty file: missing header row")
	}

	return importRows(ctx, db, records[0], records[1:], opts)
}

// ImportXLSX imports the first sheet of an Excel workbook.
func ImportXLSX(ctx context.Context, db *pgxpool.Pool, r io.Reader, opts ImportOptions) (ImportSummary, error) {
	summary := ImportSummary{DryRun: opts.DryRun}

	data, err := io.ReadAll(r)
	if err != nil {
		return summary, fmt.Errorf("failed to read Excel file: %w", err)
	}
	xlFile, err := xlsx.OpenBinary(data)
	if err != nil {
		return summary, fmt.Errorf("failed to open Excel file: %w", err)
	}
	if len(xlFile.Sheets) == 0 {
		return summary, fmt.Errorf("workbook has no sheets")
	}

	sheet := xlFile.Sheets[0]
	var rows [][]string
	err = sheet.ForEachRow(func(row *xlsx.Row) error {
		cells := []string{}
		rerr := row.ForEachCell(func(c *xlsx.Cell) error {
			cells = append(cells, c.String())
			return nil
		})
		if rerr != nil {
			return rerr
		}
		rows = append(rows, cells)
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("failed to read sheet %q: %w", sheet.Name, err)
	}
	if len(rows) == 0 {
		return summary, fmt.Errorf("sheet %q is empty", sheet.Name)
	}

	return importRows(ctx, db, rows[0], rows[1:], opts)
}

// importRows inserts the decoded rows inside a single transaction. Dry runs
// roll the transaction back after counting.
func importRows(ctx context.Context, db *pgxpool.Pool, header []string, rows [][]string, opts ImportOptions) (ImportSummary, error) {
	summary := ImportSummary{DryRun: opts.DryRun}

	if opts.MaxErrors == 0 {
		opts.MaxErrors = 50
	}
	mapping, err := loadMappingConfig(opts.MappingPath)
	if err != nil {
		return summary, err
	}

	idx := headerIndex(header, mapping)
	if len(idx) == 0 {
		return summary, fmt.Errorf("no recognized columns in header row")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, cells := range rows {
		rowNum := i + 2 // 1-based, after the header

		fields := decodeRow(cells, idx)
		if len(fields) == 0 {
			summary.Skipped++
			continue
		}

		if err := insertAsset(ctx, tx, fields); err != nil {
			summary.Errors++
			if len(summary.Samples) < 10 {
				summary.Samples = append(summary.Samples, RowError{Row: rowNum, Message: err.Error()})
			}
			if summary.Errors > opts.MaxErrors {
				return summary, fmt.Errorf("aborted after %d row errors", summary.Errors)
			}
			continue
		}
		summary.Created++
	}

	if opts.DryRun {
		return summary, nil
	}
	if err := tx.Commit(ctx); err != nil {
		return summary, fmt.Errorf("failed to commit import: %w", err)
	}
	return summary, nil
}

func insertAsset(ctx context.Context, tx pgx.Tx, fields map[string]string) error {
	assetID := fields["asset_id"]
	if assetID == "" {
		assetID = uuid.NewString()
	}

	status := fields["status"]
	if status == "" {
		status = "Active"
	}
	switch status {
	case "Active", "Missing", "Recovered":
	default:
		return fmt.Errorf("invalid status %q", status)
	}

	var lastSeen *time.Time
	if v := fields["last_seen"]; v != "" {
		lastSeen = parseLastSeen(v)
	}

	var valueEstimate *float64
	if v := fields["value_estimate"]; v != "" {
		f, err := strconv.ParseFloat(strings.TrimPrefix(v, "$"), 64)
		if err != nil {
			return fmt.Errorf("invalid value_estimate %q", v)
		}
		if f < 0 {
			return fmt.Errorf("negative value_estimate %q", v)
		}
		valueEstimate = &f
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO assets (asset_id, name, category, owner, owner_email, last_seen,
		                    location, status, value_estimate, model, serial_number, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		assetID, nullIfEmpty(fields["name"]), nullIfEmpty(fields["category"]),
		nullIfEmpty(fields["owner"]), nullIfEmpty(fields["owner_email"]), lastSeen,
		nullIfEmpty(fields["location"]), status, valueEstimate,
		nullIfEmpty(fields["model"]), nullIfEmpty(fields["serial_number"]),
		nullIfEmpty(fields["notes"]))
	return err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
