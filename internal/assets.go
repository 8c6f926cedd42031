package internal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"reclaimit-api/internal/models"

	"github.com/go-chi/chi/v5"
)

const assetColumns = `id, asset_id, name, category, owner, owner_email, last_seen, location, status,
	       value_estimate, disposition_suggestion, model, serial_number, notes, created_at, updated_at`

// scanAsset scans one asset row in assetColumns order.
func scanAsset(scan func(dest ...any) error) (models.Asset, error) {
	var a models.Asset
	err := scan(&a.ID, &a.AssetID, &a.Name, &a.Category, &a.Owner, &a.OwnerEmail, &a.LastSeen,
		&a.Location, &a.Status, &a.ValueEstimate, &a.DispositionSuggestion, &a.Model,
		&a.SerialNumber, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// listAssets handles asset listing with filters and pagination
func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	params := parseListParams(r)

	clauses := []string{}
	args := []interface{}{}
	arg := 1

	// optional status filter (Active/Missing/Recovered)
	if params.status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", arg))
		args = append(args, params.status)
		arg++
	}

	// optional owner substring filter
	if params.owner != "" {
		clauses = append(clauses, fmt.Sprintf("owner ILIKE $%d", arg))
		args = append(args, "%"+params.owner+"%")
		arg++
	}

	// optional asset tag filter
	if params.assetID != "" {
		clauses = append(clauses, fmt.Sprintf("asset_id = $%d", arg))
		args = append(args, params.assetID)
		arg++
	}

	// optional text search on name, owner and location
	if params.search != "" {
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR owner ILIKE $%d OR location ILIKE $%d)", arg, arg, arg))
		args = append(args, "%"+params.search+"%")
		arg++
	}

	whereClause := ""
	if len(clauses) > 0 {
		whereClause = " WHERE " + strings.Join(clauses, " AND ")
	}

	sqlStr := fmt.Sprintf("SELECT %s FROM assets%s", assetColumns, whereClause)

	allowedSort := map[string]string{
		"id":             "id",
		"asset_id":       "asset_id",
		"last_seen":      "last_seen",
		"status":         "status",
		"value_estimate": "value_estimate",
		"created_at":     "created_at",
		"updated_at":     "updated_at",
	}
	sqlStr += buildOrderBy(params.sort, allowedSort)
	sqlStr += fmt.Sprintf(" LIMIT %d OFFSET %d", params.limit, params.offset)

	rows, err := s.DB.QueryContext(r.Context(), sqlStr, args...)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer rows.Close()

	assets := []models.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows.Scan)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(assets); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// getAsset handles getting a single asset by ID
func (s *Server) getAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := s.fetchAsset(r, id)
	if err == sql.ErrNoRows {
		http.Error(w, "Asset not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(a); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// fetchAsset loads one asset row by its numeric id.
func (s *Server) fetchAsset(r *http.Request, id string) (models.Asset, error) {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return models.Asset{}, sql.ErrNoRows
	}
	row := s.DB.QueryRowContext(r.Context(),
		fmt.Sprintf("SELECT %s FROM assets WHERE id = $1", assetColumns), id)
	return scanAsset(row.Scan)
}

// flagMissing transitions an asset to Missing. Calling it twice is a no-op.
func (s *Server) flagMissing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		http.Error(w, "Asset not found", http.StatusNotFound)
		return
	}

	var out models.FlagMissingResponse
	err := s.DB.QueryRowContext(r.Context(), `
		UPDATE assets SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING id, status`, models.StatusMissing, id).Scan(&out.ID, &out.Status)
	if err == sql.ErrNoRows {
		http.Error(w, "Asset not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Rule-based base values by category; anything unknown gets the default.
var baseValues = map[string]float64{
	"laptop":  1200,
	"phone":   700,
	"monitor": 200,
	"printer": 150,
}

const defaultBaseValue = 300

// computeEstimate derives the rule-based value, the ML stub adjustment and the
// disposition suggestion for an asset. The stub perturbs the rule value by a
// random factor in [-15%, +15%].
func computeEstimate(category *string, lastSeen *time.Time, now time.Time, rng *rand.Rand) models.EstimateResult {
	cat := ""
	if category != nil {
		cat = strings.ToLower(*category)
	}
	ruleBased, ok := baseValues[cat]
	if !ok {
		ruleBased = defaultBaseValue
	}

	// Linear depreciation at 20%/year, floored at 20% of the base value.
	if lastSeen != nil {
		days := now.Sub(*lastSeen).Hours() / 24
		years := math.Max(days/365.0, 0)
		ruleBased = ruleBased * math.Max(0.2, 1-0.2*years)
	}

	mlAdjust := ruleBased * (1 + (rng.Float64()*0.3 - 0.15))
	final := (ruleBased + mlAdjust) / 2

	var disp string
	switch {
	case final < 100:
		disp = "Recycle"
	case final < 500:
		disp = "Repair/Refurbish"
	default:
		disp = "Attempt Recovery for Reuse/Sale"
	}

	return models.EstimateResult{
		RuleBased:   round2(ruleBased),
		MLStub:      round2(mlAdjust),
		Final:       round2(final),
		Disposition: disp,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// estimateValue computes and persists a value estimate plus disposition suggestion.
func (s *Server) estimateValue(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := s.fetchAsset(r, id)
	if err == sql.ErrNoRows {
		http.Error(w, "Asset not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	res := computeEstimate(a.Category, a.LastSeen, time.Now().UTC(), rand.New(rand.NewSource(time.Now().UnixNano())))

	_, err = s.DB.ExecContext(r.Context(), `
		UPDATE assets SET value_estimate = $1, disposition_suggestion = $2, updated_at = now()
		WHERE id = $3`, res.Final, res.Disposition, a.ID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// dashboard aggregates recovery KPIs and chart series.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	out := models.DashboardResponse{
		Charts: models.DashboardCharts{
			StatusBreakdown: map[string]int{},
			ValueBuckets: map[string]int{
				"<100": 0, "100-499": 0, "500-999": 0, "1000+": 0, "unknown": 0,
			},
		},
	}

	rows, err := s.DB.QueryContext(r.Context(), `SELECT status, COUNT(*) FROM assets GROUP BY status`)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		out.Charts.StatusBreakdown[status] = count
		out.KPIs.TotalAssets += count
		switch status {
		case models.StatusMissing:
			out.KPIs.Missing = count
		case models.StatusRecovered:
			out.KPIs.Recovered = count
		}
	}
	if err := rows.Err(); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	bucketRows, err := s.DB.QueryContext(r.Context(), `
		SELECT CASE
			WHEN value_estimate IS NULL THEN 'unknown'
			WHEN value_estimate < 100 THEN '<100'
			WHEN value_estimate < 500 THEN '100-499'
			WHEN value_estimate < 1000 THEN '500-999'
			ELSE '1000+'
		END AS bucket, COUNT(*)
		FROM assets GROUP BY bucket`)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	defer bucketRows.Close()
	for bucketRows.Next() {
		var bucket string
		var count int
		if err := bucketRows.Scan(&bucket, &count); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		out.Charts.ValueBuckets[bucket] = count
	}
	if err := bucketRows.Err(); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
