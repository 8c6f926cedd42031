package models

import "time"

// Asset statuses as stored in the database.
const (
	StatusActive    = "Active"
	StatusMissing   = "Missing"
	StatusRecovered = "Recovered"
)

// Asset represents one tracked physical asset row.
type Asset struct {
	ID                    int64      `json:"id"`
	AssetID               string     `json:"asset_id"`
	Name                  *string    `json:"name,omitempty"`
	Category              *string    `json:"category,omitempty"`
	Owner                 *string    `json:"owner,omitempty"`
	OwnerEmail            *string    `json:"owner_email,omitempty"`
	LastSeen              *time.Time `json:"last_seen,omitempty"`
	Location              *string    `json:"location,omitempty"`
	Status                string     `json:"status"`
	ValueEstimate         *float64   `json:"value_estimate,omitempty"`
	DispositionSuggestion *string    `json:"disposition_suggestion,omitempty"`
	Model                 *string    `json:"model,omitempty"`
	SerialNumber          *string    `json:"serial_number,omitempty"`
	Notes                 *string    `json:"notes,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// EmailDraft is a generated recovery email. It is returned to the caller and
// never written back to the asset row.
type EmailDraft struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailLogEntry records one simulated send.
type EmailLogEntry struct {
	ID                int64     `json:"id,omitempty"`
	AssetID           string    `json:"asset_id"`
	AssetDBID         int64     `json:"asset_db_id"`
	To                string    `json:"to"`
	Subject           string    `json:"subject"`
	Body              string    `json:"body"`
	SentAt            time.Time `json:"sent_at"`
	Simulated         bool      `json:"simulated"`
	SimulatedRecovery bool      `json:"simulated_recovery,omitempty"`
}

// FlagMissingResponse is the body of POST /api/assets/{id}/flag_missing.
type FlagMissingResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// EstimateResult is the body of POST /api/assets/{id}/estimate_value.
type EstimateResult struct {
	RuleBased   float64 `json:"rule_based"`
	MLStub      float64 `json:"ml_stub"`
	Final       float64 `json:"final"`
	Disposition string  `json:"disposition"`
}

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Query           string  `json:"query"`
	ContextAssetIDs []int64 `json:"context_asset_ids,omitempty"`
}

// ChatResponse is the reply to a chat request.
type ChatResponse struct {
	Answer       string `json:"answer"`
	ContextCount int    `json:"context_count"`
}

// DashboardKPIs holds the headline recovery numbers.
type DashboardKPIs struct {
	TotalAssets int `json:"total_assets"`
	Missing     int `json:"missing"`
	Recovered   int `json:"recovered"`
}

// DashboardCharts holds the chart series for the dashboard.
type DashboardCharts struct {
	StatusBreakdown map[string]int `json:"status_breakdown"`
	ValueBuckets    map[string]int `json:"value_buckets"`
}

// DashboardResponse is the body of GET /api/dashboard.
type DashboardResponse struct {
	KPIs   DashboardKPIs   `json:"kpis"`
	Charts DashboardCharts `json:"charts"`
}
