package assetview

import (
	"context"
	"io"
)

// ListFilter narrows a remote listing. The zero value lists everything.
// Unset fields are omitted from the request entirely.
type ListFilter struct {
	Status  Status
	Owner   string
	AssetID string
	Search  string
	Limit   int
	Offset  int
}

// FlagResult is the outcome of flagging an asset missing.
type FlagResult struct {
	ID     string
	Status Status
}

// SendResult is the outcome of a (simulated) email send. AssetStatus is the
// server-side status after the call; the locally-held status must not be
// trusted past this point.
type SendResult struct {
	Sent        bool
	AssetStatus Status
	Log         map[string]any
}

// BulkImportResult reports how many records a bulk upload created.
type BulkImportResult struct {
	Created int
}

// Estimate is the server-computed value estimate for one asset.
type Estimate struct {
	RuleBased   float64
	MLStub      float64
	Final       float64
	Disposition string
}

// ChatResult is the remote assistant's reply.
type ChatResult struct {
	Answer       string
	ContextCount int
}

// DashboardSummary is the read-only KPI/chart aggregate.
type DashboardSummary struct {
	KPIs   DashboardKPIs
	Charts DashboardCharts
}

// DashboardKPIs holds the headline recovery numbers.
type DashboardKPIs struct {
	TotalAssets int
	Missing     int
	Recovered   int
}

// DashboardCharts holds the chart series.
type DashboardCharts struct {
	StatusBreakdown map[string]int
	ValueBuckets    map[string]int
}

// RemoteStore is the subset of the remote asset service the controller
// drives. pkg/client implements it.
type RemoteStore interface {
	// ListAssets fetches the asset collection matching the filter.
	ListAssets(ctx context.Context, filter ListFilter) ([]Record, error)
	// FlagMissing transitions the asset to Missing. Idempotent.
	FlagMissing(ctx context.Context, id string) (FlagResult, error)
	// SendEmail drafts and (simulated) sends a recovery email; with
	// simulateRecovery set the server transitions the asset to Recovered.
	SendEmail(ctx context.Context, id string, simulateRecovery bool) (SendResult, error)
	// BulkImport uploads a tabular file for server-side validation and import.
	BulkImport(ctx context.Context, filename string, contents io.Reader) (BulkImportResult, error)
}
