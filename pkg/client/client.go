// Package client is the HTTP adapter to the remote asset service. It is the
// only place that performs network I/O against the service and translates
// wire payloads into the canonical assetview records. It is a thin boundary:
// failures are surfaced unmodified, with no retries or backoff.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"reclaimit-api/pkg/assetview"
)

// RemoteError is a non-2xx response from the asset service. The message is
// the server's response body, verbatim.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("remote store returned status %d", e.StatusCode)
}

// Client talks to the remote asset service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the service at baseURL (e.g. "http://127.0.0.1:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ assetview.RemoteStore = (*Client)(nil)

// do issues a request and decodes the JSON response into out (when non-nil).
// Any non-2xx status becomes a *RemoteError carrying the raw body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return &RemoteError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ListAssets fetches the asset collection matching the filter. Unset filter
// fields are omitted from the request, never sent as empty.
func (c *Client) ListAssets(ctx context.Context, filter assetview.ListFilter) ([]assetview.Record, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Owner != "" {
		query.Set("owner", filter.Owner)
	}
	if filter.AssetID != "" {
		query.Set("asset_id", filter.AssetID)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.Itoa(filter.Offset))
	}

	var raw []assetview.RawAsset
	if err := c.do(ctx, http.MethodGet, "/api/assets", query, nil, "", &raw); err != nil {
		return nil, err
	}

	records := make([]assetview.Record, 0, len(raw))
	for _, r := range raw {
		records = append(records, assetview.Normalize(r))
	}
	return records, nil
}

// BulkImport uploads a tabular file as the multipart field "file". All
// validation happens server-side.
func (c *Client) BulkImport(ctx context.Context, filename string, contents io.Reader) (assetview.BulkImportResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return assetview.BulkImportResult{}, err
	}
	if _, err := io.Copy(part, contents); err != nil {
		return assetview.BulkImportResult{}, err
	}
	if err := mw.Close(); err != nil {
		return assetview.BulkImportResult{}, err
	}

	var out struct {
		Created int `json:"created"`
	}
	err = c.do(ctx, http.MethodPost, "/api/assets/bulk_upload", nil, &buf, mw.FormDataContentType(), &out)
	if err != nil {
		return assetview.BulkImportResult{}, err
	}
	return assetview.BulkImportResult{Created: out.Created}, nil
}

// FlagMissing transitions the asset to Missing.
func (c *Client) FlagMissing(ctx context.Context, id string) (assetview.FlagResult, error) {
	var out struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	err := c.do(ctx, http.MethodPost, "/api/assets/"+url.PathEscape(id)+"/flag_missing", nil, nil, "", &out)
	if err != nil {
		return assetview.FlagResult{}, err
	}
	return assetview.FlagResult{
		ID:     strconv.FormatInt(out.ID, 10),
		Status: assetview.Status(out.Status),
	}, nil
}

// DraftEmail asks the service for a recovery email draft. Nothing is stored;
// repeated calls may produce different bodies.
func (c *Client) DraftEmail(ctx context.Context, id string) (assetview.EmailDraft, error) {
	var out struct {
		Email assetview.EmailDraft `json:"email"`
	}
	err := c.do(ctx, http.MethodPost, "/api/assets/"+url.PathEscape(id)+"/draft_email", nil, nil, "", &out)
	if err != nil {
		return assetview.EmailDraft{}, err
	}
	return out.Email, nil
}

// SendEmail simulates sending a recovery email. With simulateRecovery set the
// service transitions the asset to Recovered; callers must refetch before
// rendering.
func (c *Client) SendEmail(ctx context.Context, id string, simulateRecovery bool) (assetview.SendResult, error) {
	query := url.Values{}
	if simulateRecovery {
		query.Set("simulate_recovery", "true")
	}
	var out struct {
		Sent        bool           `json:"sent"`
		Log         map[string]any `json:"log"`
		AssetStatus string         `json:"asset_status"`
	}
	err := c.do(ctx, http.MethodPost, "/api/assets/"+url.PathEscape(id)+"/send_email", query, nil, "", &out)
	if err != nil {
		return assetview.SendResult{}, err
	}
	return assetview.SendResult{
		Sent:        out.Sent,
		AssetStatus: assetview.Status(out.AssetStatus),
		Log:         out.Log,
	}, nil
}

// EstimateValue asks the service to compute and persist a value estimate.
func (c *Client) EstimateValue(ctx context.Context, id string) (assetview.Estimate, error) {
	var out struct {
		RuleBased   float64 `json:"rule_based"`
		MLStub      float64 `json:"ml_stub"`
		Final       float64 `json:"final"`
		Disposition string  `json:"disposition"`
	}
	err := c.do(ctx, http.MethodPost, "/api/assets/"+url.PathEscape(id)+"/estimate_value", nil, nil, "", &out)
	if err != nil {
		return assetview.Estimate{}, err
	}
	return assetview.Estimate{
		RuleBased:   out.RuleBased,
		MLStub:      out.MLStub,
		Final:       out.Final,
		Disposition: out.Disposition,
	}, nil
}

// Chat asks the remote assistant a question, optionally narrowed to the given
// asset ids.
func (c *Client) Chat(ctx context.Context, query string, contextAssetIDs []int64) (assetview.ChatResult, error) {
	payload := struct {
		Query           string  `json:"query"`
		ContextAssetIDs []int64 `json:"context_asset_ids,omitempty"`
	}{Query: query, ContextAssetIDs: contextAssetIDs}

	body, err := json.Marshal(payload)
	if err != nil {
		return assetview.ChatResult{}, err
	}

	var out struct {
		Answer       string `json:"answer"`
		ContextCount int    `json:"context_count"`
	}
	err = c.do(ctx, http.MethodPost, "/api/chat", nil, bytes.NewReader(body), "application/json", &out)
	if err != nil {
		return assetview.ChatResult{}, err
	}
	return assetview.ChatResult{Answer: out.Answer, ContextCount: out.ContextCount}, nil
}

// Dashboard fetches the read-only KPI/chart aggregate.
func (c *Client) Dashboard(ctx context.Context) (assetview.DashboardSummary, error) {
	var out struct {
		KPIs struct {
			TotalAssets int `json:"total_assets"`
			Missing     int `json:"missing"`
			Recovered   int `json:"recovered"`
		} `json:"kpis"`
		Charts struct {
			StatusBreakdown map[string]int `json:"status_breakdown"`
			ValueBuckets    map[string]int `json:"value_buckets"`
		} `json:"charts"`
	}
	err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, nil, "", &out)
	if err != nil {
		return assetview.DashboardSummary{}, err
	}
	return assetview.DashboardSummary{
		KPIs: assetview.DashboardKPIs{
			TotalAssets: out.KPIs.TotalAssets,
			Missing:     out.KPIs.Missing,
			Recovered:   out.KPIs.Recovered,
		},
		Charts: assetview.DashboardCharts{
			StatusBreakdown: out.Charts.StatusBreakdown,
			ValueBuckets:    out.Charts.ValueBuckets,
		},
	}, nil
}
