package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reclaimit-api/pkg/assetview"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAssetsParamOmission(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	c := New(srv.URL)

	_, err := c.ListAssets(context.Background(), assetview.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, gotQuery, "zero-value filter must send no parameters")

	_, err = c.ListAssets(context.Background(), assetview.ListFilter{
		Status: assetview.StatusMissing,
		Search: "building",
		Limit:  10,
	})
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "status=Missing")
	assert.Contains(t, gotQuery, "search=building")
	assert.Contains(t, gotQuery, "limit=10")
	assert.NotContains(t, gotQuery, "owner=")
	assert.NotContains(t, gotQuery, "offset=")
}

func TestListAssetsNormalizes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 1, "asset_id": "LPT-001", "owner_email": "sarah@example.com", "value_estimate": 900},
			{"id": 2, "asset_id": "LPT-002", "owner": "Mike Chen", "status": "Missing", "value": 1500}
		]`))
	}))
	defer srv.Close()

	records, err := New(srv.URL).ListAssets(context.Background(), assetview.ListFilter{})
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "sarah@example.com", records[0].Owner)
	assert.Equal(t, assetview.StatusActive, records[0].Status)
	assert.Equal(t, 900.0, records[0].Value)

	assert.Equal(t, assetview.StatusMissing, records[1].Status)
	assert.Equal(t, 1500.0, records[1].Value)
}

func TestRemoteErrorCarriesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Asset not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).FlagMissing(context.Background(), "999")
	require.Error(t, err)

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusNotFound, remoteErr.StatusCode)
	assert.Equal(t, "Asset not found", remoteErr.Body)
	// The error message is the server body, verbatim
	assert.EqualError(t, err, "Asset not found")
}

func TestRemoteErrorEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Dashboard(context.Background())
	require.Error(t, err)
	assert.EqualError(t, err, "remote store returned status 502")
}

func TestFlagMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/assets/2/flag_missing", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 2, "status": "Missing"}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).FlagMissing(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "2", res.ID)
	assert.Equal(t, assetview.StatusMissing, res.Status)
}

func TestDraftEmailUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"email": {"to": "mike.chen@example.com", "subject": "s", "body": "b"}}`))
	}))
	defer srv.Close()

	draft, err := New(srv.URL).DraftEmail(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "mike.chen@example.com", draft.To)
	assert.Equal(t, "s", draft.Subject)
	assert.Equal(t, "b", draft.Body)
}

func TestSendEmailSimulateRecoveryFlag(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sent": true, "log": {"id": 1}, "asset_status": "Recovered"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)

	res, err := c.SendEmail(context.Background(), "2", true)
	require.NoError(t, err)
	assert.Equal(t, "simulate_recovery=true", gotQuery)
	assert.True(t, res.Sent)
	assert.Equal(t, assetview.StatusRecovered, res.AssetStatus)

	_, err = c.SendEmail(context.Background(), "2", false)
	require.NoError(t, err)
	assert.Empty(t, gotQuery, "flag must be omitted when unset")
}

func TestBulkImportMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "assets.csv", header.Filename)
		data, _ := io.ReadAll(file)
		assert.Equal(t, "asset_id,owner\nAST-1,Sam\n", string(data))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"created": 1})
	}))
	defer srv.Close()

	res, err := New(srv.URL).BulkImport(context.Background(), "assets.csv",
		strings.NewReader("asset_id,owner\nAST-1,Sam\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "who owns LPT-002?", payload["query"])
		assert.Len(t, payload["context_asset_ids"], 1)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": "Mike Chen", "context_count": 1}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Chat(context.Background(), "who owns LPT-002?", []int64{2})
	require.NoError(t, err)
	assert.Equal(t, "Mike Chen", res.Answer)
	assert.Equal(t, 1, res.ContextCount)
}

func TestChatOmitsEmptyContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.NotContains(t, string(body), "context_asset_ids")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer": "hi", "context_count": 0}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Chat(context.Background(), "hello", nil)
	require.NoError(t, err)
}

func TestEstimateValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/assets/1/estimate_value", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rule_based": 960, "ml_stub": 1000.5, "final": 980.25, "disposition": "Attempt Recovery for Reuse/Sale"}`))
	}))
	defer srv.Close()

	est, err := New(srv.URL).EstimateValue(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 960.0, est.RuleBased)
	assert.Equal(t, 1000.5, est.MLStub)
	assert.Equal(t, 980.25, est.Final)
	assert.Equal(t, "Attempt Recovery for Reuse/Sale", est.Disposition)
}

func TestDashboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"kpis": {"total_assets": 3, "missing": 1, "recovered": 1},
			"charts": {
				"status_breakdown": {"Active": 1, "Missing": 1, "Recovered": 1},
				"value_buckets": {"<100": 0, "100-499": 1, "500-999": 0, "1000+": 2, "unknown": 0}
			}
		}`))
	}))
	defer srv.Close()

	sum, err := New(srv.URL).Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, sum.KPIs.TotalAssets)
	assert.Equal(t, 1, sum.KPIs.Missing)
	assert.Equal(t, 1, sum.Charts.StatusBreakdown["Recovered"])
	assert.Equal(t, 2, sum.Charts.ValueBuckets["1000+"])
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/assets", r.URL.Path)
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	_, err := New(srv.URL+"/").ListAssets(context.Background(), assetview.ListFilter{})
	require.NoError(t, err)
}
