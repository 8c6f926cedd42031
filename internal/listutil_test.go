package internal

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListParamsDefaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/assets", nil)
	params := parseListParams(req)

	assert.Equal(t, 100, params.limit)
	assert.Equal(t, 0, params.offset)
	assert.Empty(t, params.status)
	assert.Empty(t, params.owner)
	assert.Empty(t, params.assetID)
	assert.Empty(t, params.search)
}

func TestParseListParamsFilters(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/assets?status=Missing&owner=chen&asset_id=LPT-002&search=building&limit=10&offset=5", nil)
	params := parseListParams(req)

	assert.Equal(t, "Missing", params.status)
	assert.Equal(t, "chen", params.owner)
	assert.Equal(t, "LPT-002", params.assetID)
	assert.Equal(t, "building", params.search)
	assert.Equal(t, 10, params.limit)
	assert.Equal(t, 5, params.offset)
}

func TestParseListParamsLimitClamp(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/assets?limit=5000", nil)
	assert.Equal(t, 1000, parseListParams(req).limit)

	req = httptest.NewRequest("GET", "/api/assets?limit=0", nil)
	assert.Equal(t, 100, parseListParams(req).limit)

	req = httptest.NewRequest("GET", "/api/assets?limit=banana", nil)
	assert.Equal(t, 100, parseListParams(req).limit)

	req = httptest.NewRequest("GET", "/api/assets?offset=-3", nil)
	assert.Equal(t, 0, parseListParams(req).offset)
}

func TestBuildOrderBy(t *testing.T) {
	allowed := map[string]string{
		"id":        "id",
		"asset_id":  "asset_id",
		"last_seen": "last_seen",
	}

	assert.Equal(t, " ORDER BY id ASC", buildOrderBy("", allowed))
	assert.Equal(t, " ORDER BY asset_id ASC", buildOrderBy("asset_id", allowed))
	assert.Equal(t, " ORDER BY last_seen DESC", buildOrderBy("-last_seen", allowed))
	assert.Equal(t, " ORDER BY asset_id ASC, last_seen DESC", buildOrderBy("asset_id,-last_seen", allowed))

	// Unknown keys are dropped, never interpolated
	assert.Equal(t, " ORDER BY id ASC", buildOrderBy("drop table", allowed))
	assert.Equal(t, " ORDER BY asset_id ASC", buildOrderBy("asset_id,1;DELETE", allowed))
}
