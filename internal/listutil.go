package internal

import (
	"net/http"
	"strconv"
	"strings"
)

// listParams holds common query parameters for the asset list endpoint
type listParams struct {
	status  string
	owner   string
	assetID string
	search  string
	limit   int
	offset  int
	sort    string
}

// parseListParams parses status, owner, asset_id, search, limit, offset and sort
// from the request. Defaults: limit=100 (max 1000), offset=0.
func parseListParams(r *http.Request) listParams {
	values := r.URL.Query()

	limit := 100
	if s := strings.TrimSpace(values.Get("limit")); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			if v > 1000 {
				v = 1000
			}
			limit = v
		}
	}

	offset := 0
	if s := strings.TrimSpace(values.Get("offset")); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	return listParams{
		status:  strings.TrimSpace(values.Get("status")),
		owner:   strings.TrimSpace(values.Get("owner")),
		assetID: strings.TrimSpace(values.Get("asset_id")),
		search:  strings.TrimSpace(values.Get("search")),
		limit:   limit,
		offset:  offset,
		sort:    strings.TrimSpace(values.Get("sort")),
	}
}

// buildOrderBy builds a safe ORDER BY clause using a whitelist of allowed keys.
// allowed maps incoming sort keys (e.g., "last_seen") to actual column identifiers.
// Input sort is comma-separated; prefix with '-' for DESC.
// Returns a string starting with " ORDER BY ...". Defaults to " ORDER BY id ASC".
func buildOrderBy(sortParam string, allowed map[string]string) string {
	if sortParam == "" {
		if col, ok := allowed["id"]; ok {
			return " ORDER BY " + col + " ASC"
		}
		return " ORDER BY id ASC"
	}

	parts := strings.Split(sortParam, ",")
	clauses := make([]string, 0, len(parts))
	for _, raw := range parts {
		s := strings.TrimSpace(raw)
		if s == "" {
			continue
		}
		desc := false
		if strings.HasPrefix(s, "-") {
			desc = true
			s = strings.TrimPrefix(s, "-")
		}
		col, ok := allowed[s]
		if !ok {
			continue
		}
		if desc {
			clauses = append(clauses, col+" DESC")
		} else {
			clauses = append(clauses, col+" ASC")
		}
	}
	if len(clauses) == 0 {
		if col, ok := allowed["id"]; ok {
			return " ORDER BY " + col + " ASC"
		}
		return " ORDER BY id ASC"
	}
	return " ORDER BY " + strings.Join(clauses, ", ")
}
