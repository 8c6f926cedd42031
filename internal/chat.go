package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"reclaimit-api/internal/models"

	"github.com/lib/pq"
)

// chat answers a free-text question about assets. Context assets come from
// the explicit id list when given, otherwise from a naive substring match of
// the query against owner, asset tag and name; with no match at all the first
// few assets serve as generic context.
func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", 400)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "query is required", 400)
		return
	}

	var contextAssets []models.Asset
	var err error
	if len(req.ContextAssetIDs) > 0 {
		contextAssets, err = s.assetsByIDs(r, req.ContextAssetIDs)
	} else {
		contextAssets, err = s.retrieveContext(r, req.Query)
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	answer := s.Drafter.AnswerChat(r.Context(), req.Query, contextAssets)

	w.Header().Set("Content-Type", "application/json")
	resp := models.ChatResponse{Answer: answer, ContextCount: len(contextAssets)}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// assetsByIDs loads the named assets, skipping ids that do not exist.
func (s *Server) assetsByIDs(r *http.Request, ids []int64) ([]models.Asset, error) {
	rows, err := s.DB.QueryContext(r.Context(),
		fmt.Sprintf("SELECT %s FROM assets WHERE id = ANY($1::bigint[]) ORDER BY id", assetColumns),
		pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []models.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows.Scan)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// retrieveContext finds assets whose owner, tag or name contains the lowered
// query as a substring. Falls back to the first 5 assets when nothing matches.
func (s *Server) retrieveContext(r *http.Request, query string) ([]models.Asset, error) {
	rows, err := s.DB.QueryContext(r.Context(),
		fmt.Sprintf("SELECT %s FROM assets ORDER BY id LIMIT 200", assetColumns))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	q := strings.ToLower(query)
	matched := []models.Asset{}
	all := []models.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows.Scan)
		if err != nil {
			return nil, err
		}
		all = append(all, a)
		if assetMatchesQuery(a, q) {
			matched = append(matched, a)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(matched) > 0 {
		return matched, nil
	}
	if len(all) > 5 {
		all = all[:5]
	}
	return all, nil
}

// assetMatchesQuery reports whether the lowered query is a substring of the
// asset's owner, name or tag. A fragment like "mike" selects Mike Chen's
// assets; a full sentence matches nothing and the caller falls back.
func assetMatchesQuery(a models.Asset, loweredQuery string) bool {
	for _, field := range []*string{a.Owner, a.Name} {
		if field != nil && *field != "" && strings.Contains(strings.ToLower(*field), loweredQuery) {
			return true
		}
	}
	return a.AssetID != "" && strings.Contains(strings.ToLower(a.AssetID), loweredQuery)
}
