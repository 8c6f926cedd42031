package internal

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"reclaimit-api/internal/models"

	"github.com/go-chi/chi/v5"
)

// draftEmail generates a recovery email for an asset. The draft is returned
// to the caller and never stored.
func (s *Server) draftEmail(w http.ResponseWriter, r *http.Request) {
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

	draft := s.Drafter.DraftEmail(r.Context(), a)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]models.EmailDraft{"email": draft}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// sendEmail simulates sending a recovery email: it drafts, records an email
// log row, and optionally transitions the asset to Recovered when
// simulate_recovery is set.
func (s *Server) sendEmail(w http.ResponseWriter, r *http.Request) {
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

	draft := s.Drafter.DraftEmail(r.Context(), a)

	entry := models.EmailLogEntry{
		AssetID:   a.AssetID,
		AssetDBID: a.ID,
		To:        draft.To,
		Subject:   draft.Subject,
		Body:      draft.Body,
		SentAt:    time.Now().UTC(),
		Simulated: true,
	}

	status := a.Status
	if r.URL.Query().Get("simulate_recovery") == "true" {
		err := s.DB.QueryRowContext(r.Context(), `
			UPDATE assets SET status = $1, updated_at = now()
			WHERE id = $2
			RETURNING status`, models.StatusRecovered, a.ID).Scan(&status)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		entry.SimulatedRecovery = true
	}

	err = s.DB.QueryRowContext(r.Context(), `
		INSERT INTO email_log (asset_id, asset_db_id, recipient, subject, body, sent_at, simulated, simulated_recovery)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		entry.AssetID, entry.AssetDBID, entry.To, entry.Subject, entry.Body,
		entry.SentAt, entry.Simulated, entry.SimulatedRecovery).Scan(&entry.ID)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	resp := map[string]any{
		"sent":         true,
		"log":          entry,
		"asset_status": status,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
