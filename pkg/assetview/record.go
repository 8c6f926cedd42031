// Package assetview holds the client-side view of tracked assets: the
// canonical record model, the filter/search engine, the view-synchronization
// controller and the local outreach assistant. It performs no network I/O
// itself; the remote store is reached through the RemoteStore interface,
// implemented by pkg/client.
package assetview

import (
	"math"
	"strconv"
	"time"
)

// Status is the recovery lifecycle state of an asset.
type Status string

const (
	StatusActive    Status = "Active"
	StatusMissing   Status = "Missing"
	StatusRecovered Status = "Recovered"
)

// EmailDraft is a drafted recovery email attached to a record after a draft
// operation. It is ephemeral and never sent back upstream.
type EmailDraft struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// RawAsset is the wire shape of an asset as returned by the remote store.
type RawAsset struct {
	ID                    int64    `json:"id"`
	AssetID               string   `json:"asset_id"`
	Name                  string   `json:"name"`
	Category              string   `json:"category"`
	Owner                 string   `json:"owner"`
	OwnerEmail            string   `json:"owner_email"`
	LastSeen              string   `json:"last_seen"`
	Location              string   `json:"location"`
	Status                string   `json:"status"`
	Value                 *float64 `json:"value"`
	ValueEstimate         *float64 `json:"value_estimate"`
	DispositionSuggestion string   `json:"disposition_suggestion"`
	Model                 string   `json:"model"`
	SerialNumber          string   `json:"serial_number"`
}

// Record is the canonical client-side representation of one tracked asset.
type Record struct {
	ID                    string      `json:"id"`
	AssetID               string      `json:"asset_id"`
	Owner                 string      `json:"owner"`
	Location              string      `json:"location"`
	LastSeen              string      `json:"last_seen"`
	Status                Status      `json:"status"`
	Value                 float64     `json:"value"`
	Category              string      `json:"category,omitempty"`
	Model                 string      `json:"model,omitempty"`
	SerialNumber          string      `json:"serial_number,omitempty"`
	ValueEstimate         *float64    `json:"value_estimate,omitempty"`
	DispositionSuggestion string      `json:"disposition_suggestion,omitempty"`
	DraftedEmail          *EmailDraft `json:"draftedEmail,omitempty"`
}

// Normalize maps a raw remote payload onto a Record. It is total: missing
// fields degrade to defaults (status Active, value falling back to the
// estimate and then zero, owner falling back to the owner email).
func Normalize(raw RawAsset) Record {
	owner := raw.Owner
	if owner == "" {
		owner = raw.OwnerEmail
	}

	status := Status(raw.Status)
	switch status {
	case StatusActive, StatusMissing, StatusRecovered:
	default:
		status = StatusActive
	}

	var value float64
	switch {
	case raw.Value != nil:
		value = *raw.Value
	case raw.ValueEstimate != nil:
		value = *raw.ValueEstimate
	}
	if value < 0 {
		value = 0
	}

	return Record{
		ID:                    strconv.FormatInt(raw.ID, 10),
		AssetID:               raw.AssetID,
		Owner:                 owner,
		Location:              raw.Location,
		LastSeen:              raw.LastSeen,
		Status:                status,
		Value:                 value,
		Category:              raw.Category,
		Model:                 raw.Model,
		SerialNumber:          raw.SerialNumber,
		ValueEstimate:         raw.ValueEstimate,
		DispositionSuggestion: raw.DispositionSuggestion,
	}
}

// dateLayouts are tried in order when parsing a last-seen date string.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// DaysSince returns the whole number of days between the date string and now.
// Future dates yield negative values; they signal clock skew or bad data and
// are reported as-is. An unparseable date yields 0.
func DaysSince(dateString string, now time.Time) int {
	var t time.Time
	var err error
	for _, layout := range dateLayouts {
		if t, err = time.Parse(layout, dateString); err == nil {
			break
		}
	}
	if err != nil {
		return 0
	}
	return int(math.Floor(now.Sub(t).Hours() / 24))
}
