package handlers

import (
	"encoding/json"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"reclaimit-api/pkg/importer"
)

// UploadHandler handles bulk asset upload operations
type UploadHandler struct {
	DB         *pgxpool.Pool
	MaxBytes   int64
	DefaultMap string
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(db *pgxpool.Pool, maxBytes int64, mappingPath string) *UploadHandler {
	if maxBytes <= 0 {
		maxBytes = 20 << 20 // 20 MB
	}
	return &UploadHandler{
		DB:         db,
		MaxBytes:   maxBytes,
		DefaultMap: mappingPath,
	}
}

// UploadAssets handles CSV/XLSX file uploads for bulk asset import
func (h *UploadHandler) UploadAssets(w http.ResponseWriter, r *http.Request) {
	// Limit body size
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)

	// Require multipart
	if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		http.Error(w, "content-type must be multipart/form-data", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		http.Error(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	dryRun := r.FormValue("dry_run") == "true"
	mapping := r.FormValue("mapping")
	if mapping == "" {
		mapping = h.DefaultMap
	}
	maxErrors := 50
	if v := r.FormValue("max_errors"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxErrors = n
		}
	}

	// File
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	opts := importer.ImportOptions{
		MappingPath: mapping,
		DryRun:      dryRun,
		MaxErrors:   maxErrors,
	}

	var sum importer.ImportSummary
	var impErr error
	switch {
	case isCSV(header):
		sum, impErr = importer.ImportCSV(r.Context(), h.DB, file, opts)
	case isXLSX(header):
		sum, impErr = importer.ImportXLSX(r.Context(), h.DB, file, opts)
	default:
		http.Error(w, "Only CSV and XLSX files are supported.", http.StatusBadRequest)
		return
	}
	if impErr != nil {
		http.Error(w, impErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	if sum.Errors > 0 {
		log.Printf("bulk upload: %d rows created, %d skipped, %d failed", sum.Created, sum.Skipped, sum.Errors)
	}

	writeJSON(w, http.StatusOK, map[string]any{"created": sum.Created})
}

// isCSV checks if the uploaded file is a .csv file
func isCSV(h *multipart.FileHeader) bool {
	return strings.HasSuffix(strings.ToLower(h.Filename), ".csv")
}

// isXLSX checks if the uploaded file is an Excel .xlsx file
func isXLSX(h *multipart.FileHeader) bool {
	return strings.HasSuffix(strings.ToLower(h.Filename), ".xlsx")
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
