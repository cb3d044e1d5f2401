package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"taste-trail-backend/internal/storage"
)

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondStoreError maps storage sentinels onto HTTP status codes.
func respondStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, "not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrDuplicate):
		respondError(w, "already exists", http.StatusConflict)
	default:
		respondError(w, fallback, http.StatusInternalServerError)
	}
}
