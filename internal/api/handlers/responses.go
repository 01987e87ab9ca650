// Package handlers holds the response helpers shared by every endpoint.
package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the error envelope: a generic friendly message plus a
// machine-readable kind. Internal detail never reaches the client.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ConflictResponse carries alternative slots with the slot_conflict error.
type ConflictResponse struct {
	Success      bool     `json:"success"`
	Error        string   `json:"error"`
	Alternatives []string `json:"alternatives"`
}

// RespondJSON writes a JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondBadRequest writes a 400 validation error.
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: message})
}

// RespondUnauthorized writes a 401 authentication error.
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: message})
}

// RespondForbidden writes a 403 authorization error.
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusForbidden, ErrorResponse{Error: "authorization_error", Message: message})
}

// RespondNotFound writes a 404 error.
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: "not_found", Message: message})
}

// RespondConflict writes a 409 with the alternative slots.
func RespondConflict(w http.ResponseWriter, alternatives []string) {
	if alternatives == nil {
		alternatives = []string{}
	}
	RespondJSON(w, http.StatusConflict, ConflictResponse{Error: "slot_conflict", Alternatives: alternatives})
}

// RespondInternalError writes a 500. The cause is only logged, never echoed.
func RespondInternalError(w http.ResponseWriter) {
	RespondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal_error"})
}

// DecodeJSON parses the request body into dst.
func DecodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
