// Package httpx provides JSON response utilities with machine-readable outcome codes.
package httpx

import (
	"encoding/json"
	"net/http"
)

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Outcome sends an envelope carrying only an outcome code.
func Outcome(w http.ResponseWriter, status int, code string) {
	JSON(w, status, map[string]any{"message": code})
}

// OutcomeWith sends an envelope carrying an outcome code plus extra fields.
func OutcomeWith(w http.ResponseWriter, status int, code string, extra map[string]any) {
	body := make(map[string]any, len(extra)+1)
	for k, v := range extra {
		body[k] = v
	}
	body["message"] = code
	JSON(w, status, body)
}

// DecodeJSON decodes JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
