package httpx

import "net/http"

// Outcome codes shared across handlers. Domain-specific codes live next to
// the handler that emits them.
const (
	CodeMissingFields     = "MISSING_FIELDS"
	CodeInvalidJSON       = "INVALID_JSON_FORMAT"
	CodeForbidden         = "FORBIDDEN"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeInternalError     = "INTERNAL_SERVER_ERROR"
	CodeSuccessfulFetch   = "PRODUCTS_FETCHED"
	CodeInvalidID         = "INVALID_ID"
	CodeInvalidCharacters = "INVALID_CHARACTERS"
	CodeIDNotFound        = "ID_NOT_FOUND"
)

// Forbidden sends the standard authorization failure response.
func Forbidden(w http.ResponseWriter) {
	Outcome(w, http.StatusForbidden, CodeForbidden)
}

// Internal sends the fallback failure response.
func Internal(w http.ResponseWriter) {
	Outcome(w, http.StatusInternalServerError, CodeInternalError)
}
