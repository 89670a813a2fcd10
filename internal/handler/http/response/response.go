package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the uniform error envelope. Detail is a plain string for
// most errors and a field-to-message map for validation failures.
type ErrorBody struct {
	Detail interface{} `json:"detail"`
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		_ = json.NewEncoder(w).Encode(ErrorBody{Detail: "failed to encode response"})
	}
}

// Success responses
func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error responses
func BadRequest(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusBadRequest, ErrorBody{Detail: detail})
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorBody{Detail: details})
}

func Unauthorized(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusUnauthorized, ErrorBody{Detail: detail})
}

func Forbidden(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusForbidden, ErrorBody{Detail: detail})
}

func NotFound(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusNotFound, ErrorBody{Detail: detail})
}

func Conflict(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusConflict, ErrorBody{Detail: detail})
}

func InternalServerError(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusInternalServerError, ErrorBody{Detail: detail})
}
