package controller

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"storefront-pricing/service"
)

// ErrorResponse is the JSON body returned for rejected requests
// Example: {"error": "insufficient stock"}
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusForError maps service rejections to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCartLineNotFound),
		errors.Is(err, service.ErrCouponNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrOutOfStock),
		errors.Is(err, service.ErrExceedsStock),
		errors.Is(err, service.ErrCouponNotEligible),
		errors.Is(err, service.ErrDuplicateCoupon):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any, funcName string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ %s: Error encoding response: %v", funcName, err)
	}
}

func writeError(w http.ResponseWriter, err error, funcName string) {
	status := statusForError(err)
	log.Printf("❌ %s: %v (status=%d)", funcName, err, status)
	writeJSON(w, status, ErrorResponse{Error: err.Error()}, funcName)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any, funcName string) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Printf("❌ %s: Failed to decode request body: %v", funcName, err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()}, funcName)
		return false
	}
	return true
}

// pathParam returns the path segment after prefix, or "" when it is missing or nested
func pathParam(r *http.Request, prefix string) string {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, prefix), "/")
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, funcName string) {
	log.Printf("❌ %s: Method not allowed: %s", funcName, r.Method)
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}
