package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"log"
	"net/http"
)

// APIKeyHeader carries the admin key
const APIKeyHeader = "X-API-KEY"

// RequireAPIKey rejects requests whose X-API-KEY header does not match key.
// An empty key disables the check.
func RequireAPIKey(key string, next http.HandlerFunc) http.HandlerFunc {
	if key == "" {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(APIKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			log.Printf("❌ RequireAPIKey: Rejected %s %s", r.Method, r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Invalid or missing API key"})
			return
		}
		next(w, r)
	}
}
