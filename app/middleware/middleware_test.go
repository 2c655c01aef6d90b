package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}

func TestRequireAPIKey(t *testing.T) {
	h := RequireAPIKey("secret", okHandler)

	tests := map[string]struct {
		header string
		want   int
	}{
		"missing": {"", http.StatusUnauthorized},
		"wrong":   {"nope", http.StatusUnauthorized},
		"match":   {"secret", http.StatusTeapot},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/x", nil)
			if tc.header != "" {
				req.Header.Set(APIKeyHeader, tc.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRequireAPIKey_DisabledWithoutKey(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireAPIKey("", okHandler)(rec, httptest.NewRequest(http.MethodGet, "/admin/x", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestMetrics_CountsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics-test/", okHandler)
	h := Metrics(mux)

	counter := httpRequests.WithLabelValues(http.MethodGet, "/metrics-test/", http.StatusText(http.StatusTeapot))
	before := testutil.ToFloat64(counter)

	for i := 0; i < 3; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test/abc", nil))
	}
	assert.Equal(t, before+3, testutil.ToFloat64(counter))

	unmatched := httpRequests.WithLabelValues(http.MethodGet, "unmatched", http.StatusText(http.StatusNotFound))
	before = testutil.ToFloat64(unmatched)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, before+1, testutil.ToFloat64(unmatched))
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	rec := httptest.NewRecorder()
	RequestLogger(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
