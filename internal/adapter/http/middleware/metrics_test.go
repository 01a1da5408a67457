package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestHTTPMetricsRecordsRequest(t *testing.T) {
	testCases := []struct {
		name       string
		method     string
		path       string
		statusCode int
		label      string
	}{
		{
			name:       "uses route pattern",
			method:     http.MethodPost,
			path:       "/api/v1/account/deposit",
			statusCode: http.StatusConflict,
			label:      "/api/v1/account/deposit",
		},
		{
			name:       "unknown path",
			method:     http.MethodGet,
			path:       "/nope/123",
			statusCode: http.StatusNotFound,
			label:      "unmatched",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			m := NewHTTPMetrics(reg)

			r := chi.NewRouter()
			r.Use(m.Wrap)
			r.Post("/api/v1/account/deposit", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
			})

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))

			if rr.Code != tc.statusCode {
				t.Fatalf("expected status %d, got %d", tc.statusCode, rr.Code)
			}
			if got := testutil.ToFloat64(m.requestsInFlight); got != 0 {
				t.Fatalf("expected in-flight gauge to return to 0, got %v", got)
			}

			counter := m.requestsTotal.WithLabelValues(tc.method, tc.label, strconv.Itoa(tc.statusCode))
			if got := testutil.ToFloat64(counter); got != 1 {
				t.Fatalf("expected counter to be 1, got %v", got)
			}
		})
	}
}
