package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/atmledger/internal/adapter/http/dto"
)

func TestRateLimiter_PerClient(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	h := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/account", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	for i := 0; i < 2; i++ {
		if rr := send("10.0.0.1:5000"); rr.Code != http.StatusOK {
			t.Fatalf("request %d within burst should pass, got %d", i, rr.Code)
		}
	}

	// Same host on another port shares the bucket.
	rr := send("10.0.0.1:5001")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil || resp.Code != "rate_limited" {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}

	if rr := send("10.0.0.2:5000"); rr.Code != http.StatusOK {
		t.Fatalf("other clients must not be throttled, got %d", rr.Code)
	}
}

func TestRateLimiter_CleanupLimiters(t *testing.T) {
	rl := NewRateLimiter(10, 10)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("10.0.0.1")
	now = now.Add(10 * time.Minute)
	rl.getLimiter("10.0.0.2")

	if removed := rl.CleanupLimiters(5 * time.Minute); removed != 1 {
		t.Fatalf("expected one idle limiter removed, got %d", removed)
	}
	if _, ok := rl.limiters["10.0.0.2"]; !ok {
		t.Fatalf("expected recent limiter to be kept")
	}
}
