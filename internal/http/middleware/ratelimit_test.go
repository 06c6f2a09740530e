package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterBurstThenReject(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return base }

	if !rl.Allow("10.0.0.1") || !rl.Allow("10.0.0.1") {
		t.Fatalf("expected burst of 2 to be allowed")
	}
	if rl.Allow("10.0.0.1") {
		t.Fatalf("expected third request to be rejected")
	}
	if !rl.Allow("10.0.0.2") {
		t.Fatalf("expected a different IP to have its own bucket")
	}

	rl.now = func() time.Time { return base.Add(1100 * time.Millisecond) }
	if !rl.Allow("10.0.0.1") {
		t.Fatalf("expected a token to be refilled after one second")
	}
}

func TestRateLimiterEvict(t *testing.T) {
	rl := NewRateLimiter(5, 5)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return base }
	rl.Allow("a")

	rl.now = func() time.Time { return base.Add(5 * time.Minute) }
	rl.Allow("b")

	rl.now = func() time.Time { return base.Add(11 * time.Minute) }
	if removed := rl.Evict(10 * time.Minute); removed != 1 {
		t.Fatalf("expected 1 eviction, got %d", removed)
	}
	if _, ok := rl.visitors["b"]; !ok {
		t.Fatalf("expected recent visitor to be kept")
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	handler := rl.Middleware(okHandler(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/chatbot/message", nil)
	req.Header.Set("X-Real-Ip", "192.0.2.10")

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, req)
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header")
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:5555"
	if got := clientIP(req); got != "198.51.100.7" {
		t.Fatalf("expected host without port, got %q", got)
	}
}
