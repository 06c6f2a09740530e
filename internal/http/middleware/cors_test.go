package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if called != nil {
			*called = true
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	called := false
	mw := CORS([]string{"https://widget.example.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/chatbot/message", nil)
	req.Header.Set("Origin", "https://widget.example.com")
	rec := httptest.NewRecorder()

	mw(okHandler(&called)).ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to be called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://widget.example.com" {
		t.Fatalf("expected allow origin header, got %q", got)
	}
}

func TestCORSDeniesUnknownOrigin(t *testing.T) {
	mw := CORS([]string{"https://widget.example.com"})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://unknown.example")
	rec := httptest.NewRecorder()

	mw(okHandler(nil)).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow origin header, got %q", got)
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	mw := CORS([]string{" * ", ""})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://anything.example")
	rec := httptest.NewRecorder()

	mw(okHandler(nil)).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Fatalf("expected allow origin header for wildcard config")
	}
}

func TestCORSPreflight(t *testing.T) {
	called := false
	mw := CORS([]string{"https://widget.example.com"})
	req := httptest.NewRequest(http.MethodOptions, "/api/chatbot/tag", nil)
	req.Header.Set("Origin", "https://widget.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Vendor-ID")
	rec := httptest.NewRecorder()

	mw(okHandler(&called)).ServeHTTP(rec, req)

	if called {
		t.Fatalf("expected preflight to be answered by the middleware")
	}
	if rec.Code < 200 || rec.Code > 299 {
		t.Fatalf("expected 2xx preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatalf("expected allow methods header")
	}
	if rec.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Fatalf("expected allow headers header")
	}
}
