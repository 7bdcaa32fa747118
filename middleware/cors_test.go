// ABOUTME: Tests for the CORS middleware
// ABOUTME: Wildcard mode, origin allowlist and preflight handling

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsHandler(origins []string) (http.HandlerFunc, *bool) {
	called := false
	h := CORS(origins)(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

func TestCORS_WildcardWithoutAllowlist(t *testing.T) {
	h, _ := corsHandler(nil)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard origin, got %q", got)
	}
}

func TestCORS_Allowlist(t *testing.T) {
	h, _ := corsHandler([]string{"https://app.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Expected echoed origin, got %q", got)
	}
	if rec.Header().Get("Vary") != "Origin" {
		t.Error("Expected Vary: Origin with an allowlist")
	}

	// A non-allowlisted origin gets no allow-origin header.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no allow-origin header, got %q", got)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	h, called := corsHandler(nil)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodOptions, "/api/v1/rooms/compute", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", rec.Code)
	}
	if *called {
		t.Error("Preflight must not reach the wrapped handler")
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("Expected allow-methods header on preflight")
	}
}
