package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSecurityMiddleware_Headers(t *testing.T) {
	t.Parallel()
	called := false
	h := SecurityMiddleware(DefaultSecurityConfig(), func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/sequence", nil))

	if !called {
		t.Fatal("next handler was not called")
	}
	want := map[string]string{
		"X-Content-Type-Options":       "nosniff",
		"X-Frame-Options":              "DENY",
		"Content-Security-Policy":      "default-src 'none'; frame-ancestors 'none'",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, OPTIONS",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestSecurityMiddleware_Preflight(t *testing.T) {
	t.Parallel()
	h := SecurityMiddleware(DefaultSecurityConfig(), func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight should not reach the handler")
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodOptions, "/sequence", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestSecurityMiddleware_Origins(t *testing.T) {
	t.Parallel()
	cfg := SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"https://example.com"},
		AllowedMethods: []string{http.MethodGet},
	}
	h := SecurityMiddleware(cfg, func(http.ResponseWriter, *http.Request) {})

	tests := []struct {
		origin string
		want   string
	}{
		{"https://example.com", "https://example.com"},
		{"https://evil.test", ""},
		{"", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		rec := httptest.NewRecorder()
		h(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("origin %q: allow-origin = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestSecurityMiddleware_CORSDisabled(t *testing.T) {
	t.Parallel()
	h := SecurityMiddleware(SecurityConfig{}, func(http.ResponseWriter, *http.Request) {})
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("CORS headers should be absent when disabled")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("hardening headers should always be set")
	}
}
