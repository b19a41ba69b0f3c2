package server

import (
	"net/http"
	"slices"
	"strings"
)

// SecurityConfig controls the headers added to every response.
type SecurityConfig struct {
	// EnableCORS adds Access-Control-* headers.
	EnableCORS bool
	// AllowedOrigins lists accepted origins; "*" accepts any.
	AllowedOrigins []string
	// AllowedMethods is echoed in Access-Control-Allow-Methods.
	AllowedMethods []string
}

// DefaultSecurityConfig returns a read-only, any-origin configuration.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
	}
}

// SecurityMiddleware sets hardening headers, applies CORS and answers
// preflight requests without calling next.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			origin := r.Header.Get("Origin")
			switch {
			case slices.Contains(config.AllowedOrigins, "*"):
				h.Set("Access-Control-Allow-Origin", "*")
			case origin != "" && slices.Contains(config.AllowedOrigins, origin):
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}
