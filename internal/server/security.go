package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the hardening applied to every HTTP response.
type SecurityConfig struct {
	// EnableCORS turns on cross-origin response headers.
	EnableCORS bool
	// AllowedOrigins lists the origins granted access; "*" matches any.
	AllowedOrigins []string
	// AllowedMethods lists the methods advertised to browsers.
	AllowedMethods []string
	// MaxNValue is the largest index the fib endpoint accepts. It bounds the
	// work a single unauthenticated request can demand.
	MaxNValue int64
}

// DefaultSecurityConfig returns the configuration used unless the caller
// overrides it: permissive CORS for a local tool, read-only methods, and a
// request size cap.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxNValue:      1_000_000_000,
	}
}

// SecurityMiddleware wraps next with standard security headers, CORS
// handling and OPTIONS preflight termination.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// allowedOrigin resolves the Access-Control-Allow-Origin value for a request
// origin, or "" when the origin is not granted access. The wildcard matches
// every request, including those without an Origin header.
func allowedOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		if a == "*" {
			return "*"
		}
		if origin != "" && a == origin {
			return origin
		}
	}
	return ""
}
