package middleware

import (
	"net/http"
	"strings"
)

// securityHeaders are set on every API response. Feeds and profiles are
// per-request snapshots, so nothing may be cached by intermediaries.
var securityHeaders = [][2]string{
	{"Cache-Control", "no-store"},
	{"Content-Security-Policy", "frame-ancestors 'none'"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
}

// Security applies securityHeaders. Requests under an exempt prefix, such as
// the interactive docs which need framing and scripts, are left alone.
func Security(exempt ...string) func(http.Handler) http.Handler {
	isExempt := func(path string) bool {
		for _, prefix := range exempt {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
		return false
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isExempt(r.URL.Path) {
				h := w.Header()
				for _, kv := range securityHeaders {
					h.Set(kv[0], kv[1])
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
