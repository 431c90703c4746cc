package middleware

import (
	"net/http"
	"strings"
)

type SecurityHeadersMiddleware struct {
	isProduction bool
	csp          string
}

// NewSecurityHeadersMiddleware allows the dashboard bundle to call apiOrigin
// in addition to its own origin.
func NewSecurityHeadersMiddleware(isProduction bool, apiOrigin string) *SecurityHeadersMiddleware {
	connect := []string{"'self'"}
	if apiOrigin != "" {
		connect = append(connect, apiOrigin)
	}

	csp := "default-src 'self'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data: https:; " +
		"font-src 'self'; " +
		"connect-src " + strings.Join(connect, " ") + "; " +
		"frame-ancestors 'none'; " +
		"base-uri 'self'; " +
		"form-action 'self'"

	return &SecurityHeadersMiddleware{isProduction: isProduction, csp: csp}
}

func (m *SecurityHeadersMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", m.csp)

		if m.isProduction {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
