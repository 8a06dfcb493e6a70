package middleware

import (
	"net/http"
	"strings"
)

// PortalCSP locks the partner dashboard down to its own origin. Booking
// events arrive over same-origin SSE, so connect-src stays 'self'.
var PortalCSP = []string{
	"default-src 'self'",
	"script-src 'self'",
	"style-src 'self' 'unsafe-inline'",
	"img-src 'self' data:",
	"connect-src 'self'",
	"frame-ancestors 'none'",
	"base-uri 'self'",
	"form-action 'self'",
}

// SiteCSP serves the public marketing pages, which embed remote tour photos.
var SiteCSP = []string{
	"default-src 'self'",
	"script-src 'self' 'unsafe-inline'",
	"style-src 'self' 'unsafe-inline'",
	"img-src 'self' data: https:",
	"font-src 'self' data:",
	"frame-ancestors 'none'",
	"base-uri 'self'",
}

type SecurityHeadersMiddleware struct {
	isProduction bool
	csp          string
}

func NewSecurityHeadersMiddleware(isProduction bool, directives []string) *SecurityHeadersMiddleware {
	return &SecurityHeadersMiddleware{
		isProduction: isProduction,
		csp:          strings.Join(directives, "; "),
	}
}

func (m *SecurityHeadersMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if m.csp != "" {
			h.Set("Content-Security-Policy", m.csp)
		}
		if m.isProduction {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}
