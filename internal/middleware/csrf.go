package middleware

import (
	"net/http"

	"github.com/soycar/hotel-portal/internal/audit"
	apperrors "github.com/soycar/hotel-portal/internal/errors"
	"github.com/soycar/hotel-portal/internal/util"
)

const (
	CSRFCookieName = "csrf_token"
	CSRFHeaderName = "X-CSRF-Token"
)

// CSRFMiddleware guards the portal with a double-submit cookie. The dashboard
// script echoes the csrf_token cookie in X-CSRF-Token on every state-changing
// request.
type CSRFMiddleware struct {
	secure bool
}

func NewCSRFMiddleware(isProduction bool) *CSRFMiddleware {
	return &CSRFMiddleware{secure: isProduction}
}

func (m *CSRFMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected, err := m.ensureCookie(w, r)
		if err != nil {
			writeError(w, apperrors.Internal("Failed to generate security token").WithCause(err))
			return
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		reason := ""
		switch got := r.Header.Get(CSRFHeaderName); {
		case got == "":
			reason = "missing"
		case !util.ConstantTimeEqual(expected, got):
			reason = "mismatch"
		}

		if reason != "" {
			audit.LogFromRequest(r, audit.Event{
				Type:    audit.EventCSRFFailure,
				Details: map[string]interface{}{"reason": reason, "path": r.URL.Path},
			})
			msg := "Invalid CSRF token"
			if reason == "missing" {
				msg = "Missing CSRF token"
			}
			writeError(w, apperrors.Forbidden(msg))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ensureCookie returns the browser's token, issuing one on first contact.
func (m *CSRFMiddleware) ensureCookie(w http.ResponseWriter, r *http.Request) (string, error) {
	if cookie, err := r.Cookie(CSRFCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	token, err := util.GenerateToken()
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     PortalPath,
		HttpOnly: false, // read by the dashboard script
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token, nil
}
