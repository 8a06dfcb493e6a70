package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/soycar/hotel-portal/internal/audit"
	apperrors "github.com/soycar/hotel-portal/internal/errors"
	"github.com/soycar/hotel-portal/internal/model"
)

const (
	HotelSessionCookie = "hotel_session"
	PortalPath         = "/portal"
)

type contextKey string

const (
	HotelSessionContextKey contextKey = "hotelSession"
	SessionTokenContextKey contextKey = "sessionToken"
)

// GetHotelSession returns the hotel authenticated for this request, or nil.
func GetHotelSession(ctx context.Context) *model.HotelSession {
	if s, ok := ctx.Value(HotelSessionContextKey).(*model.HotelSession); ok {
		return s
	}
	return nil
}

// GetSessionToken returns the raw token from the session cookie.
func GetSessionToken(ctx context.Context) string {
	if token, ok := ctx.Value(SessionTokenContextKey).(string); ok {
		return token
	}
	return ""
}

// WithHotelSession attaches an authenticated hotel and its token to ctx.
func WithHotelSession(ctx context.Context, token string, s *model.HotelSession) context.Context {
	ctx = context.WithValue(ctx, SessionTokenContextKey, token)
	return context.WithValue(ctx, HotelSessionContextKey, s)
}

type SessionResolver interface {
	GetSession(ctx context.Context, token string) (*model.HotelSession, error)
}

type HotelSessionMiddleware struct {
	sessions SessionResolver
}

func NewHotelSessionMiddleware(sessions SessionResolver) *HotelSessionMiddleware {
	return &HotelSessionMiddleware{sessions: sessions}
}

// Load attaches the session when the cookie names a live one and passes
// anonymous requests through untouched.
func (m *HotelSessionMiddleware) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(HotelSessionCookie)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := m.sessions.GetSession(r.Context(), cookie.Value)
		if err != nil {
			log.Error().Err(err).Msg("hotel session middleware: store error")
			writeError(w, apperrors.Internal("Session validation failed"))
			return
		}
		if sess == nil {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithHotelSession(r.Context(), cookie.Value, sess)))
	})
}

// Require rejects requests that Load did not authenticate.
func (m *HotelSessionMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetHotelSession(r.Context()) == nil {
			audit.LogFromRequest(r, audit.Event{
				Type:    audit.EventAuthFailure,
				Details: map[string]interface{}{"path": r.URL.Path},
			})
			writeError(w, apperrors.Unauthorized("Not authenticated"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SetSessionCookie stores token in an HttpOnly cookie scoped to the portal.
// A zero maxAge makes it a browser-session cookie.
func SetSessionCookie(w http.ResponseWriter, token string, maxAge time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     HotelSessionCookie,
		Value:    token,
		Path:     PortalPath,
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     HotelSessionCookie,
		Value:    "",
		Path:     PortalPath,
		MaxAge:   -1,
		HttpOnly: true,
	})
}
