package audit

import (
	"context"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventRegister            EventType = "hotel_register"
	EventLoginSuccess        EventType = "login_success"
	EventLoginFailure        EventType = "login_failure"
	EventLogout              EventType = "logout"
	EventPasswordRehash      EventType = "password_rehash"
	EventProfileUpdate       EventType = "profile_update"
	EventPasswordChange      EventType = "password_change"
	EventBookingCreate       EventType = "booking_create"
	EventBookingStatusChange EventType = "booking_status_change"
	EventRateLimitExceed     EventType = "rate_limit_exceeded"
	EventCSRFFailure         EventType = "csrf_failure"
	EventAuthFailure         EventType = "auth_failure"
)

type Event struct {
	Type      EventType
	HotelID   int64
	Email     string
	IP        string
	UserAgent string
	Details   map[string]interface{}
}

// warnTypes are logged at warn level so failed access stands out.
var warnTypes = map[EventType]bool{
	EventLoginFailure:    true,
	EventRateLimitExceed: true,
	EventCSRFFailure:     true,
	EventAuthFailure:     true,
}

// Log writes one structured audit line. Empty fields are omitted.
func Log(ctx context.Context, event Event) {
	e := log.Info()
	if warnTypes[event.Type] {
		e = log.Warn()
	}

	e = e.Str("audit", "security").Str("event_type", string(event.Type))
	if event.HotelID != 0 {
		e = e.Int64("hotel_id", event.HotelID)
	}
	for key, value := range map[string]string{
		"email":      event.Email,
		"ip":         event.IP,
		"user_agent": event.UserAgent,
		"request_id": middleware.GetReqID(ctx),
	} {
		if value != "" {
			e = e.Str(key, value)
		}
	}
	if len(event.Details) > 0 {
		e = e.Fields(event.Details)
	}
	e.Msg("security audit event")
}

func LogFromRequest(r *http.Request, event Event) {
	event.IP = ClientIP(r)
	event.UserAgent = r.UserAgent()
	Log(r.Context(), event)
}

// ClientIP relies on chi's RealIP middleware having already rewritten
// RemoteAddr from the forwarding headers.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
