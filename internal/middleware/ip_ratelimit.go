package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/soycar/hotel-portal/internal/audit"
	apperrors "github.com/soycar/hotel-portal/internal/errors"
)

type LoginLimiter interface {
	Allow(ctx context.Context, ip string) (allowed bool, retryAfter time.Duration)
}

// IPRateLimitMiddleware throttles login attempts per client IP.
type IPRateLimitMiddleware struct {
	limiter LoginLimiter
}

func NewIPRateLimitMiddleware(limiter LoginLimiter) *IPRateLimitMiddleware {
	return &IPRateLimitMiddleware{limiter: limiter}
}

func (m *IPRateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, retryAfter := m.limiter.Allow(r.Context(), audit.ClientIP(r))
		if allowed {
			next.ServeHTTP(w, r)
			return
		}

		audit.LogFromRequest(r, audit.Event{
			Type:    audit.EventRateLimitExceed,
			Details: map[string]interface{}{"path": r.URL.Path},
		})

		seconds := int(math.Ceil(retryAfter.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		writeError(w, apperrors.New(apperrors.ErrCodeRateLimitExceeded, "Too many login attempts. Please try again later."))
	})
}
