// Package session persists the authenticated hotel behind an opaque token.
//
// Tokens are never stored. Both backends key the record by HMAC(secret, token),
// so a leaked store does not yield usable cookies. A record has no expiry
// unless a positive TTL is configured.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/soycar/hotel-portal/internal/model"
	"github.com/soycar/hotel-portal/internal/util"
)

// Store holds at most one HotelSession per token.
type Store interface {
	// Get returns nil without error when the token is empty, unknown,
	// cleared, or expired.
	Get(ctx context.Context, token string) (*model.HotelSession, error)
	// Set replaces whatever was stored under token.
	Set(ctx context.Context, token string, s *model.HotelSession) error
	// Clear is a no-op for unknown tokens.
	Clear(ctx context.Context, token string) error
}

type keyer struct {
	secret string
	ttl    time.Duration
}

func (k keyer) hash(token string) string {
	return util.HashToken(k.secret, token)
}

func (k keyer) expiresAt() *time.Time {
	if k.ttl <= 0 {
		return nil
	}
	t := time.Now().Add(k.ttl)
	return &t
}

func encode(s *model.HotelSession) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("session is nil")
	}
	return json.Marshal(s)
}

func decode(data []byte) (*model.HotelSession, error) {
	var s model.HotelSession
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &s, nil
}
