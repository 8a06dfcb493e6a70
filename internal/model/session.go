package model

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// StoredSession is the postgres row backing a hotel session token.
type StoredSession struct {
	ID        int64          `db:"id" json:"id"`
	TokenHash string         `db:"token_hash" json:"-"`
	HotelID   int64          `db:"hotel_id" json:"hotelId"`
	Data      types.JSONText `db:"data" json:"data"`
	ExpiresAt *time.Time     `db:"expires_at" json:"expiresAt,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}

type UpsertStoredSessionParams struct {
	TokenHash string
	HotelID   int64
	Data      types.JSONText
	ExpiresAt *time.Time
}
