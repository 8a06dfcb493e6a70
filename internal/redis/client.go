package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Client is shared by the session store, the login limiter and the booking
// event broker.
type Client struct {
	*redis.Client
}

func NewClient(ctx context.Context, redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	c := &Client{redis.NewClient(opts)}
	if err := c.Healthy(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Healthy pings the server, bounded by a short timeout.
func (c *Client) Healthy(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// BookingChannel is the pub/sub channel carrying one hotel's booking events.
func BookingChannel(hotelID int64) string {
	return "bookings:" + strconv.FormatInt(hotelID, 10)
}

// SessionKey holds one hotel session, keyed by the token's HMAC.
func SessionKey(tokenHash string) string {
	return "hotel_session:" + tokenHash
}
