package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/soycar/hotel-portal/internal/model"
	redisclient "github.com/soycar/hotel-portal/internal/redis"
)

type RedisStore struct {
	client *redis.Client
	keyer
}

func NewRedisStore(client *redis.Client, secret string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, keyer: keyer{secret: secret, ttl: ttl}}
}

func (s *RedisStore) Get(ctx context.Context, token string) (*model.HotelSession, error) {
	if token == "" {
		return nil, nil
	}

	data, err := s.client.Get(ctx, redisclient.SessionKey(s.hash(token))).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(data)
}

func (s *RedisStore) Set(ctx context.Context, token string, hotel *model.HotelSession) error {
	data, err := encode(hotel)
	if err != nil {
		return err
	}
	// A zero TTL stores the key without expiry.
	return s.client.Set(ctx, redisclient.SessionKey(s.hash(token)), data, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, redisclient.SessionKey(s.hash(token))).Err()
}
