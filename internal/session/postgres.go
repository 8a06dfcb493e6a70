package session

import (
	"context"
	"time"

	"github.com/soycar/hotel-portal/internal/model"
	"github.com/soycar/hotel-portal/internal/repository"
)

type PostgresStore struct {
	repo repository.SessionRepository
	keyer
}

func NewPostgresStore(repo repository.SessionRepository, secret string, ttl time.Duration) *PostgresStore {
	return &PostgresStore{repo: repo, keyer: keyer{secret: secret, ttl: ttl}}
}

func (s *PostgresStore) Get(ctx context.Context, token string) (*model.HotelSession, error) {
	if token == "" {
		return nil, nil
	}

	stored, err := s.repo.FindByTokenHash(ctx, s.hash(token))
	if err != nil || stored == nil {
		return nil, err
	}
	return decode(stored.Data)
}

func (s *PostgresStore) Set(ctx context.Context, token string, hotel *model.HotelSession) error {
	data, err := encode(hotel)
	if err != nil {
		return err
	}

	_, err = s.repo.Upsert(ctx, model.UpsertStoredSessionParams{
		TokenHash: s.hash(token),
		HotelID:   hotel.ID,
		Data:      data,
		ExpiresAt: s.expiresAt(),
	})
	return err
}

func (s *PostgresStore) Clear(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.DeleteByTokenHash(ctx, s.hash(token))
}
