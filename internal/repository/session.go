package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/soycar/hotel-portal/internal/database"
	"github.com/soycar/hotel-portal/internal/model"
)

type SessionRepository interface {
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.StoredSession, error)
	Upsert(ctx context.Context, params model.UpsertStoredSessionParams) (*model.StoredSession, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type sessionRepo struct {
	db database.DBTX
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.StoredSession, error) {
	var session model.StoredSession
	err := r.db.GetContext(ctx, &session, `
		SELECT * FROM hotel_sessions
		WHERE token_hash = $1
		AND (expires_at IS NULL OR expires_at > NOW())
	`, tokenHash)
	return HandleNotFound(&session, err)
}

func (r *sessionRepo) Upsert(ctx context.Context, params model.UpsertStoredSessionParams) (*model.StoredSession, error) {
	var session model.StoredSession
	err := r.db.GetContext(ctx, &session, `
		INSERT INTO hotel_sessions (token_hash, hotel_id, data, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token_hash) DO UPDATE SET
			hotel_id = EXCLUDED.hotel_id,
			data = EXCLUDED.data,
			expires_at = EXCLUDED.expires_at,
			updated_at = $5
		RETURNING *
	`, params.TokenHash, params.HotelID, params.Data, params.ExpiresAt, time.Now())
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM hotel_sessions WHERE token_hash = $1`, tokenHash)
	return err
}

func (r *sessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx, `
		DELETE FROM hotel_sessions
		WHERE expires_at IS NOT NULL AND expires_at < NOW()
	`))
}
