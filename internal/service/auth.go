package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/soycar/hotel-portal/internal/audit"
	"github.com/soycar/hotel-portal/internal/database"
	apperrors "github.com/soycar/hotel-portal/internal/errors"
	"github.com/soycar/hotel-portal/internal/model"
	"github.com/soycar/hotel-portal/internal/password"
	"github.com/soycar/hotel-portal/internal/repository"
	"github.com/soycar/hotel-portal/internal/session"
	"github.com/soycar/hotel-portal/internal/util"
)

// AuthService registers hotels, logs them in, and manages the session stored
// under each issued token.
type AuthService struct {
	hotelRepo repository.HotelRepository
	sessions  session.Store
	hasher    *password.Hasher
}

// NewAuthService accepts a nil store; sessions are then never persisted and
// every lookup reports no session.
func NewAuthService(hotelRepo repository.HotelRepository, sessions session.Store, hasher *password.Hasher) *AuthService {
	return &AuthService{
		hotelRepo: hotelRepo,
		sessions:  sessions,
		hasher:    hasher,
	}
}

// Register creates the hotel and logs it in. The returned token identifies
// the new session.
func (s *AuthService) Register(ctx context.Context, params model.RegisterHotelParams) (*model.HotelSession, string, error) {
	if err := util.ValidateStruct(params); err != nil {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrCodeInternal, "Failed to hash password", err)
	}

	hotel, err := s.hotelRepo.Create(ctx, model.CreateHotelParams{
		Name:          params.HotelName,
		Email:         params.Email,
		PasswordHash:  hash,
		Phone:         model.OptionalString(params.Phone),
		Address:       model.OptionalString(params.Address),
		City:          model.OptionalString(params.City),
		ContactPerson: model.OptionalString(params.ContactPerson),
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, "", apperrors.AlreadyExists("Hotel").WithCause(err)
		}
		log.Error().Err(err).Str("email", params.Email).Msg("failed to create hotel")
		return nil, "", apperrors.Database(err)
	}

	log.Info().Int64("hotelId", hotel.ID).Msg("hotel registered")

	return s.startSession(ctx, hotel)
}

// Login checks the password against the stored hash. Legacy digests are
// upgraded to bcrypt on success.
func (s *AuthService) Login(ctx context.Context, params model.LoginParams) (*model.HotelSession, string, error) {
	if err := util.ValidateStruct(params); err != nil {
		return nil, "", err
	}

	hotel, err := s.hotelRepo.FindByEmail(ctx, params.Email)
	if err != nil {
		log.Error().Err(err).Msg("failed to look up hotel")
		return nil, "", apperrors.NotFound("Hotel").WithCause(err)
	}
	if hotel == nil {
		return nil, "", apperrors.NotFound("Hotel")
	}

	result, err := s.hasher.Verify(params.Password, hotel.PasswordHash)
	if err != nil {
		log.Error().Err(err).Int64("hotelId", hotel.ID).Msg("stored password hash is unreadable")
		return nil, "", apperrors.InvalidCredentials("Invalid password").WithCause(err)
	}
	if !result.Match {
		return nil, "", apperrors.InvalidCredentials("Invalid password")
	}

	if result.NeedsRehash {
		s.rehash(ctx, hotel.ID, params.Password)
	}

	return s.startSession(ctx, hotel)
}

func (s *AuthService) rehash(ctx context.Context, hotelID int64, plain string) {
	hash, err := s.hasher.Hash(plain)
	if err == nil {
		err = s.hotelRepo.UpdatePasswordHash(ctx, hotelID, hash)
	}
	if err != nil {
		log.Warn().Err(err).Int64("hotelId", hotelID).Msg("failed to upgrade password hash")
		return
	}
	audit.Log(ctx, audit.Event{Type: audit.EventPasswordRehash, HotelID: hotelID})
}

func (s *AuthService) startSession(ctx context.Context, hotel *model.Hotel) (*model.HotelSession, string, error) {
	token, err := util.GenerateToken()
	if err != nil {
		return nil, "", apperrors.Wrap(apperrors.ErrCodeInternal, "Failed to generate session token", err)
	}

	sess := hotel.Session()
	if err := s.SetSession(ctx, token, sess); err != nil {
		return nil, "", err
	}
	return sess, token, nil
}

func (s *AuthService) GetSession(ctx context.Context, token string) (*model.HotelSession, error) {
	if s.sessions == nil || token == "" {
		return nil, nil
	}
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return sess, nil
}

func (s *AuthService) SetSession(ctx context.Context, token string, sess *model.HotelSession) error {
	if s.sessions == nil {
		return nil
	}
	if err := s.sessions.Set(ctx, token, sess); err != nil {
		log.Error().Err(err).Msg("failed to store session")
		return apperrors.Database(err)
	}
	return nil
}

func (s *AuthService) ClearSession(ctx context.Context, token string) error {
	if s.sessions == nil || token == "" {
		return nil
	}
	if err := s.sessions.Clear(ctx, token); err != nil {
		return apperrors.Database(err)
	}
	return nil
}

func (s *AuthService) IsLoggedIn(ctx context.Context, token string) bool {
	sess, err := s.GetSession(ctx, token)
	return err == nil && sess != nil
}
