package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/soycar/hotel-portal/internal/database"
	apperrors "github.com/soycar/hotel-portal/internal/errors"
	"github.com/soycar/hotel-portal/internal/model"
	"github.com/soycar/hotel-portal/internal/password"
	"github.com/soycar/hotel-portal/internal/repository"
	"github.com/soycar/hotel-portal/internal/util"
)

type ProfileService struct {
	hotelRepo repository.HotelRepository
	auth      *AuthService
	hasher    *password.Hasher
}

func NewProfileService(hotelRepo repository.HotelRepository, auth *AuthService, hasher *password.Hasher) *ProfileService {
	return &ProfileService{
		hotelRepo: hotelRepo,
		auth:      auth,
		hasher:    hasher,
	}
}

// UpdateProfile saves the hotel's details and refreshes the session stored
// under token so later requests see the new values.
func (s *ProfileService) UpdateProfile(ctx context.Context, token string, hotelID int64, params model.UpdateHotelProfileParams) (*model.HotelSession, error) {
	if err := util.ValidateStruct(params); err != nil {
		return nil, err
	}

	hotel, err := s.hotelRepo.UpdateProfile(ctx, hotelID, params)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("Hotel").WithCause(err)
		}
		log.Error().Err(err).Int64("hotelId", hotelID).Msg("failed to update hotel profile")
		return nil, apperrors.Database(err)
	}
	if hotel == nil {
		return nil, apperrors.NotFound("Hotel")
	}

	sess := hotel.Session()
	if err := s.auth.SetSession(ctx, token, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *ProfileService) ChangePassword(ctx context.Context, hotelID int64, params model.ChangePasswordParams) error {
	if err := util.ValidateStruct(params); err != nil {
		return err
	}

	hotel, err := s.hotelRepo.FindByID(ctx, hotelID)
	if err != nil {
		return apperrors.Database(err)
	}
	if hotel == nil {
		return apperrors.NotFound("Hotel")
	}

	result, err := s.hasher.Verify(params.CurrentPassword, hotel.PasswordHash)
	if err != nil || !result.Match {
		return apperrors.InvalidCredentials("Current password is incorrect").WithCause(err)
	}

	hash, err := s.hasher.Hash(params.NewPassword)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "Failed to hash password", err)
	}

	if err := s.hotelRepo.UpdatePasswordHash(ctx, hotelID, hash); err != nil {
		return apperrors.Database(err)
	}

	log.Info().Int64("hotelId", hotelID).Msg("hotel password changed")
	return nil
}
