package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/soycar/hotel-portal/internal/errors"
	"github.com/soycar/hotel-portal/internal/model"
	"github.com/soycar/hotel-portal/internal/sse"
)

func validBookingParams() model.CreateBookingParams {
	return model.CreateBookingParams{
		Name:            "Juan Dela Cruz",
		Email:           "juan@example.com",
		Phone:           "+63 917 000 0000",
		ServiceType:     "airport-pps-elnido",
		PickupLocation:  "Puerto Princesa Airport",
		DropoffLocation: "Hotel A, El Nido",
		TravelDate:      "2026-12-01",
		TravelTime:      "14:30",
		Passengers:      "3",
		FlightNumber:    "PR2781",
	}
}

func TestBookingService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("queries only the session hotel", func(t *testing.T) {
		repo := new(mockBookingRepo)
		svc := NewBookingService(repo, nil)
		filter := model.BookingFilter{Limit: 20}
		own := []model.Booking{{ID: 1, HotelID: 1}, {ID: 3, HotelID: 1}}

		repo.On("ListByHotel", ctx, int64(1), filter).Return(own, nil)
		repo.On("CountByHotel", ctx, int64(1), filter).Return(2, nil)

		bookings, total, err := svc.List(ctx, 1, filter)
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		for _, b := range bookings {
			assert.NotEqual(t, int64(2), b.HotelID)
		}
		repo.AssertNotCalled(t, "ListByHotel", ctx, int64(2), mock.Anything)
	})

	t.Run("rejects unknown status filter", func(t *testing.T) {
		svc := NewBookingService(new(mockBookingRepo), nil)
		_, _, err := svc.List(ctx, 1, model.BookingFilter{Status: "archived"})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
	})

	t.Run("store failure", func(t *testing.T) {
		repo := new(mockBookingRepo)
		svc := NewBookingService(repo, nil)
		repo.On("ListByHotel", ctx, int64(1), mock.Anything).Return(nil, errors.New("boom"))

		_, _, err := svc.List(ctx, 1, model.BookingFilter{})
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeDatabase))
	})
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending booking owned by hotel and publishes", func(t *testing.T) {
		repo := new(mockBookingRepo)
		events := new(mockPublisher)
		svc := NewBookingService(repo, events)

		created := &model.Booking{ID: 11, HotelID: 4, Status: model.BookingStatusPending}
		repo.On("Create", ctx, mock.MatchedBy(func(p model.InsertBookingParams) bool {
			return p.HotelID == 4 &&
				p.Status == model.BookingStatusPending &&
				p.TravelDate.Equal(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)) &&
				p.FlightNumber != nil && *p.FlightNumber == "PR2781" &&
				p.SpecialRequests == nil
		})).Return(created, nil)
		events.On("Publish", ctx, int64(4), sse.EventBookingCreated, created).Return(nil)

		booking, err := svc.Create(ctx, 4, validBookingParams())
		require.NoError(t, err)
		assert.Equal(t, created, booking)
		repo.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("drops flight number for non airport services", func(t *testing.T) {
		repo := new(mockBookingRepo)
		svc := NewBookingService(repo, nil)

		params := validBookingParams()
		params.ServiceType = "tour-a"
		repo.On("Create", ctx, mock.MatchedBy(func(p model.InsertBookingParams) bool {
			return p.FlightNumber == nil
		})).Return(&model.Booking{ID: 12}, nil)

		_, err := svc.Create(ctx, 4, params)
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("publish failure does not fail create", func(t *testing.T) {
		repo := new(mockBookingRepo)
		events := new(mockPublisher)
		svc := NewBookingService(repo, events)

		repo.On("Create", ctx, mock.Anything).Return(&model.Booking{ID: 13}, nil)
		events.On("Publish", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

		_, err := svc.Create(ctx, 4, validBookingParams())
		assert.NoError(t, err)
	})

	invalid := []struct {
		name   string
		modify func(p *model.CreateBookingParams)
	}{
		{"unknown service", func(p *model.CreateBookingParams) { p.ServiceType = "helicopter" }},
		{"bad date", func(p *model.CreateBookingParams) { p.TravelDate = "01/12/2026" }},
		{"bad time", func(p *model.CreateBookingParams) { p.TravelTime = "2pm" }},
		{"bad passengers", func(p *model.CreateBookingParams) { p.Passengers = "12" }},
		{"missing name", func(p *model.CreateBookingParams) { p.Name = "" }},
		{"bad email", func(p *model.CreateBookingParams) { p.Email = "juan" }},
	}
	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockBookingRepo)
			svc := NewBookingService(repo, nil)
			params := validBookingParams()
			tc.modify(&params)

			_, err := svc.Create(ctx, 4, params)
			assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation), "got %v", err)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("any status may move to any other", func(t *testing.T) {
		for _, status := range model.BookingStatuses {
			repo := new(mockBookingRepo)
			svc := NewBookingService(repo, nil)
			repo.On("UpdateStatus", ctx, int64(1), int64(5), status).
				Return(&model.Booking{ID: 5, HotelID: 1, Status: status}, nil)

			booking, err := svc.UpdateStatus(ctx, 1, 5, status)
			require.NoError(t, err)
			assert.Equal(t, status, booking.Status)
		}
	})

	t.Run("invalid status", func(t *testing.T) {
		repo := new(mockBookingRepo)
		svc := NewBookingService(repo, nil)

		_, err := svc.UpdateStatus(ctx, 1, 5, "archived")
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("another hotel's booking is not found", func(t *testing.T) {
		repo := new(mockBookingRepo)
		events := new(mockPublisher)
		svc := NewBookingService(repo, events)
		repo.On("UpdateStatus", ctx, int64(1), int64(99), model.BookingStatusCancelled).Return(nil, nil)

		_, err := svc.UpdateStatus(ctx, 1, 99, model.BookingStatusCancelled)
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
		assert.Contains(t, err.Error(), "Booking not found")
		events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("publishes status change", func(t *testing.T) {
		repo := new(mockBookingRepo)
		events := new(mockPublisher)
		svc := NewBookingService(repo, events)
		updated := &model.Booking{ID: 5, HotelID: 1, Status: model.BookingStatusConfirmed}
		repo.On("UpdateStatus", ctx, int64(1), int64(5), model.BookingStatusConfirmed).Return(updated, nil)
		events.On("Publish", ctx, int64(1), sse.EventBookingStatusChanged, updated).Return(nil)

		_, err := svc.UpdateStatus(ctx, 1, 5, model.BookingStatusConfirmed)
		require.NoError(t, err)
		events.AssertExpectations(t)
	})
}

func TestBookingService_Get(t *testing.T) {
	ctx := context.Background()
	repo := new(mockBookingRepo)
	svc := NewBookingService(repo, nil)

	repo.On("FindByIDForHotel", ctx, int64(1), int64(5)).Return(&model.Booking{ID: 5, HotelID: 1}, nil)
	repo.On("FindByIDForHotel", ctx, int64(2), int64(5)).Return(nil, nil)

	booking, err := svc.Get(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), booking.ID)

	_, err = svc.Get(ctx, 2, 5)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotFound))
}
