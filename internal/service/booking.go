package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/soycar/hotel-portal/internal/errors"
	"github.com/soycar/hotel-portal/internal/model"
	"github.com/soycar/hotel-portal/internal/repository"
	"github.com/soycar/hotel-portal/internal/sse"
	"github.com/soycar/hotel-portal/internal/util"
)

const dateLayout = "2006-01-02"

// EventPublisher delivers booking events to a hotel's open dashboards.
type EventPublisher interface {
	Publish(ctx context.Context, hotelID int64, eventType string, payload any) error
}

// BookingService only ever touches bookings owned by the hotel it is given.
type BookingService struct {
	bookingRepo repository.BookingRepository
	events      EventPublisher
}

func NewBookingService(bookingRepo repository.BookingRepository, events EventPublisher) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		events:      events,
	}
}

// List returns one page of the hotel's bookings, latest travel date first,
// together with the total matching the filter.
func (s *BookingService) List(ctx context.Context, hotelID int64, filter model.BookingFilter) ([]model.Booking, int, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, apperrors.ValidationError("status must be one of pending, confirmed, completed, cancelled")
	}

	bookings, err := s.bookingRepo.ListByHotel(ctx, hotelID, filter)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}

	total, err := s.bookingRepo.CountByHotel(ctx, hotelID, filter)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}

	return bookings, total, nil
}

func (s *BookingService) Get(ctx context.Context, hotelID, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookingRepo.FindByIDForHotel(ctx, hotelID, bookingID)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if booking == nil {
		return nil, apperrors.NotFound("Booking")
	}
	return booking, nil
}

// Create files a new pending booking for the hotel.
func (s *BookingService) Create(ctx context.Context, hotelID int64, params model.CreateBookingParams) (*model.Booking, error) {
	if err := util.ValidateStruct(params); err != nil {
		return nil, err
	}

	travelDate, err := time.Parse(dateLayout, params.TravelDate)
	if err != nil {
		return nil, apperrors.InvalidInput("travelDate", "expected YYYY-MM-DD")
	}

	insert := model.InsertBookingParams{
		HotelID:         hotelID,
		Name:            params.Name,
		Email:           params.Email,
		Phone:           params.Phone,
		ServiceType:     params.ServiceType,
		PickupLocation:  params.PickupLocation,
		DropoffLocation: params.DropoffLocation,
		TravelDate:      travelDate,
		TravelTime:      params.TravelTime,
		Passengers:      params.Passengers,
		SpecialRequests: model.OptionalString(params.SpecialRequests),
		Status:          model.BookingStatusPending,
	}
	// Flight numbers only mean something for airport transfers.
	if params.ServiceType.IsAirportTransfer() {
		insert.FlightNumber = model.OptionalString(params.FlightNumber)
	}

	booking, err := s.bookingRepo.Create(ctx, insert)
	if err != nil {
		log.Error().Err(err).Int64("hotelId", hotelID).Msg("failed to create booking")
		return nil, apperrors.Database(err)
	}

	log.Info().Int64("hotelId", hotelID).Int64("bookingId", booking.ID).Msg("booking created")
	s.publish(ctx, hotelID, sse.EventBookingCreated, booking)

	return booking, nil
}

// UpdateStatus allows any status to move to any other. A booking owned by a
// different hotel is reported as not found.
func (s *BookingService) UpdateStatus(ctx context.Context, hotelID, bookingID int64, status model.BookingStatus) (*model.Booking, error) {
	if err := util.ValidateStruct(model.UpdateBookingStatusParams{Status: status}); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.UpdateStatus(ctx, hotelID, bookingID, status)
	if err != nil {
		log.Error().Err(err).Int64("hotelId", hotelID).Int64("bookingId", bookingID).Msg("failed to update booking status")
		return nil, apperrors.Database(err)
	}
	if booking == nil {
		return nil, apperrors.NotFound("Booking")
	}

	log.Info().
		Int64("hotelId", hotelID).
		Int64("bookingId", bookingID).
		Str("status", string(status)).
		Msg("booking status updated")
	s.publish(ctx, hotelID, sse.EventBookingStatusChanged, booking)

	return booking, nil
}

func (s *BookingService) publish(ctx context.Context, hotelID int64, eventType string, booking *model.Booking) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, hotelID, eventType, booking); err != nil {
		log.Warn().Err(err).Int64("hotelId", hotelID).Str("event", eventType).Msg("failed to publish booking event")
	}
}
