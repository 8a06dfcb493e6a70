package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/soycar/hotel-portal/internal/database"
	"github.com/soycar/hotel-portal/internal/model"
)

// BookingRepository reads and writes bookings. Every method takes the owning
// hotel id and never returns or modifies another hotel's rows.
type BookingRepository interface {
	ListByHotel(ctx context.Context, hotelID int64, filter model.BookingFilter) ([]model.Booking, error)
	CountByHotel(ctx context.Context, hotelID int64, filter model.BookingFilter) (int, error)
	FindByIDForHotel(ctx context.Context, hotelID, id int64) (*model.Booking, error)
	Create(ctx context.Context, params model.InsertBookingParams) (*model.Booking, error)
	UpdateStatus(ctx context.Context, hotelID, id int64, status model.BookingStatus) (*model.Booking, error)
}

type bookingRepo struct {
	db database.DBTX
}

func NewBookingRepository(db *sqlx.DB) BookingRepository {
	return &bookingRepo{db: db}
}

// bookingConditions always scopes to hotelID before any optional filter.
func bookingConditions(hotelID int64, filter model.BookingFilter) *conditions {
	c := &conditions{}
	c.add("hotel_id = $%d", hotelID)
	if filter.Status != "" {
		c.add("status = $%d", filter.Status)
	}
	if filter.TravelDate != nil {
		c.add("travel_date = $%d", filter.TravelDate.Format("2006-01-02"))
	}
	return c
}

func (r *bookingRepo) ListByHotel(ctx context.Context, hotelID int64, filter model.BookingFilter) ([]model.Booking, error) {
	c := bookingConditions(hotelID, filter)
	query := `SELECT * FROM bookings WHERE ` + c.String() + ` ORDER BY travel_date DESC, id DESC`

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", c.next(filter.Limit))
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", c.next(filter.Offset))
	}

	bookings := []model.Booking{}
	if err := r.db.SelectContext(ctx, &bookings, query, c.args...); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepo) CountByHotel(ctx context.Context, hotelID int64, filter model.BookingFilter) (int, error) {
	c := bookingConditions(hotelID, filter)
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings WHERE `+c.String(), c.args...)
	return count, err
}

func (r *bookingRepo) FindByIDForHotel(ctx context.Context, hotelID, id int64) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, `
		SELECT * FROM bookings WHERE id = $1 AND hotel_id = $2
	`, id, hotelID)
	return HandleNotFound(&booking, err)
}

func (r *bookingRepo) Create(ctx context.Context, params model.InsertBookingParams) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, `
		INSERT INTO bookings (
			hotel_id, name, email, phone, service_type, pickup_location, dropoff_location,
			travel_date, travel_time, passengers, flight_number, special_requests, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING *
	`, params.HotelID, params.Name, params.Email, params.Phone, params.ServiceType,
		params.PickupLocation, params.DropoffLocation, params.TravelDate.Format("2006-01-02"),
		params.TravelTime, params.Passengers, params.FlightNumber, params.SpecialRequests, params.Status)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateStatus returns nil without error when no booking with that id belongs
// to the hotel.
func (r *bookingRepo) UpdateStatus(ctx context.Context, hotelID, id int64, status model.BookingStatus) (*model.Booking, error) {
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, `
		UPDATE bookings SET status = $3, updated_at = $4
		WHERE id = $1 AND hotel_id = $2
		RETURNING *
	`, id, hotelID, status, time.Now())
	return HandleNotFound(&booking, err)
}
