package model

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingStatuses is the complete set of values a booking status may take.
// Any status may move to any other.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusCompleted,
	BookingStatusCancelled,
}

func (s BookingStatus) Valid() bool {
	for _, v := range BookingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type ServiceType string

type ServiceOption struct {
	Value ServiceType `json:"value"`
	Label string      `json:"label"`
}

var ServiceOptions = []ServiceOption{
	{"airport-pps-elnido", "Airport Transfer: PPS → El Nido"},
	{"airport-elnido-pps", "Airport Transfer: El Nido → PPS"},
	{"airport-roundtrip", "Airport Transfer: Round Trip"},
	{"tour-a", "Inland Tour A (Underground River)"},
	{"tour-b", "Inland Tour B (Honda Bay)"},
	{"tour-c", "Inland Tour C (City Tour)"},
	{"tour-d", "Inland Tour D (Firefly Watching)"},
	{"rental-car", "Vehicle Rental: Car (Self-drive)"},
	{"rental-van", "Vehicle Rental: Van (With driver)"},
	{"custom", "Custom Trip / Other"},
}

func (t ServiceType) Valid() bool {
	for _, o := range ServiceOptions {
		if t == o.Value {
			return true
		}
	}
	return false
}

func (t ServiceType) IsAirportTransfer() bool {
	return len(t) > len("airport") && t[:len("airport")] == "airport"
}

var PassengerOptions = []string{"1", "2", "3", "4", "5", "6", "7+"}

type Booking struct {
	ID              int64         `db:"id" json:"id"`
	HotelID         int64         `db:"hotel_id" json:"hotelId"`
	Name            string        `db:"name" json:"name"`
	Email           string        `db:"email" json:"email"`
	Phone           string        `db:"phone" json:"phone"`
	ServiceType     ServiceType   `db:"service_type" json:"serviceType"`
	PickupLocation  string        `db:"pickup_location" json:"pickupLocation"`
	DropoffLocation string        `db:"dropoff_location" json:"dropoffLocation"`
	TravelDate      time.Time     `db:"travel_date" json:"travelDate"`
	TravelTime      string        `db:"travel_time" json:"travelTime"`
	Passengers      string        `db:"passengers" json:"passengers"`
	FlightNumber    *string       `db:"flight_number" json:"flightNumber,omitempty"`
	SpecialRequests *string       `db:"special_requests" json:"specialRequests,omitempty"`
	Status          BookingStatus `db:"status" json:"status"`
	CreatedAt       time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updatedAt"`
}

// CreateBookingParams is the guest transport request a hotel submits.
// HotelID and Status are never taken from the request.
type CreateBookingParams struct {
	Name            string      `json:"name" validate:"required,max=200"`
	Email           string      `json:"email" validate:"required,email,max=255"`
	Phone           string      `json:"phone" validate:"required,max=50"`
	ServiceType     ServiceType `json:"serviceType" validate:"required,service_type"`
	PickupLocation  string      `json:"pickupLocation" validate:"required,max=300"`
	DropoffLocation string      `json:"dropoffLocation" validate:"required,max=300"`
	TravelDate      string      `json:"travelDate" validate:"required,datetime=2006-01-02"`
	TravelTime      string      `json:"travelTime" validate:"required,datetime=15:04"`
	Passengers      string      `json:"passengers" validate:"required,oneof=1 2 3 4 5 6 7+"`
	FlightNumber    string      `json:"flightNumber" validate:"omitempty,max=20"`
	SpecialRequests string      `json:"specialRequests" validate:"omitempty,max=2000"`
}

type InsertBookingParams struct {
	HotelID         int64
	Name            string
	Email           string
	Phone           string
	ServiceType     ServiceType
	PickupLocation  string
	DropoffLocation string
	TravelDate      time.Time
	TravelTime      string
	Passengers      string
	FlightNumber    *string
	SpecialRequests *string
	Status          BookingStatus
}

type BookingFilter struct {
	Status     BookingStatus
	TravelDate *time.Time
	Limit      int
	Offset     int
}

type UpdateBookingStatusParams struct {
	Status BookingStatus `json:"status" validate:"required,booking_status"`
}
