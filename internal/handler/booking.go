package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/soycar/hotel-portal/internal/audit"
	apperrors "github.com/soycar/hotel-portal/internal/errors"
	"github.com/soycar/hotel-portal/internal/model"
)

func (h *PortalHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	hotel, ok := currentHotel(w, r)
	if !ok {
		return
	}

	filter, err := parseBookingFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	bookings, total, err := h.bookings.List(r.Context(), hotel.ID, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	formatted := make([]map[string]any, len(bookings))
	for i, b := range bookings {
		formatted[i] = formatBooking(b)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bookings": formatted,
		"total":    total,
		"limit":    filter.Limit,
		"offset":   filter.Offset,
	})
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// parseBookingFilter reads the dashboard filters. status=all and an empty
// date mean no filter; a missing or out-of-range limit falls back to
// DefaultPageSize.
func parseBookingFilter(r *http.Request) (model.BookingFilter, error) {
	q := r.URL.Query()

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPageSize
	}
	offset, _ := strconv.Atoi(q.Get("offset"))
	if offset < 0 {
		offset = 0
	}
	filter := model.BookingFilter{Limit: limit, Offset: offset}

	if status := q.Get("status"); status != "" && status != "all" {
		filter.Status = model.BookingStatus(status)
	}

	if date := q.Get("date"); date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			return filter, apperrors.InvalidInput("date", "expected YYYY-MM-DD")
		}
		filter.TravelDate = &d
	}

	return filter, nil
}

func (h *PortalHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	hotel, ok := currentHotel(w, r)
	if !ok {
		return
	}

	var req model.CreateBookingParams
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.Create(r.Context(), hotel.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventBookingCreate,
		HotelID: hotel.ID,
		Details: map[string]interface{}{"booking_id": booking.ID},
	})
	writeJSON(w, http.StatusCreated, map[string]any{"booking": formatBooking(*booking)})
}

func (h *PortalHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	hotel, ok := currentHotel(w, r)
	if !ok {
		return
	}

	id, err := bookingID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.Get(r.Context(), hotel.ID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"booking": formatBooking(*booking)})
}

func (h *PortalHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	hotel, ok := currentHotel(w, r)
	if !ok {
		return
	}

	id, err := bookingID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.UpdateBookingStatusParams
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	booking, err := h.bookings.UpdateStatus(r.Context(), hotel.ID, id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:    audit.EventBookingStatusChange,
		HotelID: hotel.ID,
		Details: map[string]interface{}{"booking_id": booking.ID, "status": string(booking.Status)},
	})
	writeJSON(w, http.StatusOK, map[string]any{"booking": formatBooking(*booking)})
}

func (h *PortalHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"serviceTypes": model.ServiceOptions,
		"passengers":   model.PassengerOptions,
		"statuses":     model.BookingStatuses,
	})
}

func bookingID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput("booking id", "must be a positive integer")
	}
	return id, nil
}
