package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	apperrors "github.com/soycar/hotel-portal/internal/errors"
	"github.com/soycar/hotel-portal/internal/httputil"
	"github.com/soycar/hotel-portal/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF):
		return apperrors.MissingRequired("request body")
	case errors.As(err, &tooLarge):
		return apperrors.PayloadTooLarge()
	default:
		return apperrors.InvalidInput("request body", "malformed JSON").WithCause(err)
	}
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatBooking(b model.Booking) map[string]any {
	return map[string]any{
		"id":              b.ID,
		"hotelId":         b.HotelID,
		"name":            b.Name,
		"email":           b.Email,
		"phone":           b.Phone,
		"serviceType":     b.ServiceType,
		"pickupLocation":  b.PickupLocation,
		"dropoffLocation": b.DropoffLocation,
		"travelDate":      b.TravelDate.Format("2006-01-02"),
		"travelTime":      b.TravelTime,
		"passengers":      b.Passengers,
		"flightNumber":    b.FlightNumber,
		"specialRequests": b.SpecialRequests,
		"status":          b.Status,
		"createdAt":       formatTime(b.CreatedAt),
		"updatedAt":       formatTime(b.UpdatedAt),
	}
}
