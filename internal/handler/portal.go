package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/soycar/hotel-portal/internal/model"
)

type Authenticator interface {
	Register(ctx context.Context, params model.RegisterHotelParams) (*model.HotelSession, string, error)
	Login(ctx context.Context, params model.LoginParams) (*model.HotelSession, string, error)
	ClearSession(ctx context.Context, token string) error
}

type ProfileManager interface {
	UpdateProfile(ctx context.Context, token string, hotelID int64, params model.UpdateHotelProfileParams) (*model.HotelSession, error)
	ChangePassword(ctx context.Context, hotelID int64, params model.ChangePasswordParams) error
}

type BookingManager interface {
	List(ctx context.Context, hotelID int64, filter model.BookingFilter) ([]model.Booking, int, error)
	Get(ctx context.Context, hotelID, bookingID int64) (*model.Booking, error)
	Create(ctx context.Context, hotelID int64, params model.CreateBookingParams) (*model.Booking, error)
	UpdateStatus(ctx context.Context, hotelID, bookingID int64, status model.BookingStatus) (*model.Booking, error)
}

type PortalOptions struct {
	SessionTTL     time.Duration
	IsProduction   bool
	RequireSession func(http.Handler) http.Handler
	LoginLimit     func(http.Handler) http.Handler
}

// PortalHandler serves the hotel partner API under /portal/api.
type PortalHandler struct {
	auth     Authenticator
	profiles ProfileManager
	bookings BookingManager
	opts     PortalOptions
}

func NewPortalHandler(auth Authenticator, profiles ProfileManager, bookings BookingManager, opts PortalOptions) *PortalHandler {
	return &PortalHandler{
		auth:     auth,
		profiles: profiles,
		bookings: bookings,
		opts:     opts,
	}
}

func (h *PortalHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/api/register", h.Register)
	r.With(optional(h.opts.LoginLimit)).Post("/api/login", h.Login)
	r.Post("/api/logout", h.Logout)
	r.Get("/api/me", h.Me)
	r.Get("/api/catalog", h.Catalog)

	r.Group(func(r chi.Router) {
		r.Use(optional(h.opts.RequireSession))

		r.Patch("/api/profile", h.UpdateProfile)
		r.Post("/api/password", h.ChangePassword)

		r.Get("/api/bookings", h.ListBookings)
		r.Post("/api/bookings", h.CreateBooking)
		r.Get("/api/bookings/{id}", h.GetBooking)
		r.Patch("/api/bookings/{id}/status", h.UpdateBookingStatus)
	})

	return r
}

func optional(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	if mw == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return mw
}
