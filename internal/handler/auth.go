package handler

import (
	"net/http"

	"github.com/soycar/hotel-portal/internal/audit"
	apperrors "github.com/soycar/hotel-portal/internal/errors"
	"github.com/soycar/hotel-portal/internal/middleware"
	"github.com/soycar/hotel-portal/internal/model"
)

func (h *PortalHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterHotelParams
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	hotel, token, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventRegister, HotelID: hotel.ID, Email: hotel.Email})

	middleware.SetSessionCookie(w, token, h.opts.SessionTTL, h.opts.IsProduction)
	writeJSON(w, http.StatusCreated, map[string]any{"hotel": hotel})
}

func (h *PortalHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginParams
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	hotel, token, err := h.auth.Login(r.Context(), req)
	if err != nil {
		audit.LogFromRequest(r, audit.Event{
			Type:    audit.EventLoginFailure,
			Email:   req.Email,
			Details: map[string]interface{}{"reason": string(apperrors.GetCode(err))},
		})
		writeError(w, err)
		return
	}

	// Replace any session this browser already held.
	if old := sessionCookie(r); old != "" && old != token {
		_ = h.auth.ClearSession(r.Context(), old)
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventLoginSuccess, HotelID: hotel.ID, Email: hotel.Email})

	middleware.SetSessionCookie(w, token, h.opts.SessionTTL, h.opts.IsProduction)
	writeJSON(w, http.StatusOK, map[string]any{"hotel": hotel})
}

func (h *PortalHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionCookie(r); token != "" {
		if err := h.auth.ClearSession(r.Context(), token); err != nil {
			writeError(w, err)
			return
		}
		event := audit.Event{Type: audit.EventLogout}
		if hotel := middleware.GetHotelSession(r.Context()); hotel != nil {
			event.HotelID = hotel.ID
		}
		audit.LogFromRequest(r, event)
	}

	middleware.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *PortalHandler) Me(w http.ResponseWriter, r *http.Request) {
	hotel, ok := currentHotel(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"hotel": hotel})
}

func sessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(middleware.HotelSessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func currentHotel(w http.ResponseWriter, r *http.Request) (*model.HotelSession, bool) {
	hotel := middleware.GetHotelSession(r.Context())
	if hotel == nil {
		writeError(w, apperrors.Unauthorized("Not authenticated"))
		return nil, false
	}
	return hotel, true
}
