package handler

import (
	"net/http"

	"github.com/soycar/hotel-portal/internal/audit"
	"github.com/soycar/hotel-portal/internal/middleware"
	"github.com/soycar/hotel-portal/internal/model"
)

func (h *PortalHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	hotel, ok := currentHotel(w, r)
	if !ok {
		return
	}

	var req model.UpdateHotelProfileParams
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	updated, err := h.profiles.UpdateProfile(r.Context(), middleware.GetSessionToken(r.Context()), hotel.ID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventProfileUpdate, HotelID: hotel.ID, Email: updated.Email})
	writeJSON(w, http.StatusOK, map[string]any{"hotel": updated})
}

func (h *PortalHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	hotel, ok := currentHotel(w, r)
	if !ok {
		return
	}

	var req model.ChangePasswordParams
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.profiles.ChangePassword(r.Context(), hotel.ID, req); err != nil {
		writeError(w, err)
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventPasswordChange, HotelID: hotel.ID})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
