package model

import (
	"time"
)

type Hotel struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	Phone         *string   `db:"phone" json:"phone,omitempty"`
	Address       *string   `db:"address" json:"address,omitempty"`
	City          *string   `db:"city" json:"city,omitempty"`
	ContactPerson *string   `db:"contact_person" json:"contactPerson,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// Session copies the non-secret fields of the hotel.
func (h *Hotel) Session() *HotelSession {
	return &HotelSession{
		ID:            h.ID,
		Name:          h.Name,
		Email:         h.Email,
		Phone:         h.Phone,
		Address:       h.Address,
		City:          h.City,
		ContactPerson: h.ContactPerson,
	}
}

// HotelSession identifies the partner authenticated by a session token.
// Every booking read or write is scoped to its ID.
type HotelSession struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	ContactPerson *string `json:"contactPerson,omitempty"`
}

type RegisterHotelParams struct {
	Email         string `json:"email" validate:"required,email,max=255"`
	Password      string `json:"password" validate:"required,min=6,max=72"`
	HotelName     string `json:"hotelName" validate:"required,max=200"`
	Phone         string `json:"phone" validate:"omitempty,max=50"`
	Address       string `json:"address" validate:"omitempty,max=500"`
	City          string `json:"city" validate:"omitempty,max=100"`
	ContactPerson string `json:"contactPerson" validate:"omitempty,max=200"`
}

type LoginParams struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateHotelParams struct {
	Name          string
	Email         string
	PasswordHash  string
	Phone         *string
	Address       *string
	City          *string
	ContactPerson *string
}

type UpdateHotelProfileParams struct {
	Name          string `json:"name" validate:"required,max=200"`
	Email         string `json:"email" validate:"required,email,max=255"`
	Phone         string `json:"phone" validate:"omitempty,max=50"`
	Address       string `json:"address" validate:"omitempty,max=500"`
	City          string `json:"city" validate:"omitempty,max=100"`
	ContactPerson string `json:"contactPerson" validate:"omitempty,max=200"`
}

type ChangePasswordParams struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// OptionalString maps an empty form value to NULL.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
