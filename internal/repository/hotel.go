package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/soycar/hotel-portal/internal/database"
	"github.com/soycar/hotel-portal/internal/model"
)

type HotelRepository interface {
	FindByID(ctx context.Context, id int64) (*model.Hotel, error)
	FindByEmail(ctx context.Context, email string) (*model.Hotel, error)
	Create(ctx context.Context, params model.CreateHotelParams) (*model.Hotel, error)
	UpdateProfile(ctx context.Context, id int64, params model.UpdateHotelProfileParams) (*model.Hotel, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}

type hotelRepo struct {
	db database.DBTX
}

func NewHotelRepository(db *sqlx.DB) HotelRepository {
	return &hotelRepo{db: db}
}

func (r *hotelRepo) FindByID(ctx context.Context, id int64) (*model.Hotel, error) {
	var hotel model.Hotel
	err := r.db.GetContext(ctx, &hotel, `SELECT * FROM hotels WHERE id = $1`, id)
	return HandleNotFound(&hotel, err)
}

// FindByEmail matches case-insensitively, the same way the unique index does.
func (r *hotelRepo) FindByEmail(ctx context.Context, email string) (*model.Hotel, error) {
	var hotel model.Hotel
	err := r.db.GetContext(ctx, &hotel, `SELECT * FROM hotels WHERE lower(email) = lower($1)`, email)
	return HandleNotFound(&hotel, err)
}

func (r *hotelRepo) Create(ctx context.Context, params model.CreateHotelParams) (*model.Hotel, error) {
	var hotel model.Hotel
	err := r.db.GetContext(ctx, &hotel, `
		INSERT INTO hotels (name, email, password_hash, phone, address, city, contact_person)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *
	`, params.Name, params.Email, params.PasswordHash, params.Phone, params.Address, params.City, params.ContactPerson)
	if err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *hotelRepo) UpdateProfile(ctx context.Context, id int64, params model.UpdateHotelProfileParams) (*model.Hotel, error) {
	var hotel model.Hotel
	err := r.db.GetContext(ctx, &hotel, `
		UPDATE hotels SET
			name = $2,
			email = $3,
			phone = $4,
			address = $5,
			city = $6,
			contact_person = $7,
			updated_at = $8
		WHERE id = $1
		RETURNING *
	`, id, params.Name, params.Email,
		model.OptionalString(params.Phone),
		model.OptionalString(params.Address),
		model.OptionalString(params.City),
		model.OptionalString(params.ContactPerson),
		time.Now())
	return HandleNotFound(&hotel, err)
}

func (r *hotelRepo) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE hotels SET password_hash = $2, updated_at = $3 WHERE id = $1
	`, id, passwordHash, time.Now())
	return err
}
