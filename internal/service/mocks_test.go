package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/mock"

	"github.com/soycar/hotel-portal/internal/model"
	"github.com/soycar/hotel-portal/internal/password"
	"github.com/soycar/hotel-portal/internal/repository"
)

func testHasher() *password.Hasher {
	return password.NewHasher(4)
}

// memHotelRepo mirrors the hotels table including the unique email index.
type memHotelRepo struct {
	mu     sync.Mutex
	nextID int64
	hotels map[int64]*model.Hotel
}

func newMemHotelRepo() *memHotelRepo {
	return &memHotelRepo{hotels: make(map[int64]*model.Hotel)}
}

func (r *memHotelRepo) FindByID(ctx context.Context, id int64) (*model.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.hotels[id]; ok {
		cp := *h
		return &cp, nil
	}
	return nil, nil
}

func (r *memHotelRepo) FindByEmail(ctx context.Context, email string) (*model.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.hotels {
		if strings.EqualFold(h.Email, email) {
			cp := *h
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memHotelRepo) emailTaken(email string, except int64) bool {
	for id, h := range r.hotels {
		if id != except && strings.EqualFold(h.Email, email) {
			return true
		}
	}
	return false
}

func (r *memHotelRepo) Create(ctx context.Context, params model.CreateHotelParams) (*model.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(params.Email, 0) {
		return nil, &pq.Error{Code: "23505"}
	}
	r.nextID++
	now := time.Now()
	h := &model.Hotel{
		ID:            r.nextID,
		Name:          params.Name,
		Email:         params.Email,
		PasswordHash:  params.PasswordHash,
		Phone:         params.Phone,
		Address:       params.Address,
		City:          params.City,
		ContactPerson: params.ContactPerson,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.hotels[h.ID] = h
	cp := *h
	return &cp, nil
}

func (r *memHotelRepo) UpdateProfile(ctx context.Context, id int64, params model.UpdateHotelProfileParams) (*model.Hotel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hotels[id]
	if !ok {
		return nil, nil
	}
	if r.emailTaken(params.Email, id) {
		return nil, &pq.Error{Code: "23505"}
	}
	h.Name = params.Name
	h.Email = params.Email
	h.Phone = model.OptionalString(params.Phone)
	h.Address = model.OptionalString(params.Address)
	h.City = model.OptionalString(params.City)
	h.ContactPerson = model.OptionalString(params.ContactPerson)
	cp := *h
	return &cp, nil
}

func (r *memHotelRepo) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.hotels[id]; ok {
		h.PasswordHash = passwordHash
	}
	return nil
}

// memStore is a session.Store over a map.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]model.HotelSession
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]model.HotelSession)}
}

func (s *memStore) Get(ctx context.Context, token string) (*model.HotelSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[token]; ok {
		return &sess, nil
	}
	return nil, nil
}

func (s *memStore) Set(ctx context.Context, token string, sess *model.HotelSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = *sess
	return nil
}

func (s *memStore) Clear(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

type mockHotelRepo struct {
	mock.Mock
}

func (m *mockHotelRepo) FindByID(ctx context.Context, id int64) (*model.Hotel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hotel), args.Error(1)
}

func (m *mockHotelRepo) FindByEmail(ctx context.Context, email string) (*model.Hotel, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hotel), args.Error(1)
}

func (m *mockHotelRepo) Create(ctx context.Context, params model.CreateHotelParams) (*model.Hotel, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hotel), args.Error(1)
}

func (m *mockHotelRepo) UpdateProfile(ctx context.Context, id int64, params model.UpdateHotelProfileParams) (*model.Hotel, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Hotel), args.Error(1)
}

func (m *mockHotelRepo) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, token string) (*model.HotelSession, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.HotelSession), args.Error(1)
}

func (m *mockStore) Set(ctx context.Context, token string, sess *model.HotelSession) error {
	return m.Called(ctx, token, sess).Error(0)
}

func (m *mockStore) Clear(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) ListByHotel(ctx context.Context, hotelID int64, filter model.BookingFilter) ([]model.Booking, error) {
	args := m.Called(ctx, hotelID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountByHotel(ctx context.Context, hotelID int64, filter model.BookingFilter) (int, error) {
	args := m.Called(ctx, hotelID, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockBookingRepo) FindByIDForHotel(ctx context.Context, hotelID, id int64) (*model.Booking, error) {
	args := m.Called(ctx, hotelID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *mockBookingRepo) Create(ctx context.Context, params model.InsertBookingParams) (*model.Booking, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, hotelID, id int64, status model.BookingStatus) (*model.Booking, error) {
	args := m.Called(ctx, hotelID, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, hotelID int64, eventType string, payload any) error {
	return m.Called(ctx, hotelID, eventType, payload).Error(0)
}

var (
	_ repository.HotelRepository   = (*memHotelRepo)(nil)
	_ repository.HotelRepository   = (*mockHotelRepo)(nil)
	_ repository.BookingRepository = (*mockBookingRepo)(nil)
)
