// Package memory is an in-process storage backend selected with
// storage.driver = "memory". It enforces the same active-slot uniqueness
// as the database backends.
package memory

import (
	"sync"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var (
	ErrBookingNotFound = storage.ErrBookingNotFound
	ErrServiceNotFound = storage.ErrServiceNotFound
	ErrSlotTaken       = storage.ErrSlotTaken
	ErrNotCancellable  = storage.ErrNotCancellable
	ErrServiceInUse    = storage.ErrServiceInUse
)

type slotKey struct {
	serviceID string
	date      string
	startTime types.TimeString
}

// Store общее состояние обоих репозиториев под одним мьютексом
type Store struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
	active   map[slotKey]string // слот -> ID активного бронирования
	services map[string]*domain.Service
}

func NewStore() *Store {
	return &Store{
		bookings: make(map[string]*domain.Booking),
		active:   make(map[slotKey]string),
		services: make(map[string]*domain.Service),
	}
}

// Bookings репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{store: s}
}

// Services репозиторий услуг поверх хранилища
func (s *Store) Services() *ServiceRepository {
	return &ServiceRepository{store: s}
}

func keyOf(b *domain.Booking) slotKey {
	return slotKey{
		serviceID: b.ServiceID,
		date:      b.Date.Format(domain.DateFormat),
		startTime: b.StartTime,
	}
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.Notes != nil {
		notes := *b.Notes
		c.Notes = &notes
	}
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		c.CancelledAt = &at
	}
	return &c
}

func copyService(s *domain.Service) *domain.Service {
	c := *s
	return &c
}
