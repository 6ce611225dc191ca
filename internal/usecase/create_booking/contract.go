package create_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Service, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetCustomer(ctx context.Context, userID string) (*domain.Customer, error)
}

// EventPublisher публикация событий о бронированиях
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, booking *domain.Booking) error
}

// Metrics счётчики исходов создания
type Metrics interface {
	IncBookingCreated()
	IncBookingConflict(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
