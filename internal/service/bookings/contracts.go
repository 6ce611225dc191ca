package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	Count(ctx context.Context, filter domain.BookingsFilter) (int, error)
	CountByStatus(ctx context.Context, filter domain.BookingsFilter) ([]domain.StatusCount, error)
	Cancel(ctx context.Context, id string, at time.Time) (*domain.Booking, error)
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
	PublishBookingCancelled(ctx context.Context, booking *domain.Booking, cancelledBy string) error
}

// Metrics счётчик отмен
type Metrics interface {
	IncBookingCancelled()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
