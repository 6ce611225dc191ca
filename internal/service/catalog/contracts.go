package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	Delete(ctx context.Context, id string) error
}

// BookingCounter проверка ссылок на услугу перед удалением
type BookingCounter interface {
	Count(ctx context.Context, filter domain.BookingsFilter) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
