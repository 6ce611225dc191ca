package servicecache

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Repository источник истины, который кэшируется
type Repository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	List(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	Delete(ctx context.Context, id string) error
}

type Logger interface {
	Warn(format string, v ...interface{})
}
