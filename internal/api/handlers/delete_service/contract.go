package delete_service

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type CatalogService interface {
	Delete(ctx context.Context, actor domain.Actor, id string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
