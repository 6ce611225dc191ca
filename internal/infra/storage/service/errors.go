package service

import (
	"errors"

	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = storage.ErrServiceNotFound

	// ErrServiceInUse возвращается при удалении услуги, на которую ссылаются бронирования
	ErrServiceInUse = storage.ErrServiceInUse

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("service.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("service.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("service.repository: failed to scan row")
)
