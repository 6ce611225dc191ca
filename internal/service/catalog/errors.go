package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInUse возвращается при удалении услуги, на которую есть бронирования
	ErrServiceInUse = errors.New("service has bookings")

	// ErrAccessDenied возвращается, когда у пользователя нет прав администратора
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных.
	// Конкретные поля перечислены в *domain.ValidationError.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
