package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrSlotTaken возвращается, когда на слот уже есть активное бронирование.
	// Одинаков для предварительной проверки и для нарушения ограничения хранилища.
	ErrSlotTaken = errors.New("create_booking: slot already booked")

	// ErrInvalidInput возвращается при некорректных входных данных.
	// Конкретные поля перечислены в *domain.ValidationError.
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
