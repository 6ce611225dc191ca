// Package storage holds the errors shared by every storage backend.
// Backend packages re-export them so callers can match with errors.Is
// regardless of the driver selected in configuration.
package storage

import "errors"

var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("storage: booking not found")

	// ErrServiceNotFound услуга не найдена
	ErrServiceNotFound = errors.New("storage: service not found")

	// ErrSlotTaken нарушено ограничение уникальности активного слота
	ErrSlotTaken = errors.New("storage: slot already has an active booking")

	// ErrNotCancellable бронирование уже не в активном статусе
	ErrNotCancellable = errors.New("storage: booking is not in a cancellable status")

	// ErrServiceInUse на услугу ссылаются бронирования
	ErrServiceInUse = errors.New("storage: service is referenced by bookings")
)
