package create_booking

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// Request модель запроса на создание бронирования.
// Время окончания не принимается: оно всегда вычисляется из длительности услуги.
type Request struct {
	CustomerID string  // ID аутентифицированного пользователя
	ServiceID  string  // ID услуги
	Date       string  // YYYY-MM-DD
	StartTime  string  // HH:MM
	Notes      *string // Заметки (опционально)
}

// Response созданное бронирование со связанными услугой и клиентом
type Response struct {
	Booking  *domain.Booking
	Service  *domain.Service
	Customer *domain.Customer
}
