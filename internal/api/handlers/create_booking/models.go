package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model.
// EndTime принимается для совместимости клиентов, но не используется: его вычисляет сервер.
type CreateBookingRequest struct {
	Service   string  `json:"service"`
	ServiceID string  `json:"serviceId"`
	Date      string  `json:"date"`      // "2025-10-15"
	StartTime string  `json:"startTime"` // "10:00"
	EndTime   string  `json:"endTime,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID string) *createBooking.Request {
	serviceID := r.Service
	if serviceID == "" {
		serviceID = r.ServiceID
	}
	return &createBooking.Request{
		CustomerID: customerID,
		ServiceID:  serviceID,
		Date:       r.Date,
		StartTime:  r.StartTime,
		Notes:      r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response, now time.Time) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking, resp.Service, resp.Customer, now)
}
