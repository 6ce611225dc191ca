package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// GetCustomerBookingsRequest запрос истории бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID string
	Status     *string
	Page       int
	Limit      int
}

// ListBookingsRequest административная выборка бронирований
type ListBookingsRequest struct {
	Date      *string
	Status    *string
	ServiceID *string
	Page      int
	Limit     int
}

// Response модели

// CustomerResponse клиент бронирования. Без ответа UserService заполнен только ID.
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ServiceSummary краткие данные услуги внутри бронирования
type ServiceSummary struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration"`
	Price           float64 `json:"price"`
	Category        string  `json:"category"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          string            `json:"id"`
	Customer    *CustomerResponse `json:"customer"`
	ServiceID   string            `json:"serviceId"`
	Service     *ServiceSummary   `json:"service,omitempty"`
	Date        string            `json:"date"`
	StartTime   string            `json:"startTime"`
	EndTime     string            `json:"endTime"`
	Status      string            `json:"status"`
	Notes       *string           `json:"notes,omitempty"`
	CancelledAt *time.Time        `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// Pagination параметры страницы
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Pagination Pagination        `json:"pagination"`
	Stats      map[string]int    `json:"stats,omitempty"`
}

// FromDomainBooking конвертирует domain модель в DTO.
// Статус отображается с учётом времени: прошедшие активные записи показываются как completed.
func FromDomainBooking(b *domain.Booking, svc *domain.Service, customer *domain.Customer, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:          b.ID,
		Customer:    &CustomerResponse{ID: b.CustomerID},
		ServiceID:   b.ServiceID,
		Date:        b.Date.Format(domain.DateFormat),
		StartTime:   b.StartTime.String(),
		EndTime:     b.EndTime.String(),
		Status:      string(b.EffectiveStatus(now)),
		Notes:       b.Notes,
		CancelledAt: b.CancelledAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if customer != nil {
		resp.Customer = FromDomainCustomer(customer)
	}

	if svc != nil {
		resp.Service = &ServiceSummary{
			ID:              svc.ID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			Price:           svc.Price,
			Category:        string(svc.Category),
		}
	}

	return resp
}

// FromDomainCustomer конвертирует клиента в DTO
func FromDomainCustomer(c *domain.Customer) *CustomerResponse {
	if c == nil {
		return nil
	}
	return &CustomerResponse{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
	}
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, bool) {
	s := domain.BookingStatus(status)
	return s, s.IsValid()
}

// NewPagination считает количество страниц
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
