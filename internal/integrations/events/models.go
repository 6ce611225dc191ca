package events

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Event types
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
)

// BookingEvent полезная нагрузка сообщения о бронировании
type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"bookingId"`
	CustomerID  string    `json:"customerId"`
	ServiceID   string    `json:"serviceId"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	Status      string    `json:"status"`
	CancelledBy string    `json:"cancelledBy,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func newBookingEvent(eventType string, b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		ServiceID:  b.ServiceID,
		Date:       b.Date.Format(domain.DateFormat),
		StartTime:  b.StartTime.String(),
		EndTime:    b.EndTime.String(),
		Status:     string(b.Status),
		OccurredAt: at,
	}
}
