package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// IsValid reports whether s is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking represents a reservation of one service for one customer at one date and time
type Booking struct {
	ID         string
	CustomerID string
	ServiceID  string
	Date       time.Time // calendar day, UTC midnight
	StartTime  types.TimeString
	EndTime    types.TimeString
	Status     BookingStatus
	Notes      *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsOwnedBy returns true if customerID made the booking
func (b *Booking) IsOwnedBy(customerID string) bool {
	return customerID != "" && b.CustomerID == customerID
}

// EffectiveStatus is the display projection of the stored status.
// An active booking whose end has passed reads as completed. Authorization
// decisions must use Status, never this value.
func (b *Booking) EffectiveStatus(now time.Time) BookingStatus {
	if !b.IsActive() {
		return b.Status
	}

	end := b.EndTime.Minutes()
	if end < 0 {
		return b.Status
	}

	y, m, d := b.Date.Date()
	endAt := time.Date(y, m, d, end/60, end%60, 0, 0, now.Location())
	if !now.Before(endAt) {
		return StatusCompleted
	}
	return b.Status
}

// BookingsFilter фильтр выборки бронирований. Пустые поля не ограничивают выборку.
type BookingsFilter struct {
	CustomerID *string
	ServiceID  *string
	Date       *time.Time
	StartTime  *types.TimeString
	Statuses   []BookingStatus // nil = любые статусы
	Limit      int             // 0 = без ограничения
	Offset     int
}

// SlotFilter фильтр активных бронирований конкретного слота
func SlotFilter(serviceID string, date time.Time, startTime types.TimeString) BookingsFilter {
	return BookingsFilter{
		ServiceID: &serviceID,
		Date:      &date,
		StartTime: &startTime,
		Statuses:  ActiveStatuses,
	}
}

// DayFilter фильтр активных бронирований услуги на дату
func DayFilter(serviceID string, date time.Time) BookingsFilter {
	return BookingsFilter{
		ServiceID: &serviceID,
		Date:      &date,
		Statuses:  ActiveStatuses,
	}
}

// StatusCount количество бронирований в статусе
type StatusCount struct {
	Status BookingStatus
	Count  int
}
