package domain

import (
	"fmt"
	"strings"
	"time"
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 hours
	MaxServiceNameLength      = 100
	MaxServiceDescription     = 500
	MaxNotesLength            = 500
)

// Pagination
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SlotTakenMessage сообщение клиенту при занятом слоте, одинаковое для pre-check и гонки
const SlotTakenMessage = "This time slot is already booked"

// ActiveStatuses статусы, занимающие слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// ParseDate парсит календарный день. Принимает YYYY-MM-DD и RFC3339 (берётся только дата).
// Результат всегда полночь UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	t, err := time.Parse(DateFormat, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("unparseable date %q", s)
		}
	}

	return DateOnly(t), nil
}

// DateOnly отбрасывает время, оставляя календарный день в UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
