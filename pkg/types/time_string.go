package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString возвращается, когда строка не в формате HH:MM
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrCrossesMidnight возвращается, когда сложение выходит за пределы суток
	ErrCrossesMidnight = errors.New("time arithmetic crosses midnight")
)

// TimeString время суток в формате HH:MM (24 часа, с ведущими нулями)
type TimeString string

// NewTimeString берёт часы и минуты из time.Time
func NewTimeString(t time.Time) TimeString {
	return FromMinutes(t.Hour()*60 + t.Minute())
}

// NewTimeStringFromString парсит и нормализует строку вида "9:00", "09:00" или "09:00:00"
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(s)
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes), nil
}

// FromMinutes собирает TimeString из минуты суток. Значение должно быть в [0, 1440).
func FromMinutes(minutes int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// MustParse как NewTimeStringFromString, но паникует. Только для констант и тестов.
func MustParse(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func (t TimeString) String() string {
	return string(t)
}

func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет формат HH:MM
func (t TimeString) Validate() error {
	_, err := parseMinutes(string(t))
	return err
}

// Minutes возвращает минуту суток. Для некорректной строки возвращает -1.
func (t TimeString) Minutes() int {
	m, err := parseMinutes(string(t))
	if err != nil {
		return -1
	}
	return m
}

// AddMinutes прибавляет минуты без учёта часовых поясов.
// Результат за пределами суток считается ошибкой: HH:MM не умеет его выразить.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	start, err := parseMinutes(string(t))
	if err != nil {
		return "", err
	}
	total := start + minutes
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %s + %d min", ErrCrossesMidnight, t, minutes)
	}
	return FromMinutes(total), nil
}

func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// Scan реализует sql.Scanner. Принимает text/varchar и значения колонки TIME.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	parsed, err := NewTimeStringFromString(strings.TrimSpace(s))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func parseMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if len(parts[0]) < 1 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if len(parts) == 3 {
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}

	return hours*60 + minutes, nil
}
