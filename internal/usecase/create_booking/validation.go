package create_booking

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

var hhmm = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type validated struct {
	date      time.Time
	startTime types.TimeString
	notes     *string
}

// validateRequest проверяет все поля сразу и возвращает полный список ошибок
func validateRequest(req *Request) (*validated, error) {
	verr := domain.NewValidationError(ErrInvalidInput)
	out := &validated{}

	if strings.TrimSpace(req.CustomerID) == "" {
		verr.Add("customer", "Customer is required")
	}

	if strings.TrimSpace(req.ServiceID) == "" {
		verr.Add("service", "Service is required")
	}

	if strings.TrimSpace(req.Date) == "" {
		verr.Add("date", "Date is required")
	} else if date, err := domain.ParseDate(req.Date); err != nil {
		verr.Add("date", "Date must be in YYYY-MM-DD format")
	} else {
		out.date = date
	}

	startTime := strings.TrimSpace(req.StartTime)
	switch {
	case startTime == "":
		verr.Add("startTime", "Start time is required")
	case !hhmm.MatchString(startTime):
		verr.Add("startTime", "Start time must be in HH:MM format")
	default:
		out.startTime = types.TimeString(startTime)
	}

	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if utf8.RuneCountInString(notes) > domain.MaxNotesLength {
			verr.Add("notes", fmt.Sprintf("Notes cannot exceed %d characters", domain.MaxNotesLength))
		} else if notes != "" {
			out.notes = &notes
		}
	}

	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return out, nil
}

// computeEndTime начало плюс длительность услуги.
// Переход через полночь всегда ошибка; выход за закрытие зависит от политики.
func computeEndTime(start types.TimeString, durationMinutes int, hours domain.OperatingHours) (types.TimeString, error) {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		verr := domain.NewValidationError(ErrInvalidInput)
		verr.Add("startTime", "Booking cannot extend past midnight")
		return "", verr
	}

	if hours.Overflow == domain.OverflowReject && !hours.EndsWithin(end) {
		verr := domain.NewValidationError(ErrInvalidInput)
		verr.Add("startTime", fmt.Sprintf("Booking must end by %s", hours.Close))
		return "", verr
	}

	return end, nil
}
