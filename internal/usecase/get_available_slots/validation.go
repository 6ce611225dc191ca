package get_available_slots

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// validateRequest проверяет обязательные поля и разбирает дату
func validateRequest(req *Request) (time.Time, error) {
	verr := domain.NewValidationError(ErrInvalidInput)

	if strings.TrimSpace(req.ServiceID) == "" {
		verr.Add("serviceId", "Service ID is required")
	}

	var date time.Time
	if strings.TrimSpace(req.Date) == "" {
		verr.Add("date", "Date is required")
	} else {
		parsed, err := domain.ParseDate(req.Date)
		if err != nil {
			verr.Add("date", "Date must be in YYYY-MM-DD format")
		}
		date = parsed
	}

	return date, verr.OrNil()
}
