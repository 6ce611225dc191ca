package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение слотов. Поля приходят из query как есть.
type Request struct {
	ServiceID string
	Date      string // YYYY-MM-DD
}

// Response разбиение слотов дня на свободные и занятые
type Response struct {
	Service         *domain.Service
	Date            time.Time
	DurationMinutes int
	AllSlots        []types.TimeString
	AvailableSlots  []types.TimeString
	BookedSlots     []types.TimeString
}
