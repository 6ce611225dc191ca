package get_available_slots

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// takenStartTimes время начала каждого активного бронирования.
// Бронирование занимает ровно тот слот, с которого начинается; длительность не учитывается.
func takenStartTimes(bookings []*domain.Booking) map[types.TimeString]struct{} {
	taken := make(map[types.TimeString]struct{}, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		taken[b.StartTime] = struct{}{}
	}
	return taken
}
