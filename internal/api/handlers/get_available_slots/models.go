package get_available_slots

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Service        string   `json:"service"`
	ServiceID      string   `json:"serviceId"`
	Date           string   `json:"date"`
	Duration       int      `json:"duration"`
	AvailableSlots []string `json:"availableSlots"`
	BookedSlots    []string `json:"bookedSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		Service:        resp.Service.Name,
		ServiceID:      resp.Service.ID,
		Date:           resp.Date.Format(domain.DateFormat),
		Duration:       resp.DurationMinutes,
		AvailableSlots: toStrings(resp.AvailableSlots),
		BookedSlots:    toStrings(resp.BookedSlots),
	}
}

// toStrings пустой список сериализуется как [], а не null
func toStrings(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}
