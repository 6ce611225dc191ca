package get_available_slots

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingParams   = "Service ID and date are required"
	msgServiceNotFound = "Service not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := strings.TrimSpace(r.URL.Query().Get("serviceId"))
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if serviceID == "" || date == "" {
		h.logger.Warn("GET /bookings/available-slots - Missing params: service_id=%q, date=%q", serviceID, date)
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /bookings/available-slots - Invalid input: %v", err)
			handlers.RespondValidation(w, err)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /bookings/available-slots - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /bookings/available-slots - Failed to get slots: service_id=%s, date=%s, error=%v",
				serviceID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/available-slots - Slots retrieved successfully: service_id=%s, date=%s, available=%d, booked=%d",
		serviceID, date, len(result.AvailableSlots), len(result.BookedSlots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
