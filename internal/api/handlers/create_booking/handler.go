package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgMissingUserID      = "Not authorized, no token"
	msgServiceNotFound    = "Service not found"
	msgBookingCreated     = "Booking created successfully"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq := req.ToUseCaseRequest(userID)

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondValidation(w, err)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: user_id=%s, service_id=%s", userID, useCaseReq.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot already booked: user_id=%s, service_id=%s, date=%s, start=%s",
				userID, useCaseReq.ServiceID, useCaseReq.Date, useCaseReq.StartTime)
			handlers.RespondConflict(w, domain.SlotTakenMessage)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%s, service_id=%s, error=%v",
				userID, useCaseReq.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, user_id=%s, service_id=%s",
		result.Booking.ID, userID, result.Booking.ServiceID)
	handlers.RespondMessage(w, http.StatusCreated, msgBookingCreated, FromUseCaseResponse(result, time.Now()))
}
