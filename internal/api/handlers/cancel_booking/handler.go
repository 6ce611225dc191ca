package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
)

const (
	msgMissingUserID    = "Not authorized, no token"
	msgNotFound         = "Booking not found"
	msgForbidden        = "Not authorized to cancel this booking"
	msgCannotCancel     = "Booking cannot be cancelled"
	msgBookingCancelled = "Booking cancelled successfully"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT|PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("%s /bookings/{id}/cancel - Missing user ID", r.Method)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	booking, err := h.service.Cancel(r.Context(), bookingID, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("%s /bookings/{id}/cancel - Booking not found: booking_id=%s", r.Method, bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("%s /bookings/{id}/cancel - Access denied: booking_id=%s, user_id=%s",
				r.Method, bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("%s /bookings/{id}/cancel - Cannot cancel: booking_id=%s", r.Method, bookingID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		default:
			h.logger.Error("%s /bookings/{id}/cancel - Failed to cancel booking: booking_id=%s, error=%v",
				r.Method, bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s /bookings/{id}/cancel - Booking cancelled successfully: booking_id=%s, user_id=%s",
		r.Method, bookingID, actor.UserID)
	handlers.RespondMessage(w, http.StatusOK, msgBookingCancelled, booking)
}
