package get_my_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

const (
	msgMissingUserID = "Not authorized, no token"
	msgInvalidStatus = "Invalid booking status"
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

// Handle GET /api/v1/bookings/my
// Query params: status, page, limit (все опциональные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/my - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	page, limit := handlers.QueryPage(r)
	serviceReq := &models.GetCustomerBookingsRequest{
		CustomerID: userID,
		Status:     handlers.QueryString(r, "status"),
		Page:       page,
		Limit:      limit,
	}

	result, err := h.service.GetCustomerBookings(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings/my - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /bookings/my - Failed to get bookings: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings/my - Bookings retrieved successfully: user_id=%s, count=%d", userID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
