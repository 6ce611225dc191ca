package list_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

const (
	msgMissingUserID = "Not authorized, no token"
	msgForbidden     = "Not authorized as an admin"
	msgInvalidFilter = "Invalid date or status filter"
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

// Handle GET /api/v1/bookings и GET /api/v1/bookings/date/{date}
// Query params: date, status, serviceId, page, limit. Дата из пути важнее query.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	page, limit := handlers.QueryPage(r)
	serviceReq := &models.ListBookingsRequest{
		Date:      handlers.QueryString(r, "date"),
		Status:    handlers.QueryString(r, "status"),
		ServiceID: handlers.QueryString(r, "serviceId"),
		Page:      page,
		Limit:     limit,
	}
	if date, ok := mux.Vars(r)["date"]; ok {
		serviceReq.Date = &date
	}

	result, err := h.service.List(r.Context(), actor, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings - Access denied: user_id=%s", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: user_id=%s, count=%d, total=%d",
		actor.UserID, len(result.Bookings), result.Pagination.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
