package delete_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
)

const (
	msgMissingUserID  = "Not authorized, no token"
	msgForbidden      = "Not authorized as an admin"
	msgNotFound       = "Service not found"
	msgServiceInUse   = "Service has bookings and cannot be deleted"
	msgServiceDeleted = "Service deleted successfully"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /services/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, serviceID); err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("DELETE /services/{id} - Access denied: user_id=%s", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("DELETE /services/{id} - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrServiceInUse):
			h.logger.Warn("DELETE /services/{id} - Service in use: service_id=%s", serviceID)
			handlers.RespondConflict(w, msgServiceInUse)

		default:
			h.logger.Error("DELETE /services/{id} - Failed to delete service: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /services/{id} - Service deleted successfully: service_id=%s, user_id=%s", serviceID, actor.UserID)
	handlers.RespondMessage(w, http.StatusOK, msgServiceDeleted, nil)
}
