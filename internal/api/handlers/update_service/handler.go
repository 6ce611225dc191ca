package update_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgMissingUserID      = "Not authorized, no token"
	msgForbidden          = "Not authorized as an admin"
	msgNotFound           = "Service not found"
	msgServiceUpdated     = "Service updated successfully"
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

// Handle PUT /api/v1/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["serviceId"]

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /services/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(&req, catalog.ErrInvalidInput); err != nil {
		h.logger.Warn("PUT /services/{id} - Validation failed: %v", err)
		handlers.RespondValidation(w, err)
		return
	}

	svc, err := h.service.Update(r.Context(), actor, serviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PUT /services/{id} - Access denied: user_id=%s", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("PUT /services/{id} - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /services/{id} - Invalid input: %v", err)
			handlers.RespondValidation(w, err)

		default:
			h.logger.Error("PUT /services/{id} - Failed to update service: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /services/{id} - Service updated successfully: service_id=%s, user_id=%s", serviceID, actor.UserID)
	handlers.RespondMessage(w, http.StatusOK, msgServiceUpdated, svc)
}
