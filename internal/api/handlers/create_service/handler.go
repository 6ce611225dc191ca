package create_service

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgMissingUserID      = "Not authorized, no token"
	msgForbidden          = "Not authorized as an admin"
	msgServiceCreated     = "Service created successfully"
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

// Handle POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /services - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(&req, catalog.ErrInvalidInput); err != nil {
		h.logger.Warn("POST /services - Validation failed: %v", err)
		handlers.RespondValidation(w, err)
		return
	}

	svc, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /services - Access denied: user_id=%s", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /services - Invalid input: %v", err)
			handlers.RespondValidation(w, err)

		default:
			h.logger.Error("POST /services - Failed to create service: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services - Service created successfully: service_id=%s, user_id=%s", svc.ID, actor.UserID)
	handlers.RespondMessage(w, http.StatusCreated, msgServiceCreated, svc)
}
