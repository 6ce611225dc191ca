package list_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog/models"
)

const msgInvalidAvailable = "available must be true or false"

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

// Handle GET /api/v1/services
// Query params: category, available (опциональные)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListServicesRequest{
		Category: handlers.QueryString(r, "category"),
	}

	if raw := handlers.QueryString(r, "available"); raw != nil {
		available, err := strconv.ParseBool(*raw)
		if err != nil {
			h.logger.Warn("GET /services - Invalid available param: %q", *raw)
			handlers.RespondBadRequest(w, msgInvalidAvailable)
			return
		}
		req.Available = &available
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidInput) {
			h.logger.Warn("GET /services - Invalid filter: %v", err)
			handlers.RespondValidation(w, err)
			return
		}
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services retrieved successfully: count=%d", result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}
