package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

// Pinger проверка доступности хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc адаптер функции к Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type Logger interface {
	Warn(format string, v ...interface{})
}

type Handler struct {
	storage Pinger
	logger  Logger
}

func NewHandler(storage Pinger, logger Logger) *Handler {
	return &Handler{storage: storage, logger: logger}
}

type status struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Warn("GET /health - Storage unavailable: %v", err)
		handlers.RespondError(w, http.StatusServiceUnavailable, "Storage unavailable")
		return
	}
	handlers.RespondJSON(w, http.StatusOK, status{Status: "OK", Timestamp: time.Now().UTC()})
}
