package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

const HeaderRequestID = "X-Request-ID"

// statusRecorder запоминает код ответа
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func newRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

// RequestID берёт X-Request-ID клиента или генерирует новый
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// Recovery перехватывает панику обработчика и пишет access log
func Recovery(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newRecorder(w)

			defer func() {
				if p := recover(); p != nil {
					logger.Error("panic: %s %s request_id=%s: %v\n%s",
						r.Method, r.URL.Path, GetRequestID(r.Context()), p, debug.Stack())
					handlers.RespondInternalError(rec)
				}
				logger.Info("%s %s status=%d duration=%s request_id=%s",
					r.Method, r.URL.Path, rec.status, time.Since(start), GetRequestID(r.Context()))
			}()

			next.ServeHTTP(rec, r)
		})
	}
}
