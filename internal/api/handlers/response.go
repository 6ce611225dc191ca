package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	msgInternalError    = "Internal server error"
	msgValidationFailed = "Validation failed"
)

// Response единый конверт всех ответов API
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func write(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// RespondJSON успешный ответ с данными
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Response{Success: true, Data: data})
}

// RespondMessage успешный ответ с сообщением и данными
func RespondMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	write(w, status, Response{Success: true, Message: message, Data: data})
}

// RespondError ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	write(w, status, Response{Success: false, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondTooManyRequests(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusTooManyRequests, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondValidation 400 со списком ошибок по полям.
// Ошибка без *domain.ValidationError отдаётся одной строкой.
func RespondValidation(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) && verr.HasErrors() {
		write(w, http.StatusBadRequest, Response{
			Success: false,
			Message: msgValidationFailed,
			Errors:  verr.Messages(),
		})
		return
	}
	RespondBadRequest(w, err.Error())
}
