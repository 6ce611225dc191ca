package create_service

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

func newHandler() *Handler {
	store := memory.NewStore()
	return NewHandler(catalog.NewService(store.Services(), store.Bookings(), logger.NewNop()), logger.NewNop())
}

func post(h *Handler, actor domain.Actor, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/services", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

var admin = domain.Actor{UserID: "admin", Capability: domain.CapabilityAdministrator}

func TestHandle_Created(t *testing.T) {
	rec := post(newHandler(), admin, `{"name":"Manicure","duration":45,"price":25,"category":"nails"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"message":"Service created successfully"`)
	assert.Contains(t, body, `"name":"Manicure"`)
	assert.Contains(t, body, `"available":true`)
}

func TestHandle_ValidationErrors(t *testing.T) {
	rec := post(newHandler(), admin, `{"duration":2,"category":"nails"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name is required"`)

	rec = post(newHandler(), admin, `{"name":"Manicure","duration":2,"category":"tattoo"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Duration must be between 5 and 480 minutes")
	assert.Contains(t, rec.Body.String(), "Category must be one of")
}

func TestHandle_Forbidden(t *testing.T) {
	rec := post(newHandler(), domain.Actor{UserID: "u-1"}, `{"name":"Manicure","duration":45,"category":"nails"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
