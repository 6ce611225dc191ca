package delete_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeCatalog struct{ err error }

func (f *fakeCatalog) Delete(context.Context, domain.Actor, string) error { return f.err }

func TestHandle_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{nil, http.StatusOK},
		{catalog.ErrServiceInUse, http.StatusConflict},
		{catalog.ErrServiceNotFound, http.StatusNotFound},
		{catalog.ErrAccessDenied, http.StatusForbidden},
		{catalog.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		r := mux.NewRouter()
		r.HandleFunc("/services/{serviceId}", NewHandler(&fakeCatalog{err: tc.err}, logger.NewNop()).Handle)

		req := httptest.NewRequest(http.MethodDelete, "/services/s-1", nil)
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: "admin", Capability: domain.CapabilityAdministrator}))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, tc.status, rec.Code)
	}
}
