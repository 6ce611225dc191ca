package cancel_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeService struct {
	err     error
	gotID   string
	gotUser domain.Actor
}

func (f *fakeService) Cancel(_ context.Context, id string, actor domain.Actor) (*models.BookingResponse, error) {
	f.gotID, f.gotUser = id, actor
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: string(domain.StatusCancelled)}, nil
}

func route(svc BookingService) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/cancel", NewHandler(svc, logger.NewNop()).Handle).
		Methods(http.MethodPut, http.MethodPatch)
	return r
}

func send(r http.Handler, method string, actor *domain.Actor) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/bookings/b-1/cancel", nil)
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{}
	actor := domain.Actor{UserID: "u-1"}

	for _, method := range []string{http.MethodPut, http.MethodPatch} {
		rec := send(route(svc), method, &actor)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"message":"Booking cancelled successfully"`)
		assert.Equal(t, "b-1", svc.gotID)
		assert.Equal(t, actor, svc.gotUser)
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	actor := domain.Actor{UserID: "u-2"}
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{bookings.ErrBookingNotFound, http.StatusNotFound, `{"success":false,"message":"Booking not found"}`},
		{bookings.ErrAccessDenied, http.StatusForbidden, `{"success":false,"message":"Not authorized to cancel this booking"}`},
		{bookings.ErrCannotCancel, http.StatusBadRequest, `{"success":false,"message":"Booking cannot be cancelled"}`},
		{bookings.ErrInternal, http.StatusInternalServerError, `{"success":false,"message":"Internal server error"}`},
	}

	for _, tc := range cases {
		rec := send(route(&fakeService{err: tc.err}), http.MethodPut, &actor)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.JSONEq(t, tc.body, rec.Body.String())
	}
}

func TestHandle_Unauthenticated(t *testing.T) {
	svc := &fakeService{}
	rec := send(route(svc), http.MethodPut, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.gotID)
}
