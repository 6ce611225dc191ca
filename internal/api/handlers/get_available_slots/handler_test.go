package get_available_slots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeUseCase struct {
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(context.Context, *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	return f.resp, f.err
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/available-slots"+query, nil))
	return rec
}

func TestHandle_MissingParams(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, logger.NewNop())

	for _, q := range []string{"", "?serviceId=s-1", "?date=2025-06-10", "?serviceId=%20&date=2025-06-10"} {
		rec := get(h, q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.JSONEq(t, `{"success":false,"message":"Service ID and date are required"}`, rec.Body.String())
	}
}

func TestHandle_Success(t *testing.T) {
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Service:         &domain.Service{ID: "s-1", Name: "Haircut"},
		Date:            time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		AvailableSlots:  []types.TimeString{"09:00", "09:30"},
	}}

	rec := get(NewHandler(uc, logger.NewNop()), "?serviceId=s-1&date=2025-06-10")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"data": {
			"service": "Haircut",
			"serviceId": "s-1",
			"date": "2025-06-10",
			"duration": 60,
			"availableSlots": ["09:00", "09:30"],
			"bookedSlots": []
		}
	}`, rec.Body.String())
}

func TestHandle_ServiceNotFound(t *testing.T) {
	rec := get(NewHandler(&fakeUseCase{err: getAvailableSlots.ErrServiceNotFound}, logger.NewNop()), "?serviceId=s-9&date=2025-06-10")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
