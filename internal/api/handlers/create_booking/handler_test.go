package create_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	createBooking "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeUseCase struct {
	execute func(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
	got     *createBooking.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.got = req
	return f.execute(ctx, req)
}

func doRequest(h *Handler, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if userID != "" {
		req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: userID}))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{execute: func(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
		return &createBooking.Response{
			Booking: &domain.Booking{
				ID:         "b-1",
				CustomerID: req.CustomerID,
				ServiceID:  req.ServiceID,
				Date:       time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC),
				StartTime:  types.MustParse("10:00"),
				EndTime:    types.MustParse("11:00"),
				Status:     domain.StatusConfirmed,
			},
			Service:  &domain.Service{ID: req.ServiceID, Name: "Haircut", DurationMinutes: 60, Category: domain.CategoryHair},
			Customer: &domain.Customer{ID: req.CustomerID},
		}, nil
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := doRequest(h, "u-1", `{"service":"s-1","date":"2030-06-10","startTime":"10:00","endTime":"23:00"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, &createBooking.Request{CustomerID: "u-1", ServiceID: "s-1", Date: "2030-06-10", StartTime: "10:00"}, uc.got)
	assert.Contains(t, rec.Body.String(), `"message":"Booking created successfully"`)
	assert.Contains(t, rec.Body.String(), `"endTime":"11:00"`)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
}

func TestHandle_Errors(t *testing.T) {
	verr := domain.NewValidationError(createBooking.ErrInvalidInput)
	verr.Add("date", "Date is required")

	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "slot taken",
			err:    fmt.Errorf("%w: duplicate", createBooking.ErrSlotTaken),
			status: http.StatusConflict,
			body:   `{"success":false,"message":"This time slot is already booked"}`,
		},
		{
			name:   "service not found",
			err:    createBooking.ErrServiceNotFound,
			status: http.StatusNotFound,
			body:   `{"success":false,"message":"Service not found"}`,
		},
		{
			name:   "validation",
			err:    verr,
			status: http.StatusBadRequest,
			body:   `{"success":false,"message":"Validation failed","errors":["Date is required"]}`,
		},
		{
			name:   "internal",
			err:    fmt.Errorf("%w: db down", createBooking.ErrInternal),
			status: http.StatusInternalServerError,
			body:   `{"success":false,"message":"Internal server error"}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &fakeUseCase{execute: func(context.Context, *createBooking.Request) (*createBooking.Response, error) {
				return nil, tc.err
			}}
			rec := doRequest(NewHandler(uc, logger.NewNop()), "u-1", `{"service":"s-1"}`)
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestHandle_RequiresIdentityAndValidBody(t *testing.T) {
	uc := &fakeUseCase{}
	h := NewHandler(uc, logger.NewNop())

	assert.Equal(t, http.StatusUnauthorized, doRequest(h, "", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(h, "u-1", `{"service":`).Code)
	assert.Nil(t, uc.got)
}
