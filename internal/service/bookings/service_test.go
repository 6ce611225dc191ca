package bookings

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeUserClient struct {
	getCustomer func(ctx context.Context, id string) (*domain.Customer, error)
}

func (f *fakeUserClient) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return f.getCustomer(ctx, id)
}

type fakePublisher struct {
	mu        sync.Mutex
	cancelled []string
	err       error
}

func (f *fakePublisher) PublishBookingCancelled(_ context.Context, b *domain.Booking, by string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, b.ID+":"+by)
	return f.err
}

type fakeMetrics struct{ cancelled int32 }

func (f *fakeMetrics) IncBookingCancelled() { atomic.AddInt32(&f.cancelled, 1) }

type fixture struct {
	svc       *Service
	store     *memory.Store
	publisher *fakePublisher
	metrics   *fakeMetrics
	service   *domain.Service
}

var (
	owner    = domain.Actor{UserID: "u-1", Capability: domain.CapabilityCustomer}
	stranger = domain.Actor{UserID: "u-2", Capability: domain.CapabilityCustomer}
	admin    = domain.Actor{UserID: "admin", Capability: domain.CapabilityAdministrator}

	bookingDay = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	svcEntity, err := store.Services().Create(context.Background(), &domain.Service{
		Name:            "Haircut",
		DurationMinutes: 60,
		Price:           35,
		Category:        domain.CategoryHair,
		Available:       true,
	})
	require.NoError(t, err)

	users := &fakeUserClient{getCustomer: func(_ context.Context, id string) (*domain.Customer, error) {
		return &domain.Customer{ID: id, Name: "Jane Doe", Email: "jane@example.com"}, nil
	}}
	publisher := &fakePublisher{}
	metrics := &fakeMetrics{}

	svc := NewService(store.Bookings(), store.Services(), users, publisher, metrics, logger.NewNop())
	svc.timeProvider = fixedTime{now: bookingDay.Add(-24 * time.Hour)}

	return &fixture{svc: svc, store: store, publisher: publisher, metrics: metrics, service: svcEntity}
}

func (f *fixture) book(t *testing.T, customerID, start string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	startTime := types.MustParse(start)
	end, err := startTime.AddMinutes(f.service.DurationMinutes)
	require.NoError(t, err)

	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		CustomerID: customerID,
		ServiceID:  f.service.ID,
		Date:       bookingDay,
		StartTime:  startTime,
		EndTime:    end,
		Status:     status,
	})
	require.NoError(t, err)
	return b
}

func TestService_Cancel_ByOwner(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, owner.UserID, "10:00", domain.StatusConfirmed)

	resp, err := f.svc.Cancel(context.Background(), b.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.NotNil(t, resp.CancelledAt)
	assert.Equal(t, "Jane Doe", resp.Customer.Name)
	assert.Equal(t, "Haircut", resp.Service.Name)
	assert.Equal(t, int32(1), f.metrics.cancelled)
	assert.Equal(t, []string{b.ID + ":u-1"}, f.publisher.cancelled)

	// слот освобождён
	again := f.book(t, stranger.UserID, "10:00", domain.StatusConfirmed)
	assert.NotEqual(t, b.ID, again.ID)
}

func TestService_Cancel_ByAdmin(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, owner.UserID, "10:00", domain.StatusPending)

	resp, err := f.svc.Cancel(context.Background(), b.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, []string{b.ID + ":admin"}, f.publisher.cancelled)
}

func TestService_Cancel_Forbidden(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, owner.UserID, "10:00", domain.StatusConfirmed)

	_, err := f.svc.Cancel(context.Background(), b.ID, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	stored, err := f.store.Bookings().GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, stored.Status)
}

func TestService_Cancel_NotCancellable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, owner.UserID, "10:00", domain.StatusConfirmed)

	_, err := f.svc.Cancel(ctx, b.ID, owner)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, b.ID, owner)
	assert.ErrorIs(t, err, ErrCannotCancel)

	done := f.book(t, owner.UserID, "11:00", domain.StatusCompleted)
	_, err = f.svc.Cancel(ctx, done.ID, admin)
	assert.ErrorIs(t, err, ErrCannotCancel)

	stored, err := f.store.Bookings().GetByID(ctx, done.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.Equal(t, int32(1), f.metrics.cancelled)
}

func TestService_Cancel_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Cancel(context.Background(), "missing", admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestService_Cancel_Concurrent(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, owner.UserID, "10:00", domain.StatusConfirmed)

	const workers = 10
	var ok, rejected int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Cancel(context.Background(), b.ID, owner)
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case errors.Is(err, ErrCannotCancel):
				atomic.AddInt32(&rejected, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(workers-1), rejected)
	assert.Equal(t, int32(1), f.metrics.cancelled)
}

func TestService_Cancel_PublishFailureIgnored(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = errors.New("broker down")
	b := f.book(t, owner.UserID, "10:00", domain.StatusConfirmed)

	resp, err := f.svc.Cancel(context.Background(), b.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
}

func TestService_GetByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, owner.UserID, "10:00", domain.StatusConfirmed)

	resp, err := f.svc.GetByID(ctx, b.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)
	assert.Equal(t, "2025-06-10", resp.Date)
	assert.Equal(t, "confirmed", resp.Status)

	_, err = f.svc.GetByID(ctx, b.ID, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, b.ID, admin)
	assert.NoError(t, err)
}

func TestService_GetByID_PastBookingReadsCompleted(t *testing.T) {
	f := newFixture(t)
	b := f.book(t, owner.UserID, "10:00", domain.StatusConfirmed)
	f.svc.timeProvider = fixedTime{now: bookingDay.Add(12 * time.Hour)}

	resp, err := f.svc.GetByID(context.Background(), b.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	// отображаемый статус не влияет на возможность отмены
	_, err = f.svc.Cancel(context.Background(), b.ID, owner)
	assert.NoError(t, err)
}

func TestService_GetByID_UserServiceDegraded(t *testing.T) {
	f := newFixture(t)
	f.svc.userClient = &fakeUserClient{getCustomer: func(context.Context, string) (*domain.Customer, error) {
		return nil, errors.New("timeout")
	}}
	b := f.book(t, owner.UserID, "10:00", domain.StatusConfirmed)

	resp, err := f.svc.GetByID(context.Background(), b.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, &models.CustomerResponse{ID: owner.UserID}, resp.Customer)
}

func TestService_GetCustomerBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, owner.UserID, "09:00", domain.StatusConfirmed)
	cancelled := f.book(t, owner.UserID, "10:00", domain.StatusConfirmed)
	f.book(t, owner.UserID, "11:00", domain.StatusConfirmed)
	f.book(t, stranger.UserID, "12:00", domain.StatusConfirmed)
	_, err := f.svc.Cancel(ctx, cancelled.ID, owner)
	require.NoError(t, err)

	resp, err := f.svc.GetCustomerBookings(ctx, &models.GetCustomerBookingsRequest{CustomerID: owner.UserID, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
	assert.Equal(t, models.Pagination{Page: 1, Limit: 2, Total: 3, Pages: 2}, resp.Pagination)
	assert.Equal(t, map[string]int{"confirmed": 2, "cancelled": 1}, resp.Stats)
	assert.Equal(t, "Jane Doe", resp.Bookings[0].Customer.Name)

	onlyCancelled, err := f.svc.GetCustomerBookings(ctx, &models.GetCustomerBookingsRequest{
		CustomerID: owner.UserID,
		Status:     ptr.Ptr("cancelled"),
	})
	require.NoError(t, err)
	require.Len(t, onlyCancelled.Bookings, 1)
	assert.Equal(t, cancelled.ID, onlyCancelled.Bookings[0].ID)
	assert.Equal(t, domain.DefaultPageLimit, onlyCancelled.Pagination.Limit)

	_, err = f.svc.GetCustomerBookings(ctx, &models.GetCustomerBookingsRequest{
		CustomerID: owner.UserID,
		Status:     ptr.Ptr("archived"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, owner.UserID, "14:00", domain.StatusConfirmed)
	f.book(t, stranger.UserID, "09:30", domain.StatusConfirmed)

	_, err := f.svc.List(ctx, owner, &models.ListBookingsRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.svc.List(ctx, admin, &models.ListBookingsRequest{Date: ptr.Ptr("2025-06-10")})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, "09:30", resp.Bookings[0].StartTime)
	assert.Equal(t, "14:00", resp.Bookings[1].StartTime)

	_, err = f.svc.List(ctx, admin, &models.ListBookingsRequest{Date: ptr.Ptr("10/06/2025")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	limited, err := f.svc.List(ctx, admin, &models.ListBookingsRequest{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPageLimit, limited.Pagination.Limit)
}
