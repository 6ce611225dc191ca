package create_booking

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type fakeUsers struct {
	err error
}

func (f fakeUsers) GetCustomer(_ context.Context, id string) (*domain.Customer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Customer{ID: id, Name: "Jane", Email: "jane@example.com"}, nil
}

type fakePublisher struct {
	mu      sync.Mutex
	created []string
	err     error
}

func (p *fakePublisher) PublishBookingCreated(_ context.Context, b *domain.Booking) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, b.ID)
	return p.err
}

type fakeMetrics struct {
	created   int32
	precheck  int32
	constrain int32
}

func (m *fakeMetrics) IncBookingCreated() { atomic.AddInt32(&m.created, 1) }

func (m *fakeMetrics) IncBookingConflict(source string) {
	switch source {
	case metrics.ConflictSourcePrecheck:
		atomic.AddInt32(&m.precheck, 1)
	case metrics.ConflictSourceConstraint:
		atomic.AddInt32(&m.constrain, 1)
	}
}

// blindBookings пропускает предварительную проверку, оставляя решение уникальному ограничению
type blindBookings struct {
	*memory.BookingRepository
}

func (blindBookings) Find(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, nil
}

type fixture struct {
	store     *memory.Store
	service   *domain.Service
	publisher *fakePublisher
	metrics   *fakeMetrics
}

func newFixture(t *testing.T, duration int) *fixture {
	t.Helper()
	store := memory.NewStore()
	svc, err := store.Services().Create(context.Background(), &domain.Service{
		Name:            "Haircut",
		DurationMinutes: duration,
		Price:           40,
		Category:        domain.CategoryHair,
		Available:       true,
	})
	require.NoError(t, err)
	return &fixture{store: store, service: svc, publisher: &fakePublisher{}, metrics: &fakeMetrics{}}
}

func (f *fixture) useCase(bookings BookingRepository, users UserServiceClient, hours domain.OperatingHours) *UseCase {
	return NewUseCase(bookings, f.store.Services(), users, f.publisher, f.metrics, hours, logger.NewNop())
}

func (f *fixture) request(customer, start string) *Request {
	return &Request{CustomerID: customer, ServiceID: f.service.ID, Date: "2025-06-10", StartTime: start}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t, 45)
	uc := f.useCase(f.store.Bookings(), fakeUsers{}, domain.DefaultOperatingHours())

	req := f.request("u-1", "09:00")
	req.Notes = ptr.Ptr("  first visit  ")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Booking.ID)
	assert.Equal(t, types.TimeString("09:45"), resp.Booking.EndTime)
	assert.Equal(t, domain.StatusConfirmed, resp.Booking.Status)
	assert.Equal(t, "first visit", *resp.Booking.Notes)
	assert.Equal(t, "Haircut", resp.Service.Name)
	assert.Equal(t, "Jane", resp.Customer.Name)
	assert.Equal(t, []string{resp.Booking.ID}, f.publisher.created)
	assert.Equal(t, int32(1), f.metrics.created)
}

func TestUseCase_Execute_PrecheckConflict(t *testing.T) {
	f := newFixture(t, 45)
	uc := f.useCase(f.store.Bookings(), fakeUsers{}, domain.DefaultOperatingHours())
	ctx := context.Background()

	_, err := uc.Execute(ctx, f.request("u-1", "10:00"))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, f.request("u-2", "10:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, int32(1), f.metrics.precheck)

	// другое время, та же услуга
	_, err = uc.Execute(ctx, f.request("u-2", "10:30"))
	assert.NoError(t, err)
}

func TestUseCase_Execute_ConstraintConflictMapsToSameError(t *testing.T) {
	f := newFixture(t, 45)
	uc := f.useCase(blindBookings{f.store.Bookings()}, fakeUsers{}, domain.DefaultOperatingHours())
	ctx := context.Background()

	_, err := uc.Execute(ctx, f.request("u-1", "11:00"))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, f.request("u-2", "11:00"))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NotErrorIs(t, err, storage.ErrSlotTaken)
	assert.Equal(t, int32(1), f.metrics.constrain)
}

func TestUseCase_Execute_ConcurrentDoubleBooking(t *testing.T) {
	f := newFixture(t, 30)
	uc := f.useCase(f.store.Bookings(), fakeUsers{}, domain.DefaultOperatingHours())

	const clients = 25
	var wg sync.WaitGroup
	var ok, taken int32

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), f.request("u", "14:00"))
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case errors.Is(err, ErrSlotTaken):
				atomic.AddInt32(&taken, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(clients-1), taken)

	date, err := domain.ParseDate("2025-06-10")
	require.NoError(t, err)
	count, err := f.store.Bookings().Count(context.Background(), domain.SlotFilter(f.service.ID, date, "14:00"))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	f := newFixture(t, 45)
	uc := f.useCase(f.store.Bookings(), fakeUsers{}, domain.DefaultOperatingHours())
	ctx := context.Background()

	t.Run("all required fields missing", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{CustomerID: "u-1"})
		require.ErrorIs(t, err, ErrInvalidInput)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"Service is required", "Date is required", "Start time is required"}, verr.Messages())
	})

	t.Run("malformed start time", func(t *testing.T) {
		for _, start := range []string{"9:00", "24:00", "09:60", "0900", "09:00:00"} {
			_, err := uc.Execute(ctx, f.request("u-1", start))
			assert.ErrorIs(t, err, ErrInvalidInput, start)
		}
	})

	t.Run("notes too long", func(t *testing.T) {
		req := f.request("u-1", "09:00")
		long := make([]rune, domain.MaxNotesLength+1)
		for i := range long {
			long[i] = 'x'
		}
		req.Notes = ptr.Ptr(string(long))
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown service", func(t *testing.T) {
		req := f.request("u-1", "09:00")
		req.ServiceID = "missing"
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestUseCase_Execute_MidnightAndOverflow(t *testing.T) {
	ctx := context.Background()

	t.Run("crossing midnight is rejected", func(t *testing.T) {
		f := newFixture(t, 120)
		uc := f.useCase(f.store.Bookings(), fakeUsers{}, domain.DefaultOperatingHours())
		_, err := uc.Execute(ctx, f.request("u-1", "23:00"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("overflow allowed by default", func(t *testing.T) {
		f := newFixture(t, 60)
		uc := f.useCase(f.store.Bookings(), fakeUsers{}, domain.DefaultOperatingHours())
		resp, err := uc.Execute(ctx, f.request("u-1", "17:30"))
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("18:30"), resp.Booking.EndTime)
	})

	t.Run("overflow rejected by policy", func(t *testing.T) {
		f := newFixture(t, 60)
		hours := domain.DefaultOperatingHours()
		hours.Overflow = domain.OverflowReject
		uc := f.useCase(f.store.Bookings(), fakeUsers{}, hours)

		_, err := uc.Execute(ctx, f.request("u-1", "17:30"))
		assert.ErrorIs(t, err, ErrInvalidInput)

		resp, err := uc.Execute(ctx, f.request("u-1", "17:00"))
		require.NoError(t, err)
		assert.Equal(t, types.TimeString("18:00"), resp.Booking.EndTime)
	})
}

func TestUseCase_Execute_Degradation(t *testing.T) {
	f := newFixture(t, 45)
	f.publisher.err = errors.New("kafka down")
	uc := f.useCase(f.store.Bookings(), fakeUsers{err: errors.New("user service down")}, domain.DefaultOperatingHours())

	resp, err := uc.Execute(context.Background(), f.request("u-9", "15:00"))
	require.NoError(t, err)
	assert.Equal(t, &domain.Customer{ID: "u-9"}, resp.Customer)
}
