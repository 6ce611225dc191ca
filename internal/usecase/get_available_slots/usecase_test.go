package get_available_slots

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

type failingBookings struct{}

func (failingBookings) Find(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, errors.New("db down")
}

func setup(t *testing.T) (*memory.Store, *domain.Service) {
	t.Helper()
	store := memory.NewStore()
	svc, err := store.Services().Create(context.Background(), &domain.Service{
		Name:            "Haircut",
		DurationMinutes: 45,
		Category:        domain.CategoryHair,
		Available:       true,
	})
	require.NoError(t, err)
	return store, svc
}

func book(t *testing.T, store *memory.Store, serviceID, date, start string, status domain.BookingStatus) {
	t.Helper()
	d, err := domain.ParseDate(date)
	require.NoError(t, err)
	_, err = store.Bookings().Create(context.Background(), &domain.Booking{
		CustomerID: "u-1",
		ServiceID:  serviceID,
		Date:       d,
		StartTime:  types.MustParse(start),
		EndTime:    types.MustParse(start),
		Status:     status,
	})
	require.NoError(t, err)
}

func TestUseCase_Execute_Partition(t *testing.T) {
	store, svc := setup(t)
	book(t, store, svc.ID, "2025-06-10", "09:00", domain.StatusConfirmed)
	book(t, store, svc.ID, "2025-06-10", "09:30", domain.StatusPending)
	book(t, store, svc.ID, "2025-06-10", "10:00", domain.StatusCancelled)
	book(t, store, svc.ID, "2025-06-11", "11:00", domain.StatusConfirmed)
	book(t, store, svc.ID, "2025-06-10", "12:15", domain.StatusConfirmed) // вне сетки

	uc := NewUseCase(store.Bookings(), store.Services(), domain.DefaultOperatingHours(), logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: svc.ID, Date: "2025-06-10"})
	require.NoError(t, err)

	assert.Equal(t, 45, resp.DurationMinutes)
	assert.Len(t, resp.AllSlots, 18)
	assert.Equal(t, []types.TimeString{"09:00", "09:30"}, resp.BookedSlots)
	assert.Len(t, resp.AvailableSlots, 16)
	assert.Equal(t, types.TimeString("10:00"), resp.AvailableSlots[0], "cancelled booking frees the slot")
	assert.Contains(t, resp.AvailableSlots, types.TimeString("11:00"), "other dates do not count")
	assert.Equal(t, len(resp.AllSlots), len(resp.AvailableSlots)+len(resp.BookedSlots))
}

func TestUseCase_Execute_NoBookings(t *testing.T) {
	store, svc := setup(t)
	uc := NewUseCase(store.Bookings(), store.Services(), domain.DefaultOperatingHours(), logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: svc.ID, Date: "2025-06-10"})
	require.NoError(t, err)
	assert.Equal(t, resp.AllSlots, resp.AvailableSlots)
	assert.Empty(t, resp.BookedSlots)
}

func TestUseCase_Execute_FullyBooked(t *testing.T) {
	store, svc := setup(t)
	hours := domain.OperatingHours{Open: "09:00", Close: "10:00", StepMinutes: 30, Overflow: domain.OverflowAllow}
	book(t, store, svc.ID, "2025-06-10", "09:00", domain.StatusConfirmed)
	book(t, store, svc.ID, "2025-06-10", "09:30", domain.StatusConfirmed)

	uc := NewUseCase(store.Bookings(), store.Services(), hours, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: svc.ID, Date: "2025-06-10"})
	require.NoError(t, err)
	assert.Empty(t, resp.AvailableSlots)
	assert.Len(t, resp.BookedSlots, 2)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	store, svc := setup(t)
	uc := NewUseCase(store.Bookings(), store.Services(), domain.DefaultOperatingHours(), logger.NewNop())
	ctx := context.Background()

	t.Run("missing fields", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{})
		require.ErrorIs(t, err, ErrInvalidInput)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Len(t, verr.Fields, 2)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{ServiceID: svc.ID, Date: "10.06.2025"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown service", func(t *testing.T) {
		_, err := uc.Execute(ctx, &Request{ServiceID: "nope", Date: "2025-06-10"})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("storage failure", func(t *testing.T) {
		broken := NewUseCase(failingBookings{}, store.Services(), domain.DefaultOperatingHours(), logger.NewNop())
		_, err := broken.Execute(ctx, &Request{ServiceID: svc.ID, Date: "2025-06-10"})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestTakenStartTimes_SkipsInactive(t *testing.T) {
	taken := takenStartTimes([]*domain.Booking{
		{StartTime: "09:00", Status: domain.StatusConfirmed},
		{StartTime: "10:00", Status: domain.StatusCompleted},
	})
	assert.Len(t, taken, 1)
	_, ok := taken["09:00"]
	assert.True(t, ok)
}
