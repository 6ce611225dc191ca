package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	store *Store
}

// Create сохраняет бронирование, отказывая при занятом активном слоте
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	booking.Date = domain.DateOnly(booking.Date)

	if booking.IsActive() {
		key := keyOf(booking)
		if _, taken := r.store.active[key]; taken {
			return nil, ErrSlotTaken
		}
		r.store.active[key] = booking.ID
	}

	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.store.bookings[booking.ID] = copyBooking(booking)

	return booking, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return copyBooking(b), nil
}

// Find порядок совпадает с PostgreSQL-репозиторием
func (r *BookingRepository) Find(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.store.mu.RLock()
	matched := r.match(filter)
	r.store.mu.RUnlock()

	if filter.Date != nil {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].StartTime.IsBefore(matched[j].StartTime)
		})
	} else {
		sort.SliceStable(matched, func(i, j int) bool {
			if !matched[i].Date.Equal(matched[j].Date) {
				return matched[i].Date.After(matched[j].Date)
			}
			return matched[i].StartTime.IsAfter(matched[j].StartTime)
		})
	}

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*domain.Booking{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

func (r *BookingRepository) Count(ctx context.Context, filter domain.BookingsFilter) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return len(r.match(filter)), nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context, filter domain.BookingsFilter) ([]domain.StatusCount, error) {
	r.store.mu.RLock()
	matched := r.match(filter)
	r.store.mu.RUnlock()

	counts := make(map[domain.BookingStatus]int)
	for _, b := range matched {
		counts[b.Status]++
	}

	result := make([]domain.StatusCount, 0, len(counts))
	for status, count := range counts {
		result = append(result, domain.StatusCount{Status: status, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Status < result[j].Status })

	return result, nil
}

// Cancel освобождает слот и переводит бронирование в cancelled
func (r *BookingRepository) Cancel(ctx context.Context, id string, at time.Time) (*domain.Booking, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if !b.CanBeCancelled() {
		return nil, ErrNotCancellable
	}

	delete(r.store.active, keyOf(b))
	b.Status = domain.StatusCancelled
	b.CancelledAt = &at
	b.UpdatedAt = at

	return copyBooking(b), nil
}

// match вызывается под блокировкой
func (r *BookingRepository) match(filter domain.BookingsFilter) []*domain.Booking {
	var statuses map[domain.BookingStatus]struct{}
	if len(filter.Statuses) > 0 {
		statuses = make(map[domain.BookingStatus]struct{}, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses[s] = struct{}{}
		}
	}

	result := make([]*domain.Booking, 0)
	for _, b := range r.store.bookings {
		if filter.CustomerID != nil && b.CustomerID != *filter.CustomerID {
			continue
		}
		if filter.ServiceID != nil && b.ServiceID != *filter.ServiceID {
			continue
		}
		if filter.Date != nil && !b.Date.Equal(domain.DateOnly(*filter.Date)) {
			continue
		}
		if filter.StartTime != nil && b.StartTime != *filter.StartTime {
			continue
		}
		if statuses != nil {
			if _, ok := statuses[b.Status]; !ok {
				continue
			}
		}
		result = append(result, copyBooking(b))
	}
	return result
}
