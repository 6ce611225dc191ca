package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// ServiceRepository каталог услуг в памяти
type ServiceRepository struct {
	store *Store
}

func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	svc.CreatedAt = now
	svc.UpdatedAt = now
	r.store.services[svc.ID] = copyService(svc)

	return svc, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	svc, ok := r.store.services[id]
	if !ok {
		return nil, ErrServiceNotFound
	}
	return copyService(svc), nil
}

func (r *ServiceRepository) List(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*domain.Service, 0, len(r.store.services))
	for _, svc := range r.store.services {
		if filter.Category != nil && svc.Category != *filter.Category {
			continue
		}
		if filter.Available != nil && svc.Available != *filter.Available {
			continue
		}
		result = append(result, copyService(svc))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Category != result[j].Category {
			return result[i].Category < result[j].Category
		}
		return result[i].Name < result[j].Name
	})

	return result, nil
}

func (r *ServiceRepository) Update(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.services[svc.ID]
	if !ok {
		return nil, ErrServiceNotFound
	}

	updated := copyService(svc)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.store.services[svc.ID] = updated

	return copyService(updated), nil
}

// Delete отказывает, если на услугу ссылается хоть одно бронирование
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.services[id]; !ok {
		return ErrServiceNotFound
	}
	for _, b := range r.store.bookings {
		if b.ServiceID == id {
			return ErrServiceInUse
		}
	}

	delete(r.store.services, id)
	return nil
}
