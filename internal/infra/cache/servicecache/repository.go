// Package servicecache is a Redis read-through cache in front of the
// service catalog. Cache failures never fail the call; the underlying
// repository is used instead.
package servicecache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const keyPrefix = "salon:service:"

func serviceKey(id string) string {
	return keyPrefix + id
}

// CachedRepository кэширует GetByID, запись инвалидирует ключ
type CachedRepository struct {
	next   Repository
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

func New(next Repository, client *redis.Client, ttl time.Duration, logger Logger) *CachedRepository {
	return &CachedRepository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *CachedRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	data, err := r.client.Get(ctx, serviceKey(id)).Bytes()
	if err == nil {
		var svc domain.Service
		if jsonErr := json.Unmarshal(data, &svc); jsonErr == nil {
			return &svc, nil
		}
		r.logger.Warn("servicecache: corrupt entry for %s, reloading", id)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("servicecache: get %s failed: %v", id, err)
	}

	svc, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store(ctx, svc)
	return svc, nil
}

// List не кэшируется: фильтры дают слишком много комбинаций
func (r *CachedRepository) List(ctx context.Context, filter domain.ServicesFilter) ([]*domain.Service, error) {
	return r.next.List(ctx, filter)
}

func (r *CachedRepository) Create(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	created, err := r.next.Create(ctx, svc)
	if err != nil {
		return nil, err
	}
	r.store(ctx, created)
	return created, nil
}

func (r *CachedRepository) Update(ctx context.Context, svc *domain.Service) (*domain.Service, error) {
	r.invalidate(ctx, svc.ID)

	updated, err := r.next.Update(ctx, svc)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, svc.ID)
	return updated, nil
}

func (r *CachedRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedRepository) store(ctx context.Context, svc *domain.Service) {
	data, err := json.Marshal(svc)
	if err != nil {
		r.logger.Warn("servicecache: marshal %s failed: %v", svc.ID, err)
		return
	}
	if err := r.client.Set(ctx, serviceKey(svc.ID), data, r.ttl).Err(); err != nil {
		r.logger.Warn("servicecache: set %s failed: %v", svc.ID, err)
	}
}

func (r *CachedRepository) invalidate(ctx context.Context, id string) {
	if err := r.client.Del(ctx, serviceKey(id)).Err(); err != nil {
		r.logger.Warn("servicecache: del %s failed: %v", id, err)
	}
}
