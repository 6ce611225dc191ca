package servicecache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

// unreachableClient все команды завершаются ошибкой соединения
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestCachedRepository_FallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	client := unreachableClient()
	defer client.Close()

	repo := New(memory.NewStore().Services(), client, time.Minute, logger.NewNop())

	created, err := repo.Create(ctx, &domain.Service{Name: "Manicure", DurationMinutes: 30, Category: domain.CategoryNails})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Manicure", got.Name)

	created.Name = "Gel manicure"
	_, err = repo.Update(ctx, created)
	require.NoError(t, err)

	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Gel manicure", got.Name)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, memory.ErrServiceNotFound)
}

func TestServiceKey(t *testing.T) {
	assert.Equal(t, "salon:service:abc", serviceKey("abc"))
}
