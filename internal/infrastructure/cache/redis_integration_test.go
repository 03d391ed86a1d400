//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedisCaches(t *testing.T) {
	client := newRedisClient(t)
	caches := NewRedisCaches(client, time.Minute)
	ctx := context.Background()
	rec := testRecord()

	_, ok, err := caches.Records.Get(ctx, rec.Key())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, caches.Records.Set(ctx, rec))
	got, ok, err := caches.Records.Get(ctx, rec.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.ID, got.ID)
	assert.True(t, rec.Date.Equal(got.Date))
	require.Len(t, got.Batches, 1)
	assert.Equal(t, "b1", got.Batches[0].ID)

	ttl, err := client.TTL(ctx, recordCacheKey(defaultRecordPrefix, rec.Key())).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, caches.Records.Invalidate(ctx, rec.Key()))
	_, ok, err = caches.Records.Get(ctx, rec.Key())
	require.NoError(t, err)
	assert.False(t, ok)

	fresh, err := caches.Idempotency.MarkProcessed(ctx, "alert-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)
	fresh, err = caches.Idempotency.MarkProcessed(ctx, "alert-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, fresh)
	processed, err := caches.Idempotency.IsProcessed(ctx, "alert-1")
	require.NoError(t, err)
	assert.True(t, processed)
}
