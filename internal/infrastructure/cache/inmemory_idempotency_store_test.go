package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, now *time.Time) *InMemoryIdempotencyStore {
	t.Helper()
	store := NewInMemoryIdempotencyStore(48 * time.Hour)
	store.now = func() time.Time { return *now }
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	now := time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC)
	store := newTestStore(t, &now)
	ctx := context.Background()

	isNew, err := store.MarkProcessed(ctx, "low-stock:nakawa/2025-03-09/p1", time.Hour)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = store.MarkProcessed(ctx, "low-stock:nakawa/2025-03-09/p1", time.Hour)
	require.NoError(t, err)
	assert.False(t, isNew, "second mark must report a duplicate")

	processed, err := store.IsProcessed(ctx, "low-stock:nakawa/2025-03-09/p1")
	require.NoError(t, err)
	assert.True(t, processed)

	processed, err = store.IsProcessed(ctx, "low-stock:kireka/2025-03-09/p1")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestInMemoryIdempotencyStore_TTL(t *testing.T) {
	now := time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC)
	store := newTestStore(t, &now)
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "short", time.Minute)
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)

	processed, err := store.IsProcessed(ctx, "short")
	require.NoError(t, err)
	assert.False(t, processed)

	isNew, err := store.MarkProcessed(ctx, "short", time.Minute)
	require.NoError(t, err)
	assert.True(t, isNew, "lapsed marker can be set again")
}

func TestInMemoryIdempotencyStore_SweepDropsOldDays(t *testing.T) {
	now := time.Date(2025, 3, 9, 18, 0, 0, 0, time.UTC)
	store := newTestStore(t, &now)
	ctx := context.Background()

	for _, key := range []string{
		"low-stock:nakawa/2025-03-05/p1",
		"low-stock:nakawa/2025-03-08/p1",
		"low-stock:nakawa/2025-03-09/p1",
		"event-without-day",
	} {
		_, err := store.MarkProcessed(ctx, key, 30*24*time.Hour)
		require.NoError(t, err)
	}
	_, err := store.MarkProcessed(ctx, "lapsed:2025-03-09", time.Minute)
	require.NoError(t, err)

	now = now.Add(time.Hour)
	store.sweep()

	assert.Equal(t, 3, store.size())
	processed, _ := store.IsProcessed(ctx, "low-stock:nakawa/2025-03-05/p1")
	assert.False(t, processed, "days past the retention are dropped whatever the TTL")
	processed, _ = store.IsProcessed(ctx, "low-stock:nakawa/2025-03-08/p1")
	assert.True(t, processed)
	processed, _ = store.IsProcessed(ctx, "event-without-day")
	assert.True(t, processed)
}

func TestBusinessDayOf(t *testing.T) {
	assert.Equal(t, "2025-03-09", businessDayOf("low-stock:nakawa/2025-03-09/p1"))
	assert.Equal(t, "2025-03-09", businessDayOf("lapsed:2025-03-09"))
	assert.Equal(t, "", businessDayOf("low-stock:3f0c2a4e-1111-4222-8333-944455556666"))
	assert.Equal(t, "", businessDayOf("nakawa/2025-13-40/p1"))
}

func TestInMemoryIdempotencyStore_ConcurrentMark(t *testing.T) {
	store := NewInMemoryIdempotencyStore(0)
	defer store.Close()

	const workers = 50
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fresh int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.MarkProcessed(context.Background(), "low-stock:nakawa/2025-03-09/p1", time.Hour)
			if err == nil && ok {
				mu.Lock()
				fresh++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, fresh)
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore(0)
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
