package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/retailstock/backend/internal/domain/stock"
)

const defaultRecordPrefix = "retail:record:"

// RedisRecordCache stores daily records as JSON strings with a TTL
type RedisRecordCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisRecordCache creates a cache on an existing client
func NewRedisRecordCache(client *redis.Client, ttl time.Duration) *RedisRecordCache {
	return &RedisRecordCache{client: client, keyPrefix: defaultRecordPrefix, ttl: ttl}
}

// Get loads a cached record
func (c *RedisRecordCache) Get(ctx context.Context, key stock.RecordKey) (*stock.DailyInventoryRecord, bool, error) {
	raw, err := c.client.Get(ctx, recordCacheKey(c.keyPrefix, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached record %s: %w", key, err)
	}

	var rec stock.DailyInventoryRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		// a stale layout is a miss; the next Set overwrites it
		return nil, false, nil
	}
	return &rec, true, nil
}

// Set stores record under its key
func (c *RedisRecordCache) Set(ctx context.Context, record *stock.DailyInventoryRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", record.Key(), err)
	}
	if err := c.client.Set(ctx, recordCacheKey(c.keyPrefix, record.Key()), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache record %s: %w", record.Key(), err)
	}
	return nil
}

// Invalidate removes the cached record for key
func (c *RedisRecordCache) Invalidate(ctx context.Context, key stock.RecordKey) error {
	return c.client.Del(ctx, recordCacheKey(c.keyPrefix, key)).Err()
}

// Close is a no-op; the client is owned by the factory
func (c *RedisRecordCache) Close() error {
	return nil
}

var _ RecordCache = (*RedisRecordCache)(nil)
