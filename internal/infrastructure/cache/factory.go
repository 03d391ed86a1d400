package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/retailstock/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const pingTimeout = 5 * time.Second

// Caches bundles the stores the service needs; all share one Redis client when Redis is used
type Caches struct {
	Records     RecordCache
	Idempotency IdempotencyStore
	client      *redis.Client
}

// Close releases the stores and the shared client
func (c *Caches) Close() error {
	_ = c.Records.Close()
	_ = c.Idempotency.Close()
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// UsesRedis reports whether the stores are backed by Redis
func (c *Caches) UsesRedis() bool {
	return c.client != nil
}

// Ping checks the Redis connection; in-memory stores are always healthy
func (c *Caches) Ping(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// New builds the caches from configuration. When Redis is disabled or unreachable
// the in-memory implementations are used, so a single instance keeps working.
func New(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) *Caches {
	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory caches")
		return inMemoryCaches(cfg.RecordTTL)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		logger.Warn("Redis unavailable, falling back to in-memory caches; alerts may repeat across instances",
			zap.String("addr", client.Options().Addr),
			zap.Error(err),
		)
		return inMemoryCaches(cfg.RecordTTL)
	}

	logger.Info("Using Redis caches", zap.String("addr", client.Options().Addr))
	return NewRedisCaches(client, cfg.RecordTTL)
}

// NewRedisCaches builds Redis-backed caches on an existing client
func NewRedisCaches(client *redis.Client, recordTTL time.Duration) *Caches {
	return &Caches{
		Records:     NewRedisRecordCache(client, recordTTL),
		Idempotency: NewRedisIdempotencyStore(client, ""),
		client:      client,
	}
}

func inMemoryCaches(recordTTL time.Duration) *Caches {
	return &Caches{
		Records:     NewInMemoryRecordCache(recordTTL),
		Idempotency: NewInMemoryIdempotencyStore(DefaultMarkerRetention),
	}
}
