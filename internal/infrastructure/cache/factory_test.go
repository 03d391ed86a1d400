package cache

import (
	"context"
	"testing"
	"time"

	"github.com/retailstock/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Disabled(t *testing.T) {
	caches := New(context.Background(), config.RedisConfig{RecordTTL: time.Hour}, zap.NewNop())
	defer caches.Close()

	assert.False(t, caches.UsesRedis())
	assert.IsType(t, &InMemoryRecordCache{}, caches.Records)
	assert.IsType(t, &InMemoryIdempotencyStore{}, caches.Idempotency)
	assert.NoError(t, caches.Ping(context.Background()))
}

func TestNew_FallsBackWhenUnreachable(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	caches := New(ctx, config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1, RecordTTL: time.Hour}, zap.New(core))
	defer caches.Close()

	assert.False(t, caches.UsesRedis())
	assert.Equal(t, 1, logs.FilterMessageSnippet("falling back").Len())
}
