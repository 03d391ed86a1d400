// Package cache keeps hot daily records and processed-event markers close to the service.
package cache

import (
	"context"
	"time"

	"github.com/retailstock/backend/internal/domain/stock"
)

// RecordCache caches daily records by their key.
// A miss is reported with ok=false and a nil error.
type RecordCache interface {
	Get(ctx context.Context, key stock.RecordKey) (record *stock.DailyInventoryRecord, ok bool, err error)
	Set(ctx context.Context, record *stock.DailyInventoryRecord) error
	Invalidate(ctx context.Context, key stock.RecordKey) error
	Close() error
}

// IdempotencyStore remembers which events or alerts were already handled
type IdempotencyStore interface {
	// MarkProcessed returns true when id was not yet marked
	MarkProcessed(ctx context.Context, id string, ttl time.Duration) (bool, error)
	IsProcessed(ctx context.Context, id string) (bool, error)
	Close() error
}

func recordCacheKey(prefix string, key stock.RecordKey) string {
	return prefix + key.String()
}
