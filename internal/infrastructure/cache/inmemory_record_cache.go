package cache

import (
	"context"
	"sync"
	"time"

	"github.com/retailstock/backend/internal/domain/stock"
)

type recordEntry struct {
	record    *stock.DailyInventoryRecord
	expiresAt time.Time
}

// InMemoryRecordCache is a process-local RecordCache for single-instance deployments and tests
type InMemoryRecordCache struct {
	mu      sync.RWMutex
	entries map[string]recordEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryRecordCache creates an empty cache whose entries live for ttl
func NewInMemoryRecordCache(ttl time.Duration) *InMemoryRecordCache {
	return &InMemoryRecordCache{
		entries: make(map[string]recordEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a copy of the cached record
func (c *InMemoryRecordCache) Get(_ context.Context, key stock.RecordKey) (*stock.DailyInventoryRecord, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key.String()]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return e.record.Clone(), true, nil
}

// Set stores a copy of record
func (c *InMemoryRecordCache) Set(_ context.Context, record *stock.DailyInventoryRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[record.Key().String()] = recordEntry{record: record.Clone(), expiresAt: c.now().Add(c.ttl)}
	return nil
}

// Invalidate removes key
func (c *InMemoryRecordCache) Invalidate(_ context.Context, key stock.RecordKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key.String())
	return nil
}

// Close drops all entries
func (c *InMemoryRecordCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]recordEntry)
	return nil
}

// Size returns the number of entries, expired ones included
func (c *InMemoryRecordCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ RecordCache = (*InMemoryRecordCache)(nil)
