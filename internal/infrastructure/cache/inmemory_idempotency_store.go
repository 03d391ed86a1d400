package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/retailstock/backend/internal/domain/shared"
)

const (
	sweepInterval = 5 * time.Minute
	// DefaultMarkerRetention keeps markers of yesterday's records while today's are being edited
	DefaultMarkerRetention = 48 * time.Hour
)

// InMemoryIdempotencyStore keeps processed markers grouped by the business day
// found in their key, e.g. "low-stock:nakawa/2025-03-09/<product>".
// A marker lapses after its TTL, and whole days older than the retention are
// dropped on sweep whatever their TTLs. Keys without a day share one bucket.
type InMemoryIdempotencyStore struct {
	mu        sync.Mutex
	days      map[string]map[string]time.Time
	retention time.Duration
	now       func() time.Time
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewInMemoryIdempotencyStore creates a store and starts its sweeper.
// A non-positive retention uses DefaultMarkerRetention.
func NewInMemoryIdempotencyStore(retention time.Duration) *InMemoryIdempotencyStore {
	if retention <= 0 {
		retention = DefaultMarkerRetention
	}
	s := &InMemoryIdempotencyStore{
		days:      make(map[string]map[string]time.Time),
		retention: retention,
		now:       time.Now,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

// MarkProcessed marks id as handled for ttl.
// Returns true if it was newly marked, false if a live marker exists.
func (s *InMemoryIdempotencyStore) MarkProcessed(_ context.Context, id string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	day := businessDayOf(id)
	bucket := s.days[day]
	if bucket == nil {
		bucket = make(map[string]time.Time)
		s.days[day] = bucket
	}
	if expiresAt, ok := bucket[id]; ok && now.Before(expiresAt) {
		return false, nil
	}
	bucket[id] = now.Add(ttl)
	return true, nil
}

// IsProcessed checks whether id carries a live marker
func (s *InMemoryIdempotencyStore) IsProcessed(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, ok := s.days[businessDayOf(id)][id]
	return ok && s.now().Before(expiresAt), nil
}

// Close stops the sweeper. Safe to call more than once.
func (s *InMemoryIdempotencyStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stop)
		<-s.done
	})
	return nil
}

func (s *InMemoryIdempotencyStore) sweepLoop() {
	defer close(s.done)

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep drops days past the retention, then lapsed markers of the days kept
func (s *InMemoryIdempotencyStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := shared.Day(now.Add(-s.retention)).Format(shared.DateLayout)
	for day, bucket := range s.days {
		// layout order is date order
		if day != "" && day < cutoff {
			delete(s.days, day)
			continue
		}
		for id, expiresAt := range bucket {
			if !now.Before(expiresAt) {
				delete(bucket, id)
			}
		}
		if len(bucket) == 0 {
			delete(s.days, day)
		}
	}
}

func (s *InMemoryIdempotencyStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, bucket := range s.days {
		n += len(bucket)
	}
	return n
}

// businessDayOf returns the first YYYY-MM-DD segment of key, or "" when there is none
func businessDayOf(key string) string {
	for _, part := range strings.FieldsFunc(key, func(r rune) bool { return r == '/' || r == ':' }) {
		if len(part) == len(shared.DateLayout) {
			if _, err := time.Parse(shared.DateLayout, part); err == nil {
				return part
			}
		}
	}
	return ""
}

var _ IdempotencyStore = (*InMemoryIdempotencyStore)(nil)
