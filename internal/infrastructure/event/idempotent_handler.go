package event

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/retailstock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Marker records that a key has been handled. cache.IdempotencyStore satisfies it.
type Marker interface {
	MarkProcessed(ctx context.Context, id string, ttl time.Duration) (bool, error)
}

// KeyFunc derives the deduplication key of an event
type KeyFunc func(shared.DomainEvent) string

// ByEventID deduplicates redelivered events
func ByEventID(ev shared.DomainEvent) string {
	return "event:" + ev.EventID().String()
}

// IdempotencyStats is a snapshot of an IdempotentHandler's counters
type IdempotencyStats struct {
	Processed int64 `json:"processed"`
	Duplicate int64 `json:"duplicate"`
	Failed    int64 `json:"failed"`
}

// IdempotentHandler passes an event to the wrapped handler only the first time its key is seen
type IdempotentHandler struct {
	handler shared.EventHandler
	store   Marker
	keyOf   KeyFunc
	ttl     time.Duration
	logger  *zap.Logger

	processed atomic.Int64
	duplicate atomic.Int64
	failed    atomic.Int64
}

// NewIdempotentHandler wraps handler. A nil keyOf deduplicates by event id.
func NewIdempotentHandler(handler shared.EventHandler, store Marker, keyOf KeyFunc, ttl time.Duration, logger *zap.Logger) *IdempotentHandler {
	if keyOf == nil {
		keyOf = ByEventID
	}
	return &IdempotentHandler{handler: handler, store: store, keyOf: keyOf, ttl: ttl, logger: logger}
}

// EventTypes returns the wrapped handler's event types
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle forwards ev unless its key was already marked.
// When the store is unreachable the event is handled anyway; a repeat is better than a loss.
func (h *IdempotentHandler) Handle(ctx context.Context, ev shared.DomainEvent) error {
	key := h.keyOf(ev)

	fresh, err := h.store.MarkProcessed(ctx, key, h.ttl)
	switch {
	case err != nil:
		h.logger.Warn("Idempotency check failed, handling anyway",
			zap.String("key", key),
			zap.String("event_type", ev.EventType()),
			zap.Error(err),
		)
	case !fresh:
		h.duplicate.Add(1)
		h.logger.Debug("Duplicate skipped", zap.String("key", key))
		return nil
	}

	if err := h.handler.Handle(ctx, ev); err != nil {
		// the marker stays until ttl so a failing handler is not retried in a tight loop
		h.failed.Add(1)
		return err
	}
	h.processed.Add(1)
	return nil
}

// Stats returns the handler's counters
func (h *IdempotentHandler) Stats() IdempotencyStats {
	return IdempotencyStats{
		Processed: h.processed.Load(),
		Duplicate: h.duplicate.Load(),
		Failed:    h.failed.Load(),
	}
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)
