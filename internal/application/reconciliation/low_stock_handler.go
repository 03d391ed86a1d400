package reconciliation

import (
	"context"
	"fmt"
	"sync"

	"github.com/retailstock/backend/internal/domain/shared"
	"github.com/retailstock/backend/internal/domain/stock"
	"go.uber.org/zap"
)

// LowStockAlert is a product that closed below its reorder threshold
type LowStockAlert struct {
	Location      string `json:"location"`
	BusinessDate  string `json:"business_date"`
	ProductID     string `json:"product_id"`
	ProductName   string `json:"product_name"`
	QuantityAtEnd int64  `json:"quantity_at_end"`
	Threshold     int64  `json:"threshold"`
}

// AlertNotifier delivers low stock alerts to staff
type AlertNotifier interface {
	SendAlert(ctx context.Context, alert LowStockAlert) error
}

// LowStockHandler handles StockBelowThreshold events.
// Alerts are logged and, when a notifier is set, forwarded to it.
type LowStockHandler struct {
	logger   *zap.Logger
	notifier AlertNotifier

	mu     sync.Mutex
	recent []LowStockAlert
	limit  int
}

// NewLowStockHandler creates a handler remembering the last 100 alerts
func NewLowStockHandler(logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{logger: logger, limit: 100}
}

// WithNotifier sets the notifier for sending alerts
func (h *LowStockHandler) WithNotifier(notifier AlertNotifier) *LowStockHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{stock.EventTypeStockBelowThreshold}
}

// Handle processes a StockBelowThreshold event
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*stock.StockBelowThresholdEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}

	alert := LowStockAlert{
		Location:      e.Location(),
		BusinessDate:  e.BusinessDate,
		ProductID:     e.ProductID.String(),
		ProductName:   e.ProductName,
		QuantityAtEnd: e.QuantityAtEnd,
		Threshold:     e.Threshold,
	}
	h.logger.Warn("Stock below reorder threshold",
		zap.String("location", alert.Location),
		zap.String("business_date", alert.BusinessDate),
		zap.String("product", alert.ProductName),
		zap.Int64("quantity_at_end", alert.QuantityAtEnd),
		zap.Int64("threshold", alert.Threshold),
	)
	h.remember(alert)

	if h.notifier != nil {
		if err := h.notifier.SendAlert(ctx, alert); err != nil {
			return fmt.Errorf("failed to send low stock alert: %w", err)
		}
	}
	return nil
}

// Recent returns the remembered alerts, newest last
func (h *LowStockHandler) Recent() []LowStockAlert {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]LowStockAlert(nil), h.recent...)
}

func (h *LowStockHandler) remember(alert LowStockAlert) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recent = append(h.recent, alert)
	if len(h.recent) > h.limit {
		h.recent = h.recent[len(h.recent)-h.limit:]
	}
}

// LowStockKey deduplicates alerts per location, business day and product so
// repeated edits of one day alert once. Other events fall back to their aggregate.
func LowStockKey(event shared.DomainEvent) string {
	if ev, ok := event.(*stock.StockBelowThresholdEvent); ok {
		return "low-stock:" + ev.Location() + "/" + ev.BusinessDate + "/" + ev.ProductID.String()
	}
	return "low-stock:" + event.AggregateID().String()
}

var _ shared.EventHandler = (*LowStockHandler)(nil)
