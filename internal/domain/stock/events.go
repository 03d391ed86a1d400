package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeDailyRecord = "DailyInventoryRecord"

// Event type constants
const (
	EventTypeDayOpened            = "DayOpened"
	EventTypeRestockApplied       = "RestockApplied"
	EventTypeEndingQuantityEdited = "EndingQuantityEdited"
	EventTypeDaySettled           = "DaySettled"
	EventTypeStockBelowThreshold  = "StockBelowThreshold"
)

// DayOpenedEvent is raised the first time a record is opened for a product, location and day
type DayOpenedEvent struct {
	shared.BaseDomainEvent
	ProductID       uuid.UUID `json:"product_id"`
	BusinessDate    string    `json:"business_date"`
	QtyYesterday    int64     `json:"qty_yesterday"`
	QuantityAtStart int64     `json:"quantity_at_start"`
}

// NewDayOpenedEvent creates a new DayOpenedEvent
func NewDayOpenedEvent(r *DailyInventoryRecord) *DayOpenedEvent {
	return &DayOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDayOpened, AggregateTypeDailyRecord, r.ID, r.Location),
		ProductID:       r.ProductID,
		BusinessDate:    r.Date.Format(shared.DateLayout),
		QtyYesterday:    r.QtyYesterday,
		QuantityAtStart: r.QuantityAtStart,
	}
}

// RestockAppliedEvent is raised when a batch is received during the day
type RestockAppliedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID `json:"product_id"`
	BusinessDate string    `json:"business_date"`
	BatchID      string    `json:"batch_id"`
	Quantity     int64     `json:"quantity"`
	ExpiryDate   time.Time `json:"expiry_date"`
}

// NewRestockAppliedEvent creates a new RestockAppliedEvent
func NewRestockAppliedEvent(r *DailyInventoryRecord, batch Batch) *RestockAppliedEvent {
	return &RestockAppliedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRestockApplied, AggregateTypeDailyRecord, r.ID, r.Location),
		ProductID:       r.ProductID,
		BusinessDate:    r.Date.Format(shared.DateLayout),
		BatchID:         batch.ID,
		Quantity:        batch.OriginalQuantity,
		ExpiryDate:      batch.ExpiryDate,
	}
}

// EndingQuantityEditedEvent is raised after the ending ledger has been counted
type EndingQuantityEditedEvent struct {
	shared.BaseDomainEvent
	ProductID     uuid.UUID       `json:"product_id"`
	BusinessDate  string          `json:"business_date"`
	QuantityAtEnd int64           `json:"quantity_at_end"`
	QuantitySold  int64           `json:"quantity_sold"`
	Sales         decimal.Decimal `json:"sales"`
	Profit        decimal.Decimal `json:"profit"`
}

// NewEndingQuantityEditedEvent creates a new EndingQuantityEditedEvent
func NewEndingQuantityEditedEvent(r *DailyInventoryRecord) *EndingQuantityEditedEvent {
	return &EndingQuantityEditedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEndingQuantityEdited, AggregateTypeDailyRecord, r.ID, r.Location),
		ProductID:       r.ProductID,
		BusinessDate:    r.Date.Format(shared.DateLayout),
		QuantityAtEnd:   r.QuantityAtEnd,
		QuantitySold:    r.QuantitySold,
		Sales:           r.Sales,
		Profit:          r.Profit,
	}
}

// DaySettledEvent is raised when a record is settled
type DaySettledEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID       `json:"product_id"`
	BusinessDate string          `json:"business_date"`
	QuantitySold int64           `json:"quantity_sold"`
	Sales        decimal.Decimal `json:"sales"`
	Profit       decimal.Decimal `json:"profit"`
	ExpiryStatus FreshnessTier   `json:"expiry_status"`
}

// NewDaySettledEvent creates a new DaySettledEvent
func NewDaySettledEvent(r *DailyInventoryRecord) *DaySettledEvent {
	return &DaySettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDaySettled, AggregateTypeDailyRecord, r.ID, r.Location),
		ProductID:       r.ProductID,
		BusinessDate:    r.Date.Format(shared.DateLayout),
		QuantitySold:    r.QuantitySold,
		Sales:           r.Sales,
		Profit:          r.Profit,
		ExpiryStatus:    r.ExpiryStatus,
	}
}

// StockBelowThresholdEvent is raised when the ending quantity drops below the reorder threshold
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	BusinessDate  string    `json:"business_date"`
	QuantityAtEnd int64     `json:"quantity_at_end"`
	Threshold     int64     `json:"threshold"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(r *DailyInventoryRecord) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, AggregateTypeDailyRecord, r.ID, r.Location),
		ProductID:       r.ProductID,
		ProductName:     r.ProductName,
		BusinessDate:    r.Date.Format(shared.DateLayout),
		QuantityAtEnd:   r.QuantityAtEnd,
		Threshold:       r.ReorderThreshold,
	}
}
