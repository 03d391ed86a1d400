package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DailyRecordRepository defines the interface for daily record persistence
type DailyRecordRepository interface {
	// FindByKey finds the record for a product, location and day
	FindByKey(ctx context.Context, key RecordKey) (*DailyInventoryRecord, error)

	// FindLatestBefore returns the product's most recent record at location dated strictly before date
	FindLatestBefore(ctx context.Context, productID uuid.UUID, location string, date time.Time) (*DailyInventoryRecord, error)

	// FindAfter returns the product's records at location dated after date, oldest first
	FindAfter(ctx context.Context, productID uuid.UUID, location string, date time.Time) ([]DailyInventoryRecord, error)

	// FindByDay returns every record stored for a location and day
	FindByDay(ctx context.Context, location string, date time.Time) ([]DailyInventoryRecord, error)

	// Save creates or replaces the record for its key
	Save(ctx context.Context, record *DailyInventoryRecord) error
}
