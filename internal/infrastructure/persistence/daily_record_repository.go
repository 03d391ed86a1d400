package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailstock/backend/internal/domain/shared"
	"github.com/retailstock/backend/internal/domain/stock"
	"github.com/retailstock/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDailyRecordRepository implements stock.DailyRecordRepository using GORM
type GormDailyRecordRepository struct {
	db *gorm.DB
}

// NewGormDailyRecordRepository creates a new GormDailyRecordRepository
func NewGormDailyRecordRepository(db *gorm.DB) *GormDailyRecordRepository {
	return &GormDailyRecordRepository{db: db}
}

// FindByKey finds the record for a product, location and day
func (r *GormDailyRecordRepository) FindByKey(ctx context.Context, key stock.RecordKey) (*stock.DailyInventoryRecord, error) {
	var model models.DailyRecordModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND location = ? AND business_date = ?", key.ProductID, key.Location, shared.Day(key.Date)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindLatestBefore returns the most recent record dated strictly before date
func (r *GormDailyRecordRepository) FindLatestBefore(ctx context.Context, productID uuid.UUID, location string, date time.Time) (*stock.DailyInventoryRecord, error) {
	var model models.DailyRecordModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND location = ? AND business_date < ?", productID, location, shared.Day(date)).
		Order("business_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindAfter returns the records dated after date in date order
func (r *GormDailyRecordRepository) FindAfter(ctx context.Context, productID uuid.UUID, location string, date time.Time) ([]stock.DailyInventoryRecord, error) {
	var rows []models.DailyRecordModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND location = ? AND business_date > ?", productID, location, shared.Day(date)).
		Order("business_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toRecords(rows)
}

// FindByDay returns every record for a location and day ordered by category and product name
func (r *GormDailyRecordRepository) FindByDay(ctx context.Context, location string, date time.Time) ([]stock.DailyInventoryRecord, error) {
	var rows []models.DailyRecordModel
	if err := r.db.WithContext(ctx).
		Where("location = ? AND business_date = ?", location, shared.Day(date)).
		Order("category ASC, product_name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toRecords(rows)
}

func toRecords(rows []models.DailyRecordModel) ([]stock.DailyInventoryRecord, error) {
	records := make([]stock.DailyInventoryRecord, 0, len(rows))
	for i := range rows {
		rec, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

// Save creates the record or replaces the stored one with the same key.
// The stored id and creation time survive a replace.
func (r *GormDailyRecordRepository) Save(ctx context.Context, record *stock.DailyInventoryRecord) error {
	model, err := models.DailyRecordModelFromDomain(record)
	if err != nil {
		return fmt.Errorf("save record %s: %w", record.Key(), err)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "product_id"}, {Name: "location"}, {Name: "business_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"product_name", "category", "buying_price", "selling_price",
				"expiry_window_days", "reorder_threshold",
				"qty_yesterday", "qty_restocked", "quantity_at_start", "quantity_at_end", "quantity_sold",
				"sales", "profit",
				"batches", "previous_batches", "new_batches", "sold_batches",
				"expired_count", "warning_count", "safe_count", "expiry_status", "state",
				"updated_at",
			}),
		}).
		Create(model).Error
}
