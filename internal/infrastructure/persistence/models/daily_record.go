package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// DailyRecordModel is the persistence model for a DailyInventoryRecord.
// Batch ledgers are stored as JSON documents; the record is always read and written whole.
type DailyRecordModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_daily_record_key,priority:1"`
	Location         string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_daily_record_key,priority:2;index:idx_daily_record_day,priority:1"`
	BusinessDate     time.Time       `gorm:"type:date;not null;uniqueIndex:idx_daily_record_key,priority:3;index:idx_daily_record_day,priority:2"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	Category         string          `gorm:"type:varchar(100);not null"`
	BuyingPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SellingPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ExpiryWindowDays int             `gorm:"not null"`
	ReorderThreshold int64           `gorm:"not null"`
	QtyYesterday     int64           `gorm:"not null"`
	QtyRestocked     int64           `gorm:"not null"`
	QuantityAtStart  int64           `gorm:"not null"`
	QuantityAtEnd    int64           `gorm:"not null"`
	QuantitySold     int64           `gorm:"not null"`
	Sales            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Profit           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Batches          []byte          `gorm:"type:jsonb;not null"`
	PreviousBatches  []byte          `gorm:"type:jsonb;not null"`
	NewBatches       []byte          `gorm:"type:jsonb;not null"`
	SoldBatches      []byte          `gorm:"type:jsonb;not null"`
	ExpiredCount     int             `gorm:"not null"`
	WarningCount     int             `gorm:"not null"`
	SafeCount        int             `gorm:"not null"`
	ExpiryStatus     string          `gorm:"type:varchar(20);not null"`
	State            string          `gorm:"type:varchar(20);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DailyRecordModel) TableName() string {
	return "daily_inventory_records"
}

// ToDomain converts the persistence model to a domain record.
func (m *DailyRecordModel) ToDomain() (*stock.DailyInventoryRecord, error) {
	r := &stock.DailyInventoryRecord{
		ID:               m.ID,
		ProductID:        m.ProductID,
		ProductName:      m.ProductName,
		Category:         m.Category,
		Location:         m.Location,
		Date:             dateOnly(m.BusinessDate),
		BuyingPrice:      m.BuyingPrice,
		SellingPrice:     m.SellingPrice,
		ExpiryWindowDays: m.ExpiryWindowDays,
		ReorderThreshold: m.ReorderThreshold,
		QtyYesterday:     m.QtyYesterday,
		QtyRestocked:     m.QtyRestocked,
		QuantityAtStart:  m.QuantityAtStart,
		QuantityAtEnd:    m.QuantityAtEnd,
		QuantitySold:     m.QuantitySold,
		Sales:            m.Sales,
		Profit:           m.Profit,
		StatusCounts: stock.StatusCounts{
			Expired: m.ExpiredCount,
			Warning: m.WarningCount,
			Safe:    m.SafeCount,
		},
		ExpiryStatus: stock.FreshnessTier(m.ExpiryStatus),
		State:        stock.RecordState(m.State),
	}
	for _, col := range []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"batches", m.Batches, &r.Batches},
		{"previous_batches", m.PreviousBatches, &r.PreviousBatches},
		{"new_batches", m.NewBatches, &r.NewBatches},
		{"sold_batches", m.SoldBatches, &r.SoldBatches},
	} {
		if err := decodeLedger(col.raw, col.dst); err != nil {
			return nil, fmt.Errorf("decode %s of record %s: %w", col.name, m.ID, err)
		}
	}
	if r.Batches == nil {
		r.Batches = []stock.Batch{}
	}
	if r.PreviousBatches == nil {
		r.PreviousBatches = []stock.Batch{}
	}
	if r.NewBatches == nil {
		r.NewBatches = []stock.Batch{}
	}
	if r.SoldBatches == nil {
		r.SoldBatches = []stock.SoldBatch{}
	}
	return r, nil
}

// FromDomain populates the persistence model from a domain record.
func (m *DailyRecordModel) FromDomain(r *stock.DailyInventoryRecord) error {
	var err error
	if m.Batches, err = encodeLedger(r.Batches); err != nil {
		return err
	}
	if m.PreviousBatches, err = encodeLedger(r.PreviousBatches); err != nil {
		return err
	}
	if m.NewBatches, err = encodeLedger(r.NewBatches); err != nil {
		return err
	}
	if m.SoldBatches, err = encodeLedger(r.SoldBatches); err != nil {
		return err
	}
	m.ID = r.ID
	m.ProductID = r.ProductID
	m.Location = r.Location
	m.BusinessDate = dateOnly(r.Date)
	m.ProductName = r.ProductName
	m.Category = r.Category
	m.BuyingPrice = r.BuyingPrice
	m.SellingPrice = r.SellingPrice
	m.ExpiryWindowDays = r.ExpiryWindowDays
	m.ReorderThreshold = r.ReorderThreshold
	m.QtyYesterday = r.QtyYesterday
	m.QtyRestocked = r.QtyRestocked
	m.QuantityAtStart = r.QuantityAtStart
	m.QuantityAtEnd = r.QuantityAtEnd
	m.QuantitySold = r.QuantitySold
	m.Sales = r.Sales
	m.Profit = r.Profit
	m.ExpiredCount = r.StatusCounts.Expired
	m.WarningCount = r.StatusCounts.Warning
	m.SafeCount = r.StatusCounts.Safe
	m.ExpiryStatus = string(r.ExpiryStatus)
	m.State = string(r.State)
	return nil
}

// DailyRecordModelFromDomain creates a new persistence model from a domain record.
func DailyRecordModelFromDomain(r *stock.DailyInventoryRecord) (*DailyRecordModel, error) {
	m := &DailyRecordModel{}
	if err := m.FromDomain(r); err != nil {
		return nil, err
	}
	return m, nil
}

func encodeLedger(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}
	return raw, nil
}

func decodeLedger(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// dateOnly drops the clock and zone that drivers attach to DATE columns
func dateOnly(t time.Time) time.Time {
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
