package reconciliation

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailstock/backend/internal/domain/catalog"
	"github.com/retailstock/backend/internal/domain/shared"
	"github.com/retailstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// LocationDTO is a configured store
type LocationDTO struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// BatchDTO is one batch on a daily ledger
type BatchDTO struct {
	ID                string `json:"id"`
	EntryDate         string `json:"entry_date"`
	ExpiryDate        string `json:"expiry_date"`
	OriginalQuantity  int64  `json:"original_quantity"`
	RemainingQuantity int64  `json:"remaining_quantity"`
	IsNew             bool   `json:"is_new"`
	Status            string `json:"status"`
	DaysToExpiry      int    `json:"days_to_expiry"`
}

// SoldBatchDTO reports units that left a batch during the day
type SoldBatchDTO struct {
	ID           string `json:"id"`
	ExpiryDate   string `json:"expiry_date"`
	SoldQuantity int64  `json:"sold_quantity"`
	SoldAll      bool   `json:"sold_all"`
}

// StatusCountsDTO is the number of batches in each freshness tier
type StatusCountsDTO struct {
	Expired int `json:"expired"`
	Warning int `json:"warning"`
	Safe    int `json:"safe"`
}

// RecordDTO is a daily inventory record as shown on the dashboard
type RecordDTO struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Category         string          `json:"category"`
	Location         string          `json:"location"`
	Date             string          `json:"date"`
	BuyingPrice      decimal.Decimal `json:"buying_price"`
	SellingPrice     decimal.Decimal `json:"selling_price"`
	QtyYesterday     int64           `json:"qty_yesterday"`
	QtyRestocked     int64           `json:"qty_restocked"`
	QuantityAtStart  int64           `json:"quantity_at_start"`
	QuantityAtEnd    int64           `json:"quantity_at_end"`
	QuantitySold     int64           `json:"quantity_sold"`
	Sales            decimal.Decimal `json:"sales"`
	Profit           decimal.Decimal `json:"profit"`
	ReorderThreshold int64           `json:"reorder_threshold"`
	LowStock         bool            `json:"low_stock"`
	ExpiryStatus     string          `json:"expiry_status"`
	StatusCounts     StatusCountsDTO `json:"status_counts"`
	State            string          `json:"state"`
	Batches          []BatchDTO      `json:"batches"`
	PreviousBatches  []BatchDTO      `json:"previous_batches"`
	NewBatches       []BatchDTO      `json:"new_batches"`
	SoldBatches      []SoldBatchDTO  `json:"sold_batches"`
}

// CategoryGroupDTO is the records of one category
type CategoryGroupDTO struct {
	Category string      `json:"category"`
	Records  []RecordDTO `json:"records"`
}

// DailyViewDTO is every active product's record at a location for one day
type DailyViewDTO struct {
	Location     string             `json:"location"`
	LocationName string             `json:"location_name"`
	Date         string             `json:"date"`
	Categories   []CategoryGroupDTO `json:"categories"`
}

// LowStockDTO is a product that closed below its reorder threshold
type LowStockDTO struct {
	ProductID     uuid.UUID `json:"product_id"`
	ProductName   string    `json:"product_name"`
	Category      string    `json:"category"`
	QuantityAtEnd int64     `json:"quantity_at_end"`
	Threshold     int64     `json:"threshold"`
}

// SummaryDTO aggregates a location's day
type SummaryDTO struct {
	Location        string          `json:"location"`
	LocationName    string          `json:"location_name"`
	Date            string          `json:"date"`
	Products        int             `json:"products"`
	Settled         int             `json:"settled"`
	QtyYesterday    int64           `json:"qty_yesterday"`
	QtyRestocked    int64           `json:"qty_restocked"`
	QuantityAtStart int64           `json:"quantity_at_start"`
	QuantityAtEnd   int64           `json:"quantity_at_end"`
	QuantitySold    int64           `json:"quantity_sold"`
	Sales           decimal.Decimal `json:"sales"`
	Profit          decimal.Decimal `json:"profit"`
	StatusCounts    StatusCountsDTO `json:"status_counts"`
	LowStock        []LowStockDTO   `json:"low_stock"`
}

// ProductDTO is a catalog entry
type ProductDTO struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Category         string          `json:"category"`
	BuyingPrice      decimal.Decimal `json:"buying_price"`
	SellingPrice     decimal.Decimal `json:"selling_price"`
	UnitMargin       decimal.Decimal `json:"unit_margin"`
	ExpiryWindowDays int             `json:"expiry_window_days"`
	ReorderThreshold int64           `json:"reorder_threshold"`
	CreatedAt        time.Time       `json:"created_at"`
	DeletedAt        *time.Time      `json:"deleted_at,omitempty"`
}

// ProductGroupDTO is the active products of one category
type ProductGroupDTO struct {
	Category string       `json:"category"`
	Products []ProductDTO `json:"products"`
}

// RestockInput is a batch received during the day.
// A zero ExpiryDate applies the product's shelf life.
type RestockInput struct {
	Location   string
	ProductID  uuid.UUID
	Date       time.Time
	Quantity   int64
	ExpiryDate time.Time
}

// EditInput is the counted ending ledger of a product
type EditInput struct {
	Location  string
	ProductID uuid.UUID
	Date      time.Time
	Batches   []stock.BatchEdit
}

// ToRecordDTO converts a domain record
func ToRecordDTO(r *stock.DailyInventoryRecord) RecordDTO {
	return RecordDTO{
		ID:               r.ID,
		ProductID:        r.ProductID,
		ProductName:      r.ProductName,
		Category:         r.Category,
		Location:         r.Location,
		Date:             r.Date.Format(shared.DateLayout),
		BuyingPrice:      r.BuyingPrice,
		SellingPrice:     r.SellingPrice,
		QtyYesterday:     r.QtyYesterday,
		QtyRestocked:     r.QtyRestocked,
		QuantityAtStart:  r.QuantityAtStart,
		QuantityAtEnd:    r.QuantityAtEnd,
		QuantitySold:     r.QuantitySold,
		Sales:            r.Sales,
		Profit:           r.Profit,
		ReorderThreshold: r.ReorderThreshold,
		LowStock:         r.IsLowStock(),
		ExpiryStatus:     r.ExpiryStatus.String(),
		StatusCounts:     toStatusCountsDTO(r.StatusCounts),
		State:            string(r.State),
		Batches:          toBatchDTOs(r.Batches, r.Date),
		PreviousBatches:  toBatchDTOs(r.PreviousBatches, r.Date),
		NewBatches:       toBatchDTOs(r.NewBatches, r.Date),
		SoldBatches:      toSoldBatchDTOs(r.SoldBatches),
	}
}

func toBatchDTOs(batches []stock.Batch, day time.Time) []BatchDTO {
	out := make([]BatchDTO, 0, len(batches))
	for _, b := range batches {
		status := b.Status
		if status == "" {
			status = stock.Classify(b.ExpiryDate, day)
		}
		out = append(out, BatchDTO{
			ID:                b.ID,
			EntryDate:         b.EntryDate.Format(shared.DateLayout),
			ExpiryDate:        b.ExpiryDate.Format(shared.DateLayout),
			OriginalQuantity:  b.OriginalQuantity,
			RemainingQuantity: b.RemainingQuantity,
			IsNew:             b.IsNew,
			Status:            status.String(),
			DaysToExpiry:      b.DaysToExpiry(day),
		})
	}
	return out
}

func toSoldBatchDTOs(sold []stock.SoldBatch) []SoldBatchDTO {
	out := make([]SoldBatchDTO, 0, len(sold))
	for _, s := range sold {
		out = append(out, SoldBatchDTO{
			ID:           s.ID,
			ExpiryDate:   s.ExpiryDate.Format(shared.DateLayout),
			SoldQuantity: s.SoldQuantity,
			SoldAll:      s.SoldAll,
		})
	}
	return out
}

func toStatusCountsDTO(c stock.StatusCounts) StatusCountsDTO {
	return StatusCountsDTO{Expired: c.Expired, Warning: c.Warning, Safe: c.Safe}
}

// ToProductDTO converts a catalog product
func ToProductDTO(p *catalog.Product) ProductDTO {
	return ProductDTO{
		ID:               p.ID,
		Name:             p.Name,
		Category:         p.Category,
		BuyingPrice:      p.BuyingPrice,
		SellingPrice:     p.SellingPrice,
		UnitMargin:       p.UnitMargin(),
		ExpiryWindowDays: p.ExpiryWindowDays,
		ReorderThreshold: p.ReorderThreshold,
		CreatedAt:        p.CreatedAt,
		DeletedAt:        p.DeletedAt,
	}
}
