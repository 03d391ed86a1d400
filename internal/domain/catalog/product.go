package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DefaultExpiryWindowDays is used when a product is created without a shelf life.
const DefaultExpiryWindowDays = 7

// Product is a sellable item in the store catalog.
// The reconciliation engine only reads products; catalog maintenance lives elsewhere.
type Product struct {
	ID               uuid.UUID
	Name             string
	Category         string
	BuyingPrice      decimal.Decimal
	SellingPrice     decimal.Decimal
	ExpiryWindowDays int
	ReorderThreshold int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// NewProduct creates a product that becomes active on createdAt
func NewProduct(name, category string, buying, selling decimal.Decimal, expiryWindowDays int, threshold int64, createdAt time.Time) (*Product, error) {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if err := validatePrices(buying, selling); err != nil {
		return nil, err
	}
	if expiryWindowDays < 0 {
		return nil, shared.NewDomainError("INVALID_EXPIRY_WINDOW", "Expiry window cannot be negative")
	}
	if expiryWindowDays == 0 {
		expiryWindowDays = DefaultExpiryWindowDays
	}
	if threshold < 0 {
		return nil, shared.NewDomainError("INVALID_THRESHOLD", "Reorder threshold cannot be negative")
	}
	if category = strings.TrimSpace(category); category == "" {
		category = "Uncategorized"
	}

	return &Product{
		ID:               uuid.New(),
		Name:             name,
		Category:         category,
		BuyingPrice:      buying,
		SellingPrice:     selling,
		ExpiryWindowDays: expiryWindowDays,
		ReorderThreshold: threshold,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}, nil
}

// IsActive reports whether the product is currently live in the catalog
func (p *Product) IsActive() bool {
	return p.DeletedAt == nil
}

// MarkDeleted soft-deletes the product as of the given time.
// Deleting an already deleted product keeps the original deletion time.
func (p *Product) MarkDeleted(at time.Time) {
	if !p.IsActive() {
		return
	}
	p.DeletedAt = &at
	p.UpdatedAt = at
}

// UnitMargin is the profit made on one unit sold
func (p *Product) UnitMargin() decimal.Decimal {
	return p.SellingPrice.Sub(p.BuyingPrice)
}

// DefaultExpiry returns the expiry date for stock received on entryDate
func (p *Product) DefaultExpiry(entryDate time.Time) time.Time {
	return shared.Day(entryDate).AddDate(0, 0, p.ExpiryWindowDays)
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

func validatePrices(buying, selling decimal.Decimal) error {
	if buying.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Buying price cannot be negative")
	}
	if selling.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	return nil
}
