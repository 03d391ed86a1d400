package models

import (
	"time"

	"github.com/retailstock/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the catalog Product.
type ProductModel struct {
	BaseModel
	Name             string          `gorm:"type:varchar(200);not null"`
	Category         string          `gorm:"type:varchar(100);not null;index"`
	BuyingPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpiryWindowDays int             `gorm:"not null;default:7"`
	ReorderThreshold int64           `gorm:"not null;default:0"`
	DeletedAt        *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		ID:               m.ID,
		Name:             m.Name,
		Category:         m.Category,
		BuyingPrice:      m.BuyingPrice,
		SellingPrice:     m.SellingPrice,
		ExpiryWindowDays: m.ExpiryWindowDays,
		ReorderThreshold: m.ReorderThreshold,
		CreatedAt:        m.CreatedAt.UTC(),
		UpdatedAt:        m.UpdatedAt.UTC(),
	}
	if m.DeletedAt != nil {
		deleted := m.DeletedAt.UTC()
		p.DeletedAt = &deleted
	}
	return p
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.ID = p.ID
	m.CreatedAt = p.CreatedAt.UTC()
	m.UpdatedAt = p.UpdatedAt.UTC()
	m.Name = p.Name
	m.Category = p.Category
	m.BuyingPrice = p.BuyingPrice
	m.SellingPrice = p.SellingPrice
	m.ExpiryWindowDays = p.ExpiryWindowDays
	m.ReorderThreshold = p.ReorderThreshold
	m.DeletedAt = nil
	if p.DeletedAt != nil {
		deleted := p.DeletedAt.UTC()
		m.DeletedAt = &deleted
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
