package main

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/retailstock/backend/internal/domain/catalog"
	"github.com/retailstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var seedCategories = []string{"Bakery", "Dairy", "Beverages", "Produce", "Household", "Snacks"}

// CatalogOptions controls the generated catalog
type CatalogOptions struct {
	Products int
	// Deleted products are soft-deleted within the last month so the advisory has entries
	Deleted int
	Seed    uint64
	Today   time.Time
}

// GenerateCatalog builds products priced in whole currency units.
// The same seed always yields the same catalog apart from product ids.
func GenerateCatalog(opts CatalogOptions) ([]*catalog.Product, error) {
	faker := gofakeit.New(opts.Seed)
	today := shared.Day(opts.Today)
	seen := make(map[string]bool, opts.Products)

	products := make([]*catalog.Product, 0, opts.Products)
	for len(products) < opts.Products {
		name := faker.ProductName()
		if seen[name] {
			continue
		}
		seen[name] = true

		buying := int64(faker.IntRange(2, 100)) * 50
		markup := faker.Float64Range(1.1, 1.6)
		selling := decimal.NewFromInt(buying).Mul(decimal.NewFromFloat(markup)).Div(decimal.NewFromInt(50)).Round(0).Mul(decimal.NewFromInt(50))

		p, err := catalog.NewProduct(
			name,
			seedCategories[faker.IntRange(0, len(seedCategories)-1)],
			decimal.NewFromInt(buying),
			selling,
			faker.IntRange(1, 21),
			int64(faker.IntRange(2, 10)),
			today.AddDate(0, 0, -faker.IntRange(30, 120)),
		)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	for i := 0; i < opts.Deleted && i < len(products); i++ {
		p := products[len(products)-1-i]
		p.MarkDeleted(today.AddDate(0, 0, -faker.IntRange(1, catalog.RecentlyDeletedWindowDays)).Add(time.Duration(faker.IntRange(8, 18)) * time.Hour))
	}
	return products, nil
}
