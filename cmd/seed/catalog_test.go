package main

import (
	"testing"
	"time"

	"github.com/retailstock/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalFifty = decimal.NewFromInt(50)

func TestGenerateCatalog(t *testing.T) {
	today := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	products, err := GenerateCatalog(CatalogOptions{Products: 25, Deleted: 4, Seed: 7, Today: today})
	require.NoError(t, err)
	require.Len(t, products, 25)

	names := map[string]bool{}
	deleted := 0
	for _, p := range products {
		assert.False(t, names[p.Name], "duplicate name %s", p.Name)
		names[p.Name] = true
		assert.Contains(t, seedCategories, p.Category)
		assert.True(t, p.SellingPrice.GreaterThanOrEqual(p.BuyingPrice), p.Name)
		assert.True(t, p.BuyingPrice.Mod(decimalFifty).IsZero())
		assert.True(t, p.CreatedAt.Before(today))
		if p.DeletedAt != nil {
			deleted++
		}
	}
	assert.Equal(t, 4, deleted)
	assert.Len(t, catalog.RecentlyDeleted(deref(products), today), 4)

	again, err := GenerateCatalog(CatalogOptions{Products: 25, Deleted: 4, Seed: 7, Today: today})
	require.NoError(t, err)
	for i := range products {
		assert.Equal(t, products[i].Name, again[i].Name)
		assert.True(t, products[i].SellingPrice.Equal(again[i].SellingPrice))
	}
}

func deref(products []*catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(products))
	for i, p := range products {
		out[i] = *p
	}
	return out
}
