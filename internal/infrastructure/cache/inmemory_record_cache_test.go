package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailstock/backend/internal/domain/stock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() *stock.DailyInventoryRecord {
	productID := uuid.New()
	day := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	return &stock.DailyInventoryRecord{
		ID:              uuid.New(),
		ProductID:       productID,
		ProductName:     "Bread",
		Category:        "Bakery",
		Location:        "nakawa",
		Date:            day,
		SellingPrice:    decimal.NewFromInt(5),
		BuyingPrice:     decimal.NewFromInt(3),
		QuantityAtStart: 10,
		QuantityAtEnd:   10,
		Sales:           decimal.Zero,
		Profit:          decimal.Zero,
		Batches: []stock.Batch{{
			ID: "b1", ProductID: productID, EntryDate: day, ExpiryDate: day.AddDate(0, 0, 3),
			OriginalQuantity: 10, RemainingQuantity: 10, IsNew: true,
		}},
		State: stock.StateOpened,
	}
}

func TestInMemoryRecordCache(t *testing.T) {
	c := NewInMemoryRecordCache(time.Hour)
	ctx := context.Background()
	rec := testRecord()

	_, ok, err := c.Get(ctx, rec.Key())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, rec))
	got, ok, err := c.Get(ctx, rec.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, int64(10), got.QuantityAtEnd)

	t.Run("returned record is a copy", func(t *testing.T) {
		got.Batches[0].RemainingQuantity = 0
		again, _, _ := c.Get(ctx, rec.Key())
		assert.Equal(t, int64(10), again.Batches[0].RemainingQuantity)
	})

	t.Run("invalidate", func(t *testing.T) {
		require.NoError(t, c.Invalidate(ctx, rec.Key()))
		_, ok, _ := c.Get(ctx, rec.Key())
		assert.False(t, ok)
	})
}

func TestInMemoryRecordCache_Expiry(t *testing.T) {
	c := NewInMemoryRecordCache(time.Minute)
	now := time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()
	rec := testRecord()

	require.NoError(t, c.Set(ctx, rec))
	now = now.Add(2 * time.Minute)

	_, ok, err := c.Get(ctx, rec.Key())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, c.Size())

	require.NoError(t, c.Close())
	assert.Equal(t, 0, c.Size())
}
