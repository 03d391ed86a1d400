package stock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	ref := day(2025, 3, 10)

	tests := []struct {
		name   string
		expiry time.Time
		want   FreshnessTier
	}{
		{"already expired", ref.AddDate(0, 0, -3), TierExpired},
		{"expires today", ref, TierExpired},
		{"expires today with time of day", ref.Add(17 * time.Hour), TierExpired},
		{"expires tomorrow", ref.AddDate(0, 0, 1), TierWarning},
		{"expires in two days", ref.AddDate(0, 0, 2), TierWarning},
		{"expires in three days", ref.AddDate(0, 0, 3), TierSafe},
		{"expires next month", ref.AddDate(0, 1, 0), TierSafe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.expiry, ref))
		})
	}
}

func TestStatusCounts_Dominant(t *testing.T) {
	tests := []struct {
		name   string
		counts StatusCounts
		want   FreshnessTier
	}{
		{"empty defaults to safe", StatusCounts{}, TierSafe},
		{"expired plurality", StatusCounts{Expired: 2, Warning: 1, Safe: 1}, TierExpired},
		{"warning plurality", StatusCounts{Warning: 3, Safe: 2}, TierWarning},
		{"safe plurality", StatusCounts{Expired: 1, Safe: 4}, TierSafe},
		{"two way tie expired warning", StatusCounts{Expired: 2, Warning: 2}, TierSafe},
		{"two way tie expired safe", StatusCounts{Expired: 1, Safe: 1}, TierSafe},
		{"three way tie", StatusCounts{Expired: 1, Warning: 1, Safe: 1}, TierSafe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.counts.Dominant())
		})
	}
}

func TestRollup(t *testing.T) {
	ref := day(2025, 3, 10)
	batches := []Batch{
		{ID: "a", ExpiryDate: ref},
		{ID: "b", ExpiryDate: ref.AddDate(0, 0, -1)},
		{ID: "c", ExpiryDate: ref.AddDate(0, 0, 1)},
		{ID: "d", ExpiryDate: ref.AddDate(0, 0, 10)},
	}

	counts, tier := Rollup(batches, ref)

	assert.Equal(t, StatusCounts{Expired: 2, Warning: 1, Safe: 1}, counts)
	assert.Equal(t, TierExpired, tier)
	assert.Equal(t, 4, counts.Total())
}

func TestStatusCounts_Merge(t *testing.T) {
	c := StatusCounts{Expired: 1}
	c.Merge(StatusCounts{Warning: 2, Safe: 3})
	c.Add(TierSafe)
	c.Add(FreshnessTier("bogus"))

	assert.Equal(t, StatusCounts{Expired: 1, Warning: 2, Safe: 4}, c)
}

func TestFreshnessTier_IsValid(t *testing.T) {
	assert.True(t, TierExpired.IsValid())
	assert.True(t, TierWarning.IsValid())
	assert.True(t, TierSafe.IsValid())
	assert.False(t, FreshnessTier("stale").IsValid())
}
