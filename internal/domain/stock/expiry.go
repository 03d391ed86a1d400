package stock

import (
	"time"

	"github.com/retailstock/backend/internal/domain/shared"
)

// FreshnessTier is the expiry classification of a batch or a product
type FreshnessTier string

const (
	TierExpired FreshnessTier = "expired"
	TierWarning FreshnessTier = "warning"
	TierSafe    FreshnessTier = "safe"
)

// WarningWindowDays is the number of days before expiry a batch is flagged
const WarningWindowDays = 2

// IsValid returns true if the tier is one of the known tiers
func (t FreshnessTier) IsValid() bool {
	switch t {
	case TierExpired, TierWarning, TierSafe:
		return true
	}
	return false
}

// String returns the string representation of the tier
func (t FreshnessTier) String() string {
	return string(t)
}

// Classify returns the freshness tier of stock expiring on expiryDate as seen on referenceDate.
// Both dates are compared as calendar days.
func Classify(expiryDate, referenceDate time.Time) FreshnessTier {
	days := shared.DaysBetween(referenceDate, expiryDate)
	switch {
	case days <= 0:
		return TierExpired
	case days <= WarningWindowDays:
		return TierWarning
	default:
		return TierSafe
	}
}

// StatusCounts tallies batches per freshness tier
type StatusCounts struct {
	Expired int `json:"expired"`
	Warning int `json:"warning"`
	Safe    int `json:"safe"`
}

// Add increments the counter for tier
func (c *StatusCounts) Add(tier FreshnessTier) {
	switch tier {
	case TierExpired:
		c.Expired++
	case TierWarning:
		c.Warning++
	case TierSafe:
		c.Safe++
	}
}

// Merge adds other's counts to c
func (c *StatusCounts) Merge(other StatusCounts) {
	c.Expired += other.Expired
	c.Warning += other.Warning
	c.Safe += other.Safe
}

// Total returns the number of counted batches
func (c StatusCounts) Total() int {
	return c.Expired + c.Warning + c.Safe
}

// Dominant returns the tier holding a strict plurality.
// Ties, including the empty tally, resolve to TierSafe.
func (c StatusCounts) Dominant() FreshnessTier {
	switch {
	case c.Expired > c.Warning && c.Expired > c.Safe:
		return TierExpired
	case c.Warning > c.Expired && c.Warning > c.Safe:
		return TierWarning
	default:
		return TierSafe
	}
}

// Rollup classifies every batch against referenceDate and returns the tally and the dominant tier
func Rollup(batches []Batch, referenceDate time.Time) (StatusCounts, FreshnessTier) {
	var counts StatusCounts
	for _, b := range batches {
		counts.Add(Classify(b.ExpiryDate, referenceDate))
	}
	return counts, counts.Dominant()
}
