package stock

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailstock/backend/internal/domain/shared"
)

// Batch is a lot of one product received on one day with a single expiry date
type Batch struct {
	ID                string        `json:"id"`
	ProductID         uuid.UUID     `json:"product_id"`
	EntryDate         time.Time     `json:"entry_date"`
	ExpiryDate        time.Time     `json:"expiry_date"`
	OriginalQuantity  int64         `json:"original_quantity"`
	RemainingQuantity int64         `json:"remaining_quantity"`
	IsNew             bool          `json:"is_new"`
	Status            FreshnessTier `json:"status,omitempty"`
}

// IDGenerator produces batch identifiers
type IDGenerator func() string

// DefaultIDGenerator issues random UUID strings
func DefaultIDGenerator() string {
	return uuid.NewString()
}

// DaysToExpiry returns the number of calendar days from referenceDate until the batch expires
func (b Batch) DaysToExpiry(referenceDate time.Time) int {
	return shared.DaysBetween(referenceDate, b.ExpiryDate)
}

// Validate checks 0 <= remaining <= original
func (b Batch) Validate() error {
	if b.RemainingQuantity < 0 || b.RemainingQuantity > b.OriginalQuantity {
		return shared.ErrInvalidQuantity
	}
	return nil
}

// CarryForward copies yesterday's ending ledger into today's opening ledger.
// Ids, quantities and expiry dates are preserved; carried batches are no longer new.
func CarryForward(previous []Batch) []Batch {
	carried := make([]Batch, len(previous))
	for i, b := range previous {
		b.IsNew = false
		b.Status = ""
		carried[i] = b
	}
	return carried
}

// AddRestock appends a new batch of quantity units to a copy of batches.
// The input slice is left untouched.
func AddRestock(batches []Batch, productID uuid.UUID, quantity int64, expiryDate, entryDate time.Time, newID IDGenerator) ([]Batch, Batch, error) {
	if quantity <= 0 {
		return nil, Batch{}, shared.ErrInvalidQuantity
	}
	if newID == nil {
		newID = DefaultIDGenerator
	}
	added := Batch{
		ID:                newID(),
		ProductID:         productID,
		EntryDate:         shared.Day(entryDate),
		ExpiryDate:        shared.Day(expiryDate),
		OriginalQuantity:  quantity,
		RemainingQuantity: quantity,
		IsNew:             true,
	}
	out := make([]Batch, 0, len(batches)+1)
	out = append(out, batches...)
	out = append(out, added)
	return out, added, nil
}

// TotalRemaining sums the remaining quantity across batches
func TotalRemaining(batches []Batch) int64 {
	var total int64
	for _, b := range batches {
		total += b.RemainingQuantity
	}
	return total
}

// TotalOriginal sums the original quantity across batches
func TotalOriginal(batches []Batch) int64 {
	var total int64
	for _, b := range batches {
		total += b.OriginalQuantity
	}
	return total
}

func sameLedger(a, b []Batch) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID ||
			a[i].RemainingQuantity != b[i].RemainingQuantity ||
			a[i].OriginalQuantity != b[i].OriginalQuantity ||
			!shared.Day(a[i].ExpiryDate).Equal(shared.Day(b[i].ExpiryDate)) {
			return false
		}
	}
	return true
}

func cloneBatches(batches []Batch) []Batch {
	if batches == nil {
		return []Batch{}
	}
	out := make([]Batch, len(batches))
	copy(out, batches)
	return out
}

func classifyBatches(batches []Batch, referenceDate time.Time) []Batch {
	for i := range batches {
		batches[i].Status = Classify(batches[i].ExpiryDate, referenceDate)
	}
	return batches
}
