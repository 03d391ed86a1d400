package stock

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailstock/backend/internal/domain/catalog"
	"github.com/retailstock/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RecordState is the reconciliation state of a daily record
type RecordState string

const (
	StateUninitialized RecordState = "uninitialized"
	StateOpened        RecordState = "opened"
	StateEdited        RecordState = "edited"
	StateSettled       RecordState = "settled"
)

// RecordKey identifies a daily record
type RecordKey struct {
	ProductID uuid.UUID
	Location  string
	Date      time.Time
}

// NewRecordKey builds a key with the date truncated to its calendar day
func NewRecordKey(productID uuid.UUID, location string, date time.Time) RecordKey {
	return RecordKey{ProductID: productID, Location: location, Date: shared.Day(date)}
}

// String renders the key as location/date/product
func (k RecordKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Location, k.Date.Format(shared.DateLayout), k.ProductID)
}

// RestockEvent is stock received during the day.
// A zero ExpiryDate means the product's default shelf life applies.
type RestockEvent struct {
	Quantity   int64
	ExpiryDate time.Time
}

// BatchEdit is the counted ending quantity of one batch.
// A zero ExpiryDate keeps the batch's current expiry.
type BatchEdit struct {
	ID         string
	Remaining  int64
	ExpiryDate time.Time
}

// DayContext carries the coordinates and collaborators for opening a day
type DayContext struct {
	Date     time.Time
	Location string
	NewID    IDGenerator
}

// DailyInventoryRecord is the reconciliation of one product at one location for one day.
//
// Records are values: every operation returns a new record and leaves its receiver untouched.
type DailyInventoryRecord struct {
	ID               uuid.UUID
	ProductID        uuid.UUID
	ProductName      string
	Category         string
	Location         string
	Date             time.Time
	BuyingPrice      decimal.Decimal
	SellingPrice     decimal.Decimal
	ExpiryWindowDays int
	ReorderThreshold int64

	QtyYesterday    int64
	QtyRestocked    int64
	QuantityAtStart int64
	QuantityAtEnd   int64
	QuantitySold    int64
	Sales           decimal.Decimal
	Profit          decimal.Decimal

	Batches         []Batch
	PreviousBatches []Batch
	NewBatches      []Batch
	SoldBatches     []SoldBatch
	StatusCounts    StatusCounts
	ExpiryStatus    FreshnessTier
	State           RecordState
}

// OpenDay builds the opening record of product for dc.Date.
//
// previous is the product's latest record before the date, or nil when the product has no
// history at this location. Restock events are applied in order; if any is rejected no
// record is produced.
func OpenDay(product *catalog.Product, previous *DailyInventoryRecord, restocks []RestockEvent, dc DayContext) (*DailyInventoryRecord, error) {
	day := shared.Day(dc.Date)
	if product == nil || !catalog.ActiveOn(product, day) {
		return nil, shared.ErrUnknownProduct
	}
	if err := checkPrevious(previous, NewRecordKey(product.ID, dc.Location, day)); err != nil {
		return nil, err
	}

	r := &DailyInventoryRecord{
		ID:               uuid.New(),
		ProductID:        product.ID,
		ProductName:      product.Name,
		Category:         product.Category,
		Location:         dc.Location,
		Date:             day,
		BuyingPrice:      product.BuyingPrice,
		SellingPrice:     product.SellingPrice,
		ExpiryWindowDays: product.ExpiryWindowDays,
		ReorderThreshold: product.ReorderThreshold,
		Sales:            decimal.Zero,
		Profit:           decimal.Zero,
		Batches:          []Batch{},
		PreviousBatches:  []Batch{},
		NewBatches:       []Batch{},
		SoldBatches:      []SoldBatch{},
		State:            StateOpened,
	}
	if previous != nil {
		r.QtyYesterday = previous.QuantityAtEnd
		r.PreviousBatches = cloneBatches(previous.Batches)
		r.Batches = CarryForward(previous.Batches)
	}

	for i, ev := range restocks {
		expiry := ev.ExpiryDate
		if expiry.IsZero() {
			expiry = product.DefaultExpiry(day)
		}
		batches, added, err := AddRestock(r.Batches, product.ID, ev.Quantity, expiry, day, dc.NewID)
		if err != nil {
			return nil, fmt.Errorf("restock %d: %w", i, err)
		}
		r.Batches = batches
		r.NewBatches = append(r.NewBatches, added)
		r.QtyRestocked += ev.Quantity
	}

	r.QuantityAtStart = r.QtyYesterday + r.QtyRestocked
	r.QuantityAtEnd = r.QuantityAtStart
	r.recompute()
	return r, nil
}

func checkPrevious(previous *DailyInventoryRecord, key RecordKey) error {
	if previous == nil {
		return nil
	}
	if previous.ProductID != key.ProductID || previous.Location != key.Location {
		return fmt.Errorf("previous record %s does not belong to %s: %w", previous.Key(), key, shared.ErrInvalidInput)
	}
	if !shared.Day(previous.Date).Before(key.Date) {
		return fmt.Errorf("previous record dated %s is not before %s: %w", previous.Date.Format(shared.DateLayout), key.Date.Format(shared.DateLayout), shared.ErrInvalidInput)
	}
	return nil
}

// Continues reports whether the record opened from previous's current ending ledger.
// A nil previous means the product has no earlier record at the location.
func (r *DailyInventoryRecord) Continues(previous *DailyInventoryRecord) bool {
	if previous == nil {
		return r.QtyYesterday == 0 && len(r.PreviousBatches) == 0
	}
	return r.QtyYesterday == previous.QuantityAtEnd && sameLedger(r.PreviousBatches, previous.Batches)
}

// SameEnding reports whether both records close with the same ledger
func (r *DailyInventoryRecord) SameEnding(other *DailyInventoryRecord) bool {
	return r.QuantityAtEnd == other.QuantityAtEnd && sameLedger(r.Batches, other.Batches)
}

// Rebase reopens the record on top of previous, keeping the day's restocked batches and their ids.
//
// A counted ending ledger is applied again when every count still fits the new opening ledger;
// otherwise the record falls back to Opened with nothing sold. Settled records are final.
func (r *DailyInventoryRecord) Rebase(previous *DailyInventoryRecord) (*DailyInventoryRecord, error) {
	if r.State == StateSettled || r.State == StateUninitialized {
		return nil, fmt.Errorf("cannot rebase a %s record: %w", r.State, shared.ErrInvalidState)
	}
	if err := checkPrevious(previous, r.Key()); err != nil {
		return nil, err
	}

	next := r.Clone()
	next.QtyYesterday = 0
	next.PreviousBatches = []Batch{}
	next.Batches = []Batch{}
	if previous != nil {
		next.QtyYesterday = previous.QuantityAtEnd
		next.PreviousBatches = cloneBatches(previous.Batches)
		next.Batches = CarryForward(previous.Batches)
	}
	for _, b := range next.NewBatches {
		b.RemainingQuantity = b.OriginalQuantity
		b.IsNew = true
		next.Batches = append(next.Batches, b)
	}
	next.QtyRestocked = TotalOriginal(next.NewBatches)
	next.QuantityAtStart = next.QtyYesterday + next.QtyRestocked
	next.QuantityAtEnd = next.QuantityAtStart
	next.State = StateOpened
	next.recompute()

	if r.State != StateEdited {
		return next, nil
	}
	opening := make(map[string]int64, len(next.Batches))
	for _, b := range next.Batches {
		opening[b.ID] = b.RemainingQuantity
	}
	edits := make([]BatchEdit, 0, len(r.Batches))
	for _, b := range r.Batches {
		held, ok := opening[b.ID]
		if !ok || b.RemainingQuantity > held {
			return next, nil
		}
		edits = append(edits, BatchEdit{ID: b.ID, Remaining: b.RemainingQuantity, ExpiryDate: b.ExpiryDate})
	}
	edited, err := next.EditEndingQuantity(edits)
	if err != nil {
		return next, nil
	}
	return edited, nil
}

// Key returns the record's identity
func (r *DailyInventoryRecord) Key() RecordKey {
	return NewRecordKey(r.ProductID, r.Location, r.Date)
}

// ApplyRestock returns a copy of the record with one more batch of quantity units.
// The new units are on hand, so both the start and end quantities grow and sales are unchanged.
func (r *DailyInventoryRecord) ApplyRestock(quantity int64, expiryDate time.Time, newID IDGenerator) (*DailyInventoryRecord, error) {
	if quantity <= 0 {
		return nil, shared.ErrInvalidQuantity
	}
	if r.State == StateSettled || r.State == StateUninitialized {
		return nil, fmt.Errorf("cannot restock a %s record: %w", r.State, shared.ErrInvalidState)
	}
	if expiryDate.IsZero() {
		expiryDate = r.Date.AddDate(0, 0, r.ExpiryWindowDays)
	}

	next := r.Clone()
	batches, added, err := AddRestock(next.Batches, r.ProductID, quantity, expiryDate, r.Date, newID)
	if err != nil {
		return nil, err
	}
	next.Batches = batches
	next.NewBatches = append(next.NewBatches, added)
	next.QtyRestocked += quantity
	next.QuantityAtStart += quantity
	next.QuantityAtEnd += quantity
	next.recompute()
	return next, nil
}

// EditEndingQuantity replaces the day's ledger with the counted batches.
//
// edits is the complete ending ledger: a batch left out is treated as sold out. Every edit
// must reference a batch from today's opening or current ledger, at most once, with a
// remaining quantity between zero and the batch's original quantity.
func (r *DailyInventoryRecord) EditEndingQuantity(edits []BatchEdit) (*DailyInventoryRecord, error) {
	if r.State == StateSettled || r.State == StateUninitialized {
		return nil, fmt.Errorf("cannot edit a %s record: %w", r.State, shared.ErrInvalidState)
	}

	// a batch dropped by an earlier edit can be counted again
	known := make(map[string]Batch, len(r.Batches)+len(r.PreviousBatches)+len(r.NewBatches))
	for _, set := range [][]Batch{CarryForward(r.PreviousBatches), r.NewBatches, r.Batches} {
		for _, b := range set {
			known[b.ID] = b
		}
	}

	seen := make(map[string]struct{}, len(edits))
	edited := make([]Batch, 0, len(edits))
	for _, e := range edits {
		b, ok := known[e.ID]
		if !ok {
			return nil, fmt.Errorf("batch %q is not on the ledger: %w", e.ID, shared.ErrInvalidBatchEdit)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("batch %q edited twice: %w", e.ID, shared.ErrInvalidBatchEdit)
		}
		seen[e.ID] = struct{}{}

		if e.Remaining < 0 || e.Remaining > b.OriginalQuantity {
			return nil, fmt.Errorf("batch %q remaining %d outside [0, %d]: %w", e.ID, e.Remaining, b.OriginalQuantity, shared.ErrInvalidQuantity)
		}
		b.RemainingQuantity = e.Remaining
		if !e.ExpiryDate.IsZero() {
			b.ExpiryDate = shared.Day(e.ExpiryDate)
		}
		edited = append(edited, b)
	}

	end := TotalRemaining(edited)
	if end > r.QuantityAtStart {
		return nil, fmt.Errorf("ending quantity %d exceeds start %d: %w", end, r.QuantityAtStart, shared.ErrNegativeSales)
	}

	next := r.Clone()
	next.Batches = edited
	next.QuantityAtEnd = end
	next.State = StateEdited
	next.recompute()
	return next, nil
}

// Settle validates the record and marks it ready for reporting. Settling twice is a no-op.
func (r *DailyInventoryRecord) Settle() (*DailyInventoryRecord, error) {
	if r.State == StateUninitialized {
		return nil, fmt.Errorf("cannot settle an unopened record: %w", shared.ErrInvalidState)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	next := r.Clone()
	next.State = StateSettled
	return next, nil
}

// Validate checks the quantity and money invariants of the record
func (r *DailyInventoryRecord) Validate() error {
	violation := func(format string, args ...any) error {
		return fmt.Errorf("%s: "+format+": %w", append([]any{r.Key()}, append(args, shared.ErrInvariantViolation)...)...)
	}

	if r.QuantityAtStart != r.QtyYesterday+r.QtyRestocked {
		return violation("start %d != yesterday %d + restocked %d", r.QuantityAtStart, r.QtyYesterday, r.QtyRestocked)
	}
	if r.QuantityAtEnd > r.QuantityAtStart {
		return fmt.Errorf("%s: %w", r.Key(), shared.ErrNegativeSales)
	}
	if got := TotalRemaining(r.Batches); got != r.QuantityAtEnd {
		return violation("ledger holds %d units but end is %d", got, r.QuantityAtEnd)
	}
	if got := TotalOriginal(r.NewBatches); got != r.QtyRestocked {
		return violation("new batches hold %d units but restocked is %d", got, r.QtyRestocked)
	}
	if r.QuantitySold != r.QuantityAtStart-r.QuantityAtEnd {
		return violation("sold %d != start %d - end %d", r.QuantitySold, r.QuantityAtStart, r.QuantityAtEnd)
	}
	for _, b := range r.Batches {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%s: batch %q: %w", r.Key(), b.ID, err)
		}
	}
	sold := decimal.NewFromInt(r.QuantitySold)
	if !r.Sales.Equal(sold.Mul(r.SellingPrice)) || !r.Profit.Equal(sold.Mul(r.SellingPrice.Sub(r.BuyingPrice))) {
		return violation("sales or profit do not match %d units sold", r.QuantitySold)
	}
	return nil
}

// IsLowStock reports whether the ending quantity fell below the reorder threshold
func (r *DailyInventoryRecord) IsLowStock() bool {
	return r.QuantityAtEnd < r.ReorderThreshold
}

// Clone returns a deep copy of the record
func (r *DailyInventoryRecord) Clone() *DailyInventoryRecord {
	c := *r
	c.Batches = cloneBatches(r.Batches)
	c.PreviousBatches = cloneBatches(r.PreviousBatches)
	c.NewBatches = cloneBatches(r.NewBatches)
	c.SoldBatches = make([]SoldBatch, len(r.SoldBatches))
	copy(c.SoldBatches, r.SoldBatches)
	return &c
}

// recompute derives sold units, money, the sold batch report and freshness from the ledger
func (r *DailyInventoryRecord) recompute() {
	r.QuantitySold = r.QuantityAtStart - r.QuantityAtEnd
	sold := decimal.NewFromInt(r.QuantitySold)
	r.Sales = sold.Mul(r.SellingPrice)
	r.Profit = sold.Mul(r.SellingPrice.Sub(r.BuyingPrice))

	opening := append(CarryForward(r.PreviousBatches), r.NewBatches...)
	r.SoldBatches = ComputeSoldBatches(classifyBatches(opening, r.Date), r.Batches)

	r.Batches = classifyBatches(r.Batches, r.Date)
	r.StatusCounts, r.ExpiryStatus = Rollup(r.Batches, r.Date)
}
