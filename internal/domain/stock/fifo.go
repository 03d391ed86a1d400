package stock

import "sort"

// SoldBatch reports how many units left a batch during the day
type SoldBatch struct {
	Batch
	SoldQuantity int64 `json:"sold_quantity"`
	SoldAll      bool  `json:"sold_all"`
}

// ComputeSoldBatches diffs the prior ledger against the current one, earliest expiry first.
//
// A prior batch missing from current is reported as fully sold. A batch whose remaining
// quantity dropped reports the difference. Batches that are unchanged or grew are skipped.
// The result is a report: it does not check that consumption actually followed expiry order.
func ComputeSoldBatches(prior, current []Batch) []SoldBatch {
	ordered := make([]Batch, len(prior))
	copy(ordered, prior)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ExpiryDate.Before(ordered[j].ExpiryDate)
	})

	byID := make(map[string]Batch, len(current))
	for _, b := range current {
		byID[b.ID] = b
	}

	sold := make([]SoldBatch, 0)
	for _, p := range ordered {
		c, ok := byID[p.ID]
		switch {
		case !ok:
			sold = append(sold, SoldBatch{Batch: p, SoldQuantity: p.RemainingQuantity, SoldAll: true})
		case c.RemainingQuantity < p.RemainingQuantity:
			sold = append(sold, SoldBatch{Batch: p, SoldQuantity: p.RemainingQuantity - c.RemainingQuantity})
		}
	}
	return sold
}
