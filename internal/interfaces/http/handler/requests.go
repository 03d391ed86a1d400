package handler

// DateQuery selects the business day; empty means today
type DateQuery struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// LocationURI addresses a location
type LocationURI struct {
	Location string `uri:"location" binding:"required"`
}

// RecordURI addresses one product at a location
type RecordURI struct {
	Location  string `uri:"location" binding:"required"`
	ProductID string `uri:"product_id" binding:"required,uuid"`
}

// RestockRequest is a batch received during the day.
// Quantity is checked by the reconciliation rules so zero and negatives get ERR_INVALID_QUANTITY.
type RestockRequest struct {
	Quantity   int64  `json:"quantity"`
	ExpiryDate string `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
}

// BatchEditRequest is the counted remainder of one batch
type BatchEditRequest struct {
	ID         string `json:"id" binding:"required"`
	Remaining  int64  `json:"remaining"`
	ExpiryDate string `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
}

// EditEndingRequest is the complete ending ledger; batches left out are sold out
type EditEndingRequest struct {
	Batches []BatchEditRequest `json:"batches" binding:"dive"`
}
