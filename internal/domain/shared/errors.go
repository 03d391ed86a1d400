package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Reconciliation errors
var (
	ErrInvalidQuantity    = NewDomainError("INVALID_QUANTITY", "Quantity must be a positive whole number")
	ErrNegativeSales      = NewDomainError("NEGATIVE_SALES", "Ending quantity cannot exceed the quantity at start of day")
	ErrUnknownProduct     = NewDomainError("UNKNOWN_PRODUCT", "Product does not exist or is not active on this date")
	ErrUnknownLocation    = NewDomainError("UNKNOWN_LOCATION", "Location is not configured")
	ErrInvalidBatchEdit   = NewDomainError("INVALID_BATCH_EDIT", "Batch edit references an unknown or repeated batch")
	ErrInvariantViolation = NewDomainError("INVARIANT_VIOLATION", "Daily record totals do not reconcile")
)
