package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation         = "ERR_VALIDATION"
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	ErrCodeValidationFormat   = "ERR_VALIDATION_FORMAT"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeUnknownLocation is used when the location is not configured
	ErrCodeUnknownLocation = "ERR_UNKNOWN_LOCATION"
	// ErrCodeUnknownProduct is used when the product does not exist or is not active on the date
	ErrCodeUnknownProduct = "ERR_UNKNOWN_PRODUCT"
)

// Reconciliation rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the record state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeInvalidQuantity is used for non-positive restocks and out of range batch counts
	ErrCodeInvalidQuantity = "ERR_INVALID_QUANTITY"
	// ErrCodeNegativeSales is used when the ending quantity exceeds the start of day
	ErrCodeNegativeSales = "ERR_NEGATIVE_SALES"
	// ErrCodeInvalidBatchEdit is used when an edit names an unknown or repeated batch
	ErrCodeInvalidBatchEdit = "ERR_INVALID_BATCH_EDIT"
	// ErrCodeInvariantViolation is used when a stored record no longer reconciles
	ErrCodeInvariantViolation = "ERR_INVARIANT_VIOLATION"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// ErrCodeUnavailable is used when a dependency such as the database is down
const ErrCodeUnavailable = "ERR_UNAVAILABLE"

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,

	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeUnknownLocation: http.StatusNotFound,
	ErrCodeUnknownProduct:  http.StatusNotFound,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeInvalidQuantity:    http.StatusUnprocessableEntity,
	ErrCodeNegativeSales:      http.StatusUnprocessableEntity,
	ErrCodeInvalidBatchEdit:   http.StatusUnprocessableEntity,
	ErrCodeInvariantViolation: http.StatusConflict,

	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":           ErrCodeNotFound,
	"INVALID_INPUT":       ErrCodeInvalidInput,
	"INVALID_STATE":       ErrCodeInvalidState,
	"INVALID_QUANTITY":    ErrCodeInvalidQuantity,
	"NEGATIVE_SALES":      ErrCodeNegativeSales,
	"UNKNOWN_PRODUCT":     ErrCodeUnknownProduct,
	"UNKNOWN_LOCATION":    ErrCodeUnknownLocation,
	"INVALID_BATCH_EDIT":  ErrCodeInvalidBatchEdit,
	"INVARIANT_VIOLATION": ErrCodeInvariantViolation,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes without a mapping are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
