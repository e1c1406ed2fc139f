package shared

import "fmt"

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

// NewDomainErrorf creates a new domain error with a formatted message
func NewDomainErrorf(code, format string, args ...any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error codes used across the engine
const (
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidInput        = "INVALID_INPUT"
	CodePartyNotFound       = "PARTY_NOT_FOUND"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeNoPriceAvailable    = "NO_PRICE_AVAILABLE"
	CodeOverpaymentRejected = "OVERPAYMENT_REJECTED"
	CodeAlreadyReversed     = "ALREADY_REVERSED"
	CodeTransactionNotFound = "TRANSACTION_NOT_FOUND"
	CodeAllocationViolation = "ALLOCATION_INTEGRITY_VIOLATION"
	CodeStorageUnavailable  = "STORAGE_UNAVAILABLE"
)

// ErrNotFound is the generic missing-resource error repositories translate
// driver-level not-found results into.
var ErrNotFound = NewDomainError(CodeNotFound, "Resource not found")

// NewStorageError wraps an infrastructure failure (I/O, lock timeout) as the
// only retry-eligible error kind. The original error text is preserved so
// callers can log it.
func NewStorageError(err error) *DomainError {
	return &DomainError{
		Code:    CodeStorageUnavailable,
		Message: fmt.Sprintf("storage unavailable: %v", err),
	}
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code string) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}
