package dto

import (
	"net/http"

	"github.com/lotbook/backend/internal/domain/shared"
)

// Transport-level error codes. Domain codes pass through unchanged; these
// cover failures that never reach the domain.
const (
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeInvalidJSON = "INVALID_JSON"
	ErrCodeInternal    = "INTERNAL"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes.
// Business rule rejections map to 422: the request was well-formed but the
// books refuse it.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeInternal:    http.StatusInternalServerError,

	shared.CodeInvalidInput: http.StatusBadRequest,

	shared.CodeNotFound:            http.StatusNotFound,
	shared.CodePartyNotFound:       http.StatusNotFound,
	shared.CodeTransactionNotFound: http.StatusNotFound,

	shared.CodeInsufficientStock:   http.StatusUnprocessableEntity,
	shared.CodeNoPriceAvailable:    http.StatusUnprocessableEntity,
	shared.CodeOverpaymentRejected: http.StatusUnprocessableEntity,

	shared.CodeAlreadyReversed: http.StatusConflict,

	shared.CodeAllocationViolation: http.StatusInternalServerError,
	shared.CodeStorageUnavailable:  http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status for an error code, defaulting to 500
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
