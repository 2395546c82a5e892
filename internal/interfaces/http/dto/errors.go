package dto

import (
	"net/http"

	"github.com/debttrack/backend/internal/domain/shared"
)

// Transport-level error codes not produced by the domain layer
const (
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeBadRequest  = "BAD_REQUEST"
	ErrCodeRateLimited = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	shared.CodeValidation:    http.StatusBadRequest,
	shared.CodeUnauthorized:  http.StatusUnauthorized,
	shared.CodeForbidden:     http.StatusForbidden,
	shared.CodeNotFound:      http.StatusNotFound,
	shared.CodeAlreadyExists: http.StatusConflict,

	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeInternal:    http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code,
// 500 for anything unmapped
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
