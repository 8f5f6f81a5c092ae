package dto

import (
	"net/http"
	"strings"
)

// Domain error codes surface directly in API responses. Each code maps to
// exactly one HTTP status so clients can branch on either.

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeValidation is used when request body validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the caller lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "CONFLICT"
	// ErrCodeRateLimited is used when the rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMIT_EXCEEDED"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed fall through to the prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeUnauthorized:    http.StatusUnauthorized,
	ErrCodeForbidden:       http.StatusForbidden,
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	"NOT_FOUND":            http.StatusNotFound,
	"ITEM_NOT_FOUND":       http.StatusNotFound,
	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_PRODUCT":    http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	ErrCodeConflict:        http.StatusConflict,
	"HAS_CHILDREN":         http.StatusConflict,
	"HAS_PRODUCTS":         http.StatusConflict,

	// Business rule violations map to 422 Unprocessable Entity
	"INVALID_STATE":                http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":           http.StatusUnprocessableEntity,
	"NOT_PURCHASABLE":              http.StatusUnprocessableEntity,
	"EMPTY_CART":                   http.StatusUnprocessableEntity,
	"NO_ITEMS":                     http.StatusUnprocessableEntity,
	"NO_SHIPPING_OPTIONS":          http.StatusUnprocessableEntity,
	"SLOT_FULL":                    http.StatusUnprocessableEntity,
	"SLOT_UNAVAILABLE":             http.StatusUnprocessableEntity,
	"DESTINATION_BLOCKED":          http.StatusUnprocessableEntity,
	"DESTINATION_OUT_OF_SEASON":    http.StatusUnprocessableEntity,
	"DESTINATION_SERVICE_REQUIRED": http.StatusUnprocessableEntity,
	"IN_STOCK":                     http.StatusUnprocessableEntity,
	"MISSING_VARIABLE":             http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// COUPON_* codes are business rule rejections (422) and INVALID_* codes are
// input problems (400); anything unrecognized is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "COUPON_") {
		return http.StatusUnprocessableEntity
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
