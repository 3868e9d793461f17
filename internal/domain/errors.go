package domain

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a domain failure so transport layers can map it
// to a status without string matching.
type ErrorCode string

const (
	ErrCodeValidation  ErrorCode = "VALIDATION"
	ErrCodeNotFound    ErrorCode = "NOT_FOUND"
	ErrCodeConflict    ErrorCode = "CONFLICT"
	ErrCodePersistence ErrorCode = "PERSISTENCE"
)

// Error is a typed domain error. All aggregate operations return one of
// these instead of panicking; callers must check before using the value.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match two domain errors by code and message, so
// sentinel values like ErrAlreadyPaid work through wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewValidationError reports invalid input (bad quantity, insufficient
// stock, negative price or tax). Always recoverable by the caller.
func NewValidationError(format string, args ...interface{}) *Error {
	return &Error{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports a missing line, item or aggregate.
func NewNotFoundError(format string, args ...interface{}) *Error {
	return &Error{Code: ErrCodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewConflictError reports a state conflict: already paid, already
// delivered, ownership mismatch, illegal status transition.
func NewConflictError(format string, args ...interface{}) *Error {
	return &Error{Code: ErrCodeConflict, Message: fmt.Sprintf(format, args...)}
}

// NewPersistenceError wraps a storage or transaction failure.
func NewPersistenceError(message string, err error) *Error {
	return &Error{Code: ErrCodePersistence, Message: message, Err: err}
}

// Common sentinel errors.
var (
	ErrCartNotFound      = NewNotFoundError("cart not found")
	ErrCartItemNotFound  = NewNotFoundError("cart item not found")
	ErrOrderNotFound     = NewNotFoundError("order not found")
	ErrOrderItemNotFound = NewNotFoundError("order item not found")
	ErrProductNotFound   = NewNotFoundError("product not found")
	ErrAlreadyPaid       = NewConflictError("order is already paid")
	ErrAlreadyDelivered  = NewConflictError("order is already delivered")
	ErrOrderNotPaid      = NewConflictError("order is not paid yet")
)

// IsDomainError reports whether err carries the given domain code.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
