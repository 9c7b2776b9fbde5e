// Package errors provides coded errors for the day-trading engine.
//
// Codes are grouped so that callers can branch on the failure class:
//   - General (1-99)
//   - Validation (100-199): bad configuration, order requests or parameters
//   - Data (200-299): missing or malformed quotes and price samples; skip the symbol
//   - Order (500-599): broker rejected or failed an order; revert the ticker
//   - Budget and threshold (600-699): policy outcomes, never fatal
//   - Connectivity (700-799): broker or market data unreachable; abort the collection cycle
//   - Persisted state (900-999): unreadable watch-list or config files
//
// Usage:
//
//	err := errors.Newf(errors.ErrCodeQuoteMissing, "no quote for %s", symbol)
//	err = errors.Wrap(errors.ErrCodeBrokerUnavailable, "failed to submit order", cause)
//	if errors.IsConnectivityError(err) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error is an error with a code, a message and an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates an Error.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates an Error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap attaches a code and message to cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf attaches a code and formatted message to cause.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return Wrap(code, fmt.Sprintf(format, args...), cause)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode returns the code of the outermost *Error in err's chain, or ErrCodeUnknown.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode reports whether err carries code.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsDataError reports whether err is a quote or price-sample problem.
func IsDataError(err error) bool {
	return GetCode(err).inRange(200, 300)
}

// IsOrderError reports whether err came from the order pipeline.
func IsOrderError(err error) bool {
	return GetCode(err).inRange(500, 600)
}

// IsPolicyError reports whether err is a budget or threshold outcome.
func IsPolicyError(err error) bool {
	return GetCode(err).inRange(600, 700)
}

// IsConnectivityError reports whether err means a collaborator was unreachable or timed out.
func IsConnectivityError(err error) bool {
	return GetCode(err).inRange(700, 800)
}
