package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

const (
	// Transport
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
	ErrCodeServer  ErrorCode = "SERVER_ERROR"

	// Authentication & Authorization
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"

	// Validation
	ErrCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeMissingRequired ErrorCode = "MISSING_REQUIRED"

	// Resource
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	ErrCodeConflict ErrorCode = "CONFLICT"

	// Rate Limiting
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"

	// Internal
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// AppError is the single failure type surfaced by the API client.
// Status is zero when the request never produced an HTTP response.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Status  int       `json:"status,omitempty"`
	Data    any       `json:"data,omitempty"`
	cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause adds a cause to the error
func (e *AppError) WithCause(err error) *AppError {
	e.cause = err
	return e
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Common error constructors

// Network reports a request that never reached the server.
func Network(message string, cause error) *AppError {
	return Wrap(ErrCodeNetwork, message, cause)
}

// HTTP builds the failure for a non-2xx response.
func HTTP(status int, message string, data any) *AppError {
	return &AppError{
		Code:    CodeFromStatus(status),
		Message: message,
		Status:  status,
		Data:    data,
	}
}

func InvalidInput(field string, reason string) *AppError {
	return New(ErrCodeInvalidInput, fmt.Sprintf("Invalid %s: %s", field, reason))
}

func MissingRequired(field string) *AppError {
	return New(ErrCodeMissingRequired, fmt.Sprintf("%s is required", field))
}

func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}

// CodeFromStatus maps an HTTP status to an ErrorCode
func CodeFromStatus(status int) ErrorCode {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrCodeValidation
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimitExceeded
	default:
		return ErrCodeServer
	}
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetCode returns the error code if the error is an AppError, otherwise returns ErrCodeInternal
func GetCode(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Status
	}
	return 0
}

func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

func IsNetwork(err error) bool {
	return GetCode(err) == ErrCodeNetwork
}

// MessageOf returns the user-facing message of err, or fallback when err
// carries none.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if appErr, ok := AsAppError(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
