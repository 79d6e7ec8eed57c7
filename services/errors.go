package services

import (
	"errors"
	"fmt"
	"strings"
)

// Stable error codes returned to API callers
const (
	CodeUnauthorized  = "AUTH_UNAUTHORIZED"
	CodeForbidden     = "AUTH_FORBIDDEN"
	CodeValidation    = "VALIDATION_ERROR"
	CodeRateLimited   = "RATE_LIMIT_EXCEEDED"
	CodeNotFound      = "NOT_FOUND"
	CodeInternalError = "INTERNAL_ERROR"
)

// AppError is a structured error with a stable code suitable for API
// responses. Wrapped causes stay server-side; only Code and Message are
// ever exposed to callers.
type AppError struct {
	Code    string
	Message string
	Fields  []string // Missing/invalid fields, for validation errors
	Err     error    // Underlying cause, logged but never exposed
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// AsAppError extracts an *AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// NewValidationError builds a validation error listing the offending fields
func NewValidationError(fields ...string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: "Missing or invalid fields: " + strings.Join(fields, ", "),
		Fields:  fields,
	}
}

// NewRateLimitError builds the rate limit error for repeated submissions
func NewRateLimitError() *AppError {
	return &AppError{
		Code:    CodeRateLimited,
		Message: "Too many consultation requests for this email. Please try again later.",
	}
}

// NewNotFoundError builds a not found error for the given resource
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: resource + " not found",
	}
}

// NewInternalError wraps an unexpected failure
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Err:     err,
	}
}
