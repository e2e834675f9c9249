package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Definition and policy errors
	ErrInvalidDefinition ErrorCode = "INVALID_DEFINITION"
	ErrInvalidPolicy     ErrorCode = "INVALID_POLICY"

	// Resolution errors
	ErrMissingResource       ErrorCode = "MISSING_RESOURCE"
	ErrInsufficientFields    ErrorCode = "INSUFFICIENT_FIELDS"
	ErrUnresolvedPlaceholder ErrorCode = "UNRESOLVED_PLACEHOLDER"

	// FileSystem errors
	ErrFileAccess  ErrorCode = "FILE_ACCESS"
	ErrFileWrite   ErrorCode = "FILE_WRITE"
	ErrPersistence ErrorCode = "PERSISTENCE"
)

// PropsError represents a structured error with code and details
type PropsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PropsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PropsError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PropsError) Is(target error) bool {
	var targetErr *PropsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PropsError with the given code and message
func New(code ErrorCode, message string) *PropsError {
	return &PropsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PropsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PropsError {
	return &PropsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PropsError
func Wrap(err error, code ErrorCode, message string) *PropsError {
	if err == nil {
		return nil
	}
	return &PropsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PropsError {
	if err == nil {
		return nil
	}
	return &PropsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PropsError) WithDetail(key string, value interface{}) *PropsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code.
// Only the outermost PropsError in the chain is inspected.
func IsErrorCode(err error, code ErrorCode) bool {
	var propsErr *PropsError
	if errors.As(err, &propsErr) {
		return propsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PropsError
func GetErrorCode(err error) ErrorCode {
	var propsErr *PropsError
	if errors.As(err, &propsErr) {
		return propsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PropsError
func GetErrorDetails(err error) map[string]interface{} {
	var propsErr *PropsError
	if errors.As(err, &propsErr) {
		return propsErr.Details
	}
	return nil
}
