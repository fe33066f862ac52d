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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Directive errors
	ErrParse               ErrorCode = "PARSE"
	ErrMismatchedDirective ErrorCode = "MISMATCHED_DIRECTIVE"

	// Manifest errors
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// FileSystem errors
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"
	ErrFileRead       ErrorCode = "FILE_READ"
	ErrFileWrite      ErrorCode = "FILE_WRITE"
	ErrDirCreate      ErrorCode = "DIR_CREATE"
)

// TemplaterError represents a structured error with code and details
type TemplaterError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *TemplaterError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *TemplaterError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *TemplaterError) Is(target error) bool {
	var targetErr *TemplaterError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new TemplaterError with the given code and message
func New(code ErrorCode, message string) *TemplaterError {
	return &TemplaterError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new TemplaterError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *TemplaterError {
	return &TemplaterError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a TemplaterError
func Wrap(err error, code ErrorCode, message string) *TemplaterError {
	if err == nil {
		return nil
	}
	return &TemplaterError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *TemplaterError {
	if err == nil {
		return nil
	}
	return &TemplaterError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *TemplaterError) WithDetail(key string, value interface{}) *TemplaterError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var terr *TemplaterError
	if errors.As(err, &terr) {
		return terr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a TemplaterError
func GetErrorCode(err error) ErrorCode {
	var terr *TemplaterError
	if errors.As(err, &terr) {
		return terr.Code
	}
	return ErrUnknown
}
