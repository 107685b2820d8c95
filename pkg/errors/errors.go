package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes, one per failure kind that can surface at a command boundary
const (
	ErrUnknown ErrorCode = "UNKNOWN"

	// Storage medium failures
	ErrIO             ErrorCode = "IO_FAILURE"
	ErrPathConflict   ErrorCode = "PATH_CONFLICT"
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"

	// Metadata failures
	ErrSerialization         ErrorCode = "SERIALIZATION_FAILURE"
	ErrBundleNotFound        ErrorCode = "BUNDLE_NOT_FOUND"
	ErrBundleMissingMetadata ErrorCode = "BUNDLE_MISSING_METADATA"

	// Path resolution failures
	ErrHomedirNotFound      ErrorCode = "HOMEDIR_NOT_FOUND"
	ErrPathComponentInvalid ErrorCode = "PATH_COMPONENT_INVALID"

	// Interaction failures
	ErrEnvironment  ErrorCode = "ENVIRONMENT"
	ErrUserDeclined ErrorCode = "USER_DECLINED"
)

// DotgirlError is a structured error carrying a stable code
type DotgirlError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

// Error implements the error interface
func (e *DotgirlError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DotgirlError) Unwrap() error {
	return e.Wrapped
}

// Is reports code equality, so errors.Is can match on codes
func (e *DotgirlError) Is(target error) bool {
	var targetErr *DotgirlError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DotgirlError with the given code and message
func New(code ErrorCode, message string) *DotgirlError {
	return &DotgirlError{Code: code, Message: message}
}

// Newf creates a new DotgirlError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DotgirlError {
	return &DotgirlError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with a DotgirlError. Returns nil for nil err.
func Wrap(err error, code ErrorCode, message string) *DotgirlError {
	if err == nil {
		return nil
	}
	return &DotgirlError{Code: code, Message: message, Wrapped: err}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DotgirlError {
	if err == nil {
		return nil
	}
	return &DotgirlError{Code: code, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dgErr *DotgirlError
	if errors.As(err, &dgErr) {
		return dgErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if it is
// not a DotgirlError
func GetErrorCode(err error) ErrorCode {
	var dgErr *DotgirlError
	if errors.As(err, &dgErr) {
		return dgErr.Code
	}
	return ErrUnknown
}
