// Package errors provides structured errors with stable codes so callers
// and tests can branch on failure categories instead of message strings.
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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// SSH agent errors
	ErrAgentUnreachable ErrorCode = "AGENT_UNREACHABLE"
	ErrAgentSpawn       ErrorCode = "AGENT_SPAWN"
	ErrKeyParse         ErrorCode = "KEY_PARSE"
	ErrKeyLoad          ErrorCode = "KEY_LOAD"

	// Provisioning errors
	ErrDistroUnknown ErrorCode = "DISTRO_UNKNOWN"
	ErrStepFailed    ErrorCode = "STEP_FAILED"
	ErrCommandRun    ErrorCode = "COMMAND_RUN"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
)

// KitError represents a structured error with code and details
type KitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *KitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *KitError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *KitError) Is(target error) bool {
	var targetErr *KitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new KitError with the given code and message
func New(code ErrorCode, message string) *KitError {
	return &KitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new KitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *KitError {
	return &KitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a KitError
func Wrap(err error, code ErrorCode, message string) *KitError {
	if err == nil {
		return nil
	}
	return &KitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *KitError {
	if err == nil {
		return nil
	}
	return &KitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *KitError) WithDetail(key string, value interface{}) *KitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var kitErr *KitError
	if errors.As(err, &kitErr) {
		return kitErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a KitError
func GetErrorCode(err error) ErrorCode {
	var kitErr *KitError
	if errors.As(err, &kitErr) {
		return kitErr.Code
	}
	return ErrUnknown
}
