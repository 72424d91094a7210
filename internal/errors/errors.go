package errors

import (
	"fmt"
)

// AppError represents a structured application error. The analysis core
// itself never produces errors; these exist for the source adapters,
// configuration, and transport boundaries.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
		}
	}
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// ConfigInvalid reports a configuration problem
func ConfigInvalid(message string) *AppError {
	return New("CONFIG_INVALID", message)
}

// SourceUnavailable reports a row source that could not be opened or read
func SourceUnavailable(source string, cause error) *AppError {
	return &AppError{
		Code:    "SOURCE_UNAVAILABLE",
		Message: fmt.Sprintf("row source %s unavailable", source),
		Cause:   cause,
	}
}

// ParseFailed reports unreadable tabular input
func ParseFailed(what string, cause error) *AppError {
	return &AppError{
		Code:    "PARSE_FAILED",
		Message: fmt.Sprintf("failed to parse %s", what),
		Cause:   cause,
	}
}
