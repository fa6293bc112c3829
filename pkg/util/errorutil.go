package util

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of engine failure.
type ErrorCode string

const (
	CodeInvalidInput       ErrorCode = "INVALID_INPUT"
	CodeModelUnavailable   ErrorCode = "MODEL_UNAVAILABLE"
	CodeConfigurationError ErrorCode = "CONFIGURATION_ERROR"
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
)

// EngineError standardizes application errors.
type EngineError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Err     error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError constructs an EngineError.
func NewEngineError(code ErrorCode, message string, details map[string]any) *EngineError {
	return &EngineError{Code: code, Message: message, Details: details}
}

// NewInvalidInput marks a ticket rejected before any processing step.
func NewInvalidInput(message string, details map[string]any) error {
	return NewEngineError(CodeInvalidInput, message, details)
}

// NewModelUnavailable marks a scorer that failed or returned a malformed result.
func NewModelUnavailable(message string, err error) error {
	return &EngineError{Code: CodeModelUnavailable, Message: message, Err: err}
}

// NewConfigurationError marks a deployment configuration bug, never retried.
func NewConfigurationError(message string, details map[string]any) error {
	return NewEngineError(CodeConfigurationError, message, details)
}

func NewInternalError(err error) error {
	return &EngineError{
		Code:    CodeInternalError,
		Message: "internal engine error",
		Err:     err,
	}
}

// ToEngineError converts generic errors to EngineError.
func ToEngineError(err error) *EngineError {
	if err == nil {
		return nil
	}
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr
	}
	return &EngineError{
		Code:    CodeInternalError,
		Message: "internal engine error",
		Err:     err,
	}
}

// HasCode reports whether err carries the given engine error code.
func HasCode(err error, code ErrorCode) bool {
	var engineErr *EngineError
	if errors.As(err, &engineErr) {
		return engineErr.Code == code
	}
	return false
}
