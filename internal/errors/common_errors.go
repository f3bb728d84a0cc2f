package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrTypeType marks an argument that is not a usable keyed numeric series
	ErrTypeType ErrorType = "TYPE"
	// ErrTypeIndex marks a key-set, key-order or total-key mismatch
	ErrTypeIndex ErrorType = "INDEX"
	// ErrTypeArithmetic marks a zero denominator. The calculators never return it;
	// it classifies sentinel cells when they are reported.
	ErrTypeArithmetic ErrorType = "ARITHMETIC"

	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewTypeError reports that argument is not a proper keyed numeric series.
func NewTypeError(argument, message string) *AppError {
	return NewAppError(ErrTypeType, fmt.Sprintf("%s: %s", argument, message), nil).
		WithContext("argument", argument)
}

// NewIndexError reports a key mismatch on argument. key may be empty when the
// mismatch is not attributable to a single key.
func NewIndexError(argument, key, message string) *AppError {
	msg := fmt.Sprintf("%s: %s", argument, message)
	if key != "" {
		msg = fmt.Sprintf("%s: %s %q", argument, message, key)
	}
	e := NewAppError(ErrTypeIndex, msg, nil).WithContext("argument", argument)
	if key != "" {
		e.WithContext("key", key)
	}
	return e
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// TypeOf returns the ErrorType of the first AppError in err's chain, or "".
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsType reports whether err is a TYPE error
func IsType(err error) bool {
	return TypeOf(err) == ErrTypeType
}

// IsIndex reports whether err is an INDEX error
func IsIndex(err error) bool {
	return TypeOf(err) == ErrTypeIndex
}
