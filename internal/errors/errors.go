package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
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

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// RowError reports a fault in a specific row of a specific source file.
// Ingestion aborts on the first malformed date rather than coercing to a
// sentinel value, since silent coercion would corrupt the week and hour
// aggregates downstream.
type RowError struct {
	Source string
	Row    int
	Column string
	Value  string
	Cause  error
}

// Error implements the error interface
func (e *RowError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("source %s row %d: bad %s value %q: %v", e.Source, e.Row, e.Column, e.Value, e.Cause)
	}
	return fmt.Sprintf("source %s row %d: bad %s value %q", e.Source, e.Row, e.Column, e.Value)
}

// Unwrap allows errors.Is and errors.As to work with RowError
func (e *RowError) Unwrap() error {
	return e.Cause
}

// NewRowError creates an error describing a faulty row
func NewRowError(source string, row int, column, value string, cause error) *RowError {
	return &RowError{
		Source: source,
		Row:    row,
		Column: column,
		Value:  value,
		Cause:  cause,
	}
}
