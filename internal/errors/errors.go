// Package errors defines the application error taxonomy shared by the
// batch pipeline and the exhibits HTTP surface. Every pipeline failure is
// an AppError carrying the failing stage and the offending key or column,
// so a run can halt with a message that names exactly what went wrong.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies an application error.
type ErrorType string

const (
	// ErrTypeSchema marks a structural mismatch against the expected
	// snapshot columns, or a cell that is non-numeric or negative.
	ErrTypeSchema ErrorType = "SCHEMA"
	// ErrTypeUnknownCategory marks a requested aggregate that is not
	// derivable from the loaded snapshot.
	ErrTypeUnknownCategory ErrorType = "UNKNOWN_CATEGORY"
	// ErrTypeInvalidArgument marks a bad caller-supplied parameter.
	ErrTypeInvalidArgument ErrorType = "INVALID_ARGUMENT"
	// ErrTypeNotFound marks a lookup miss on a key such as a hood id.
	ErrTypeNotFound ErrorType = "NOT_FOUND"
	// ErrTypeParsing marks an unreadable or malformed input file.
	ErrTypeParsing ErrorType = "PARSING"
	// ErrTypeStorage marks a failed file write.
	ErrTypeStorage ErrorType = "STORAGE"
	// ErrTypeConfig marks invalid configuration.
	ErrTypeConfig ErrorType = "CONFIG"
)

// AppError is the application-specific error carried through the pipeline.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair to the error, e.g. the offending
// column name or hood id.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithStage records the pipeline stage the error was raised in.
func (e *AppError) WithStage(stage string) *AppError {
	return e.WithContext("stage", stage)
}

// NewAppError creates a new application error.
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewSchemaError creates a schema mismatch error.
func NewSchemaError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchema, message, cause)
}

// NewUnknownCategoryError creates an error for a category with no matching
// yearly columns in the snapshot.
func NewUnknownCategoryError(category string) *AppError {
	return NewAppError(ErrTypeUnknownCategory, fmt.Sprintf("unknown category %q", category), nil).
		WithContext("category", category)
}

// NewInvalidArgumentError creates an error for a bad caller parameter.
func NewInvalidArgumentError(message string) *AppError {
	return NewAppError(ErrTypeInvalidArgument, message, nil)
}

// NewNotFoundError creates a lookup-miss error.
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewParsingError creates an input parsing error.
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a file write error.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// TypeOf returns the ErrorType of err, or an empty type when err is not an
// AppError.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}
