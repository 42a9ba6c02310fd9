package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewSchemaError("column HOMICIDE_2014 is absent", nil),
			want: "[SCHEMA] column HOMICIDE_2014 is absent",
		},
		{
			name: "with cause",
			err:  NewParsingError("failed to read snapshot", errors.New("no such file")),
			want: "[PARSING] failed to read snapshot: no such file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewStorageError("write failed", cause)

	assert.ErrorIs(t, err, cause)

	var appErr *AppError
	wrapped := fmt.Errorf("stage failed: %w", err)
	assert.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewSchemaError("bad cell", nil).
		WithStage("normalize").
		WithContext("column", "ASSAULT_2019").
		WithContext("hood_id", 42)

	assert.Equal(t, "normalize", err.Context["stage"])
	assert.Equal(t, "ASSAULT_2019", err.Context["column"])
	assert.Equal(t, 42, err.Context["hood_id"])
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
	}{
		{"schema", NewSchemaError("m", nil), ErrTypeSchema},
		{"unknown category", NewUnknownCategoryError("arson"), ErrTypeUnknownCategory},
		{"invalid argument", NewInvalidArgumentError("m"), ErrTypeInvalidArgument},
		{"not found", NewNotFoundError("neighborhood 7"), ErrTypeNotFound},
		{"parsing", NewParsingError("m", nil), ErrTypeParsing},
		{"storage", NewStorageError("m", nil), ErrTypeStorage},
		{"config", NewConfigError("m", nil), ErrTypeConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
		})
	}
}

func TestNewUnknownCategoryError_Message(t *testing.T) {
	err := NewUnknownCategoryError("arson")

	assert.Contains(t, err.Error(), `unknown category "arson"`)
	assert.Equal(t, "arson", err.Context["category"])
}

func TestNewNotFoundError_Message(t *testing.T) {
	err := NewNotFoundError("neighborhood 99")
	assert.Contains(t, err.Error(), "neighborhood 99 not found")
}

func TestIsType(t *testing.T) {
	schemaErr := NewSchemaError("m", nil)

	assert.True(t, IsType(schemaErr, ErrTypeSchema))
	assert.False(t, IsType(schemaErr, ErrTypeNotFound))
	assert.True(t, IsType(fmt.Errorf("wrapped: %w", schemaErr), ErrTypeSchema))
	assert.False(t, IsType(errors.New("plain"), ErrTypeSchema))
	assert.False(t, IsType(nil, ErrTypeSchema))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrTypeNotFound, TypeOf(NewNotFoundError("x")))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
}
