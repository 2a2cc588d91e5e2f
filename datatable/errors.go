package datatable

import (
	"errors"
	"fmt"
)

// Common errors returned by the datatable package.
var (
	// ErrUnknownRow is returned when a row id is not in the store.
	ErrUnknownRow = errors.New("unknown row")

	// ErrUnknownColumn is returned when a column key is not declared.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrInvalidRowID is returned when a new row has no usable id.
	ErrInvalidRowID = errors.New("invalid row id")

	// ErrDuplicateRow is returned when a row id is already in use or was used before.
	ErrDuplicateRow = errors.New("duplicate row id")

	// ErrInvalidColumn is returned for an unusable column definition.
	ErrInvalidColumn = errors.New("invalid column definition")

	// ErrInvalidValue is returned when an edited value does not fit its column.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotEditing is returned by edit operations when no cell is being edited.
	ErrNotEditing = errors.New("no cell is being edited")

	// ErrInvalidFilter is returned when a filter expression is invalid.
	ErrInvalidFilter = errors.New("invalid filter expression")

	// ErrNoDataSource is returned when a required data source is nil.
	ErrNoDataSource = errors.New("data source is nil")

	// ErrEmptyData is returned when data is empty where it shouldn't be.
	ErrEmptyData = errors.New("data is empty")

	// ErrExportFailed is returned when export operation fails.
	ErrExportFailed = errors.New("export failed")
)

// InvalidValueError describes a rejected edit. It matches ErrInvalidValue
// with errors.Is.
type InvalidValueError struct {
	Column string
	Input  string
	Reason string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %q for column %q: %s", e.Input, e.Column, e.Reason)
}

func (e *InvalidValueError) Unwrap() error {
	return ErrInvalidValue
}
