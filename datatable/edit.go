package datatable

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EditingCell is the cell under edit and its uncommitted draft.
type EditingCell struct {
	RowID     RowID
	ColumnKey string
	Draft     string
}

// EditSession allows at most one cell of a table to be edited at a time.
// It is either idle or editing exactly one cell.
type EditSession struct {
	store *RecordStore
	cell  *EditingCell
}

// NewEditSession creates an idle session writing into store.
func NewEditSession(store *RecordStore) *EditSession {
	return &EditSession{store: store}
}

// Begin starts editing a cell, seeding the draft with the cell's current
// value. Any draft on another cell is discarded without being written.
// Begin returns false, leaving the session as it was, when the column is not
// editable.
func (e *EditSession) Begin(rowID RowID, key string) (bool, error) {
	col, ok := e.store.Column(key)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	row, ok := e.store.Get(rowID)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownRow, rowID)
	}
	if !col.Editable {
		return false, nil
	}
	e.cell = &EditingCell{
		RowID:     rowID,
		ColumnKey: key,
		Draft:     row.Get(key).Formatted,
	}
	return true, nil
}

// UpdateDraft replaces the draft with the raw input. No coercion happens
// until Commit.
func (e *EditSession) UpdateDraft(value string) error {
	e.prune()
	if e.cell == nil {
		return ErrNotEditing
	}
	e.cell.Draft = value
	return nil
}

// Commit coerces the draft to the column type and writes it to the store.
// On an *InvalidValueError the session keeps editing so the draft can be
// corrected or cancelled. A session whose row has left the store is ended
// and Commit returns ErrNotEditing.
func (e *EditSession) Commit() error {
	e.prune()
	if e.cell == nil {
		return ErrNotEditing
	}
	col, ok := e.store.Column(e.cell.ColumnKey)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, e.cell.ColumnKey)
	}
	v, err := Coerce(col, e.cell.Draft)
	if err != nil {
		return err
	}
	if err := e.store.Update(e.cell.RowID, e.cell.ColumnKey, v); err != nil {
		return err
	}
	e.cell = nil
	return nil
}

// Cancel discards the draft without touching the store.
func (e *EditSession) Cancel() error {
	e.prune()
	if e.cell == nil {
		return ErrNotEditing
	}
	e.cell = nil
	return nil
}

// Active returns the cell being edited. A session whose row has left the
// store is ended first.
func (e *EditSession) Active() (EditingCell, bool) {
	e.prune()
	if e.cell == nil {
		return EditingCell{}, false
	}
	return *e.cell, true
}

// IsEditing reports whether the given cell is the one being edited.
func (e *EditSession) IsEditing(rowID RowID, key string) bool {
	e.prune()
	return e.cell != nil && e.cell.RowID == rowID && e.cell.ColumnKey == key
}

// Forget ends the session if it is editing one of the given rows.
func (e *EditSession) Forget(ids ...RowID) {
	if e.cell == nil {
		return
	}
	for _, id := range ids {
		if e.cell.RowID == id {
			e.cell = nil
			return
		}
	}
}

func (e *EditSession) prune() {
	if e.cell != nil && !e.store.Has(e.cell.RowID) {
		e.cell = nil
	}
}

// Coerce converts raw input to a Value of the column's type.
// Email values are not validated.
func Coerce(col Column, input string) (Value, error) {
	switch col.Type {
	case TypeNumber:
		f, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, &InvalidValueError{Column: col.Key, Input: input, Reason: "not a number"}
		}
		return NumberValue(f), nil
	case TypeSelect:
		if !col.HasOption(input) {
			return Value{}, &InvalidValueError{
				Column: col.Key,
				Input:  input,
				Reason: "must be one of " + strings.Join(col.Options, ", "),
			}
		}
		return TextValue(input), nil
	default:
		return TextValue(input), nil
	}
}
