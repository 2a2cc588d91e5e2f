// Copyright 2025 Magnus Pierre
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package datatable provides an in-memory tabular data engine: a record store
// plus search, sorting, pagination, row selection, inline cell editing and CSV
// export over it.
package datatable

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ColumnType represents the editing type of a column.
type ColumnType int

const (
	// TypeText represents free text.
	TypeText ColumnType = iota
	// TypeEmail represents an email address. The value is not validated.
	TypeEmail
	// TypeNumber represents numeric data.
	TypeNumber
	// TypeSelect represents a value picked from a fixed list of options.
	TypeSelect
)

// String returns the string representation of a ColumnType.
func (ct ColumnType) String() string {
	switch ct {
	case TypeText:
		return "text"
	case TypeEmail:
		return "email"
	case TypeNumber:
		return "number"
	case TypeSelect:
		return "select"
	default:
		return fmt.Sprintf("unknown(%d)", ct)
	}
}

// Column describes one column of a table. Columns are fixed for the lifetime
// of a RecordStore.
type Column struct {
	// Key is the unique, stable identifier of the column.
	Key string
	// Label is the display name, also used as the CSV header.
	Label string
	// Sortable enables sorting on this column.
	Sortable bool
	// Editable enables inline editing of cells in this column.
	Editable bool
	// Type drives coercion of edited values.
	Type ColumnType
	// Options lists the allowed values of a TypeSelect column.
	Options []string
}

// Validate reports whether the column definition is usable.
func (c Column) Validate() error {
	if c.Key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidColumn)
	}
	if c.Type == TypeSelect && len(c.Options) == 0 {
		return fmt.Errorf("%w: select column %q has no options", ErrInvalidColumn, c.Key)
	}
	if c.Type != TypeSelect && len(c.Options) > 0 {
		return fmt.Errorf("%w: options given for %s column %q", ErrInvalidColumn, c.Type, c.Key)
	}
	return nil
}

// HasOption reports whether v is one of the column's options.
func (c Column) HasOption(v string) bool {
	for _, o := range c.Options {
		if o == v {
			return true
		}
	}
	return false
}

// InferType guesses the column type of loaded values: number when every
// non-null value is numeric, email when every one looks like an address,
// text otherwise. A column of nulls is text.
func InferType(values []Value) ColumnType {
	numbers, emails, n := 0, 0, 0
	for _, v := range values {
		if v.IsNull {
			continue
		}
		n++
		if v.IsNumber() {
			numbers++
		} else if looksLikeEmail(v.Formatted) {
			emails++
		}
	}
	switch {
	case n == 0:
		return TypeText
	case numbers == n:
		return TypeNumber
	case emails == n:
		return TypeEmail
	}
	return TypeText
}

func looksLikeEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') || strings.ContainsAny(s, " \t") {
		return false
	}
	domain := s[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// Value is a typed container for cell values.
// It holds the raw value and a pre-formatted string used for display, search,
// lexicographic ordering and export.
type Value struct {
	// Raw holds the underlying value: a string, a float64 or nil.
	Raw interface{}

	// IsNull indicates whether this value is null/nil.
	IsNull bool

	// Formatted is the canonical string representation.
	Formatted string
}

// NewValue creates a Value from a Go scalar. Integer and floating point kinds
// are stored as float64; anything else is stored as its formatted text.
func NewValue(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return NullValue()
	case Value:
		return v
	case string:
		return TextValue(v)
	case float64:
		return NumberValue(v)
	case float32:
		return NumberValue(float64(v))
	case int:
		return NumberValue(float64(v))
	case int8:
		return NumberValue(float64(v))
	case int16:
		return NumberValue(float64(v))
	case int32:
		return NumberValue(float64(v))
	case int64:
		return NumberValue(float64(v))
	case uint:
		return NumberValue(float64(v))
	case uint8:
		return NumberValue(float64(v))
	case uint16:
		return NumberValue(float64(v))
	case uint32:
		return NumberValue(float64(v))
	case uint64:
		return NumberValue(float64(v))
	default:
		return TextValue(fmt.Sprintf("%v", raw))
	}
}

// TextValue creates a string Value.
func TextValue(s string) Value {
	return Value{Raw: s, Formatted: s}
}

// NumberValue creates a numeric Value.
func NumberValue(f float64) Value {
	return Value{Raw: f, Formatted: formatNumber(f)}
}

// NullValue creates a null value.
func NullValue() Value {
	return Value{IsNull: true}
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool {
	_, ok := v.Raw.(float64)
	return ok
}

// Float returns the numeric value and whether the value is a number.
func (v Value) Float() (float64, bool) {
	f, ok := v.Raw.(float64)
	return f, ok
}

// String returns the formatted value.
func (v Value) String() string {
	return v.Formatted
}

func formatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RowID identifies a row for its whole lifetime. Numeric identifiers are kept
// in their decimal text form.
type RowID string

// IntID returns the RowID of a numeric identifier.
func IntID(n int64) RowID {
	return RowID(strconv.FormatInt(n, 10))
}

// ValueID returns the RowID of an identifier read from a data source.
func ValueID(v Value) RowID {
	return RowID(v.Formatted)
}

// GenerateRowID issues a new time-ordered identifier for rows whose source
// carries no id of its own.
func GenerateRowID() RowID {
	return RowID(uuid.Must(uuid.NewV7()).String())
}

// Row is a record: an identifier plus one value per column key.
type Row struct {
	ID     RowID
	Values map[string]Value
}

// NewRow builds a row from Go scalars, converting each with NewValue.
func NewRow(id RowID, values map[string]interface{}) Row {
	r := Row{ID: id, Values: make(map[string]Value, len(values))}
	for k, v := range values {
		r.Values[k] = NewValue(v)
	}
	return r
}

// Get returns the value stored under key, or a null value.
func (r Row) Get(key string) Value {
	v, ok := r.Values[key]
	if !ok {
		return NullValue()
	}
	return v
}

func (r Row) with(key string, v Value) Row {
	values := make(map[string]Value, len(r.Values)+1)
	for k, old := range r.Values {
		values[k] = old
	}
	values[key] = v
	return Row{ID: r.ID, Values: values}
}

// Metadata holds optional metadata about a data source.
type Metadata map[string]interface{}

// SortDirection specifies the direction of sorting.
type SortDirection int

const (
	// SortNone indicates no sorting.
	SortNone SortDirection = iota
	// SortAscending indicates ascending sort order.
	SortAscending
	// SortDescending indicates descending sort order.
	SortDescending
)

// String returns the string representation of a SortDirection.
func (sd SortDirection) String() string {
	switch sd {
	case SortNone:
		return "None"
	case SortAscending:
		return "Ascending"
	case SortDescending:
		return "Descending"
	default:
		return fmt.Sprintf("Unknown(%d)", sd)
	}
}

// SortState represents the current sorting configuration.
// Key is empty exactly when Direction is SortNone.
type SortState struct {
	// Key is the key of the sorted column.
	Key string
	// Direction is the sort direction.
	Direction SortDirection
}

// NewSortState returns a consistent SortState: an empty key or SortNone
// direction both yield the unsorted state.
func NewSortState(key string, dir SortDirection) SortState {
	if key == "" || (dir != SortAscending && dir != SortDescending) {
		return SortState{}
	}
	return SortState{Key: key, Direction: dir}
}

// IsSorted returns true if this state represents an active sort.
func (s SortState) IsSorted() bool {
	return s.Key != "" && s.Direction != SortNone
}

// SortCycle selects how repeated sort requests on one column cycle.
type SortCycle int

const (
	// SortCycleThreeState cycles ascending, descending, unsorted.
	SortCycleThreeState SortCycle = iota
	// SortCycleTwoState alternates between ascending and descending.
	SortCycleTwoState
)

// String returns the string representation of a SortCycle.
func (c SortCycle) String() string {
	switch c {
	case SortCycleThreeState:
		return "three-state"
	case SortCycleTwoState:
		return "two-state"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// Toggle returns the state following a sort request on key. A new key always
// starts ascending.
func (s SortState) Toggle(key string, cycle SortCycle) SortState {
	if key == "" {
		return SortState{}
	}
	if !s.IsSorted() || s.Key != key {
		return SortState{Key: key, Direction: SortAscending}
	}
	if s.Direction == SortAscending {
		return SortState{Key: key, Direction: SortDescending}
	}
	if cycle == SortCycleTwoState {
		return SortState{Key: key, Direction: SortAscending}
	}
	return SortState{}
}
