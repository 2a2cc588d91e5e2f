package datatable

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditBeginSeedsDraft(t *testing.T) {
	store := newPeopleStore(t)
	e := NewEditSession(store)

	ok, err := e.Begin("1", "age")
	require.NoError(t, err)
	require.True(t, ok)

	cell, active := e.Active()
	require.True(t, active)
	assert.Equal(t, EditingCell{RowID: "1", ColumnKey: "age", Draft: "30"}, cell)
	assert.True(t, e.IsEditing("1", "age"))
}

func TestEditBeginNonEditableIsNoop(t *testing.T) {
	store := newPeopleStore(t)
	e := NewEditSession(store)

	ok, err := e.Begin("1", "note")
	require.NoError(t, err)
	assert.False(t, ok)
	_, active := e.Active()
	assert.False(t, active)

	// An edit in progress survives a refused begin.
	_, err = e.Begin("2", "name")
	require.NoError(t, err)
	ok, err = e.Begin("1", "note")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, e.IsEditing("2", "name"))
}

func TestEditBeginUnknownTargets(t *testing.T) {
	e := NewEditSession(newPeopleStore(t))

	_, err := e.Begin("42", "name")
	assert.ErrorIs(t, err, ErrUnknownRow)

	_, err = e.Begin("1", "height")
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestEditCommitCoerces(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		input string
		want  Value
	}{
		{"number", "age", " 42 ", NumberValue(42)},
		{"decimal", "age", "41.5", NumberValue(41.5)},
		{"select", "status", "inactive", TextValue("inactive")},
		{"text", "name", "  Robert ", TextValue("  Robert ")},
		{"email is not validated", "email", "not-an-email", TextValue("not-an-email")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newPeopleStore(t)
			e := NewEditSession(store)
			_, err := e.Begin("1", tt.key)
			require.NoError(t, err)
			require.NoError(t, e.UpdateDraft(tt.input))
			require.NoError(t, e.Commit())

			row, _ := store.Get("1")
			assert.Equal(t, tt.want, row.Get(tt.key))
			_, active := e.Active()
			assert.False(t, active)
		})
	}
}

func TestEditCommitRejectsInvalidValue(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		input string
	}{
		{"not a number", "age", "abc"},
		{"empty number", "age", ""},
		{"infinite", "age", "Inf"},
		{"unknown option", "status", "archived"},
		{"option case differs", "status", "Active"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newPeopleStore(t)
			e := NewEditSession(store)
			_, err := e.Begin("1", tt.key)
			require.NoError(t, err)
			require.NoError(t, e.UpdateDraft(tt.input))

			err = e.Commit()
			require.ErrorIs(t, err, ErrInvalidValue)
			var invalid *InvalidValueError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.key, invalid.Column)
			assert.Equal(t, tt.input, invalid.Input)

			// Still editing with the rejected draft; the store is untouched.
			cell, active := e.Active()
			require.True(t, active)
			assert.Equal(t, tt.input, cell.Draft)
			before, _ := newPeopleStore(t).Get("1")
			after, _ := store.Get("1")
			assert.Equal(t, before.Get(tt.key), after.Get(tt.key))
		})
	}
}

func TestEditBeginDiscardsPreviousDraft(t *testing.T) {
	store := newPeopleStore(t)
	e := NewEditSession(store)

	_, err := e.Begin("1", "name")
	require.NoError(t, err)
	require.NoError(t, e.UpdateDraft("Robert"))

	_, err = e.Begin("2", "age")
	require.NoError(t, err)
	assert.True(t, e.IsEditing("2", "age"))
	assert.False(t, e.IsEditing("1", "name"))

	row, _ := store.Get("1")
	assert.Equal(t, "Bob", row.Get("name").Formatted)

	require.NoError(t, e.Commit())
	row, _ = store.Get("1")
	assert.Equal(t, "Bob", row.Get("name").Formatted)
}

func TestEditCancel(t *testing.T) {
	store := newPeopleStore(t)
	e := NewEditSession(store)

	_, err := e.Begin("1", "name")
	require.NoError(t, err)
	require.NoError(t, e.UpdateDraft("Robert"))
	require.NoError(t, e.Cancel())

	row, _ := store.Get("1")
	assert.Equal(t, "Bob", row.Get("name").Formatted)
	_, active := e.Active()
	assert.False(t, active)
}

func TestEditRequiresActiveCell(t *testing.T) {
	e := NewEditSession(newPeopleStore(t))
	assert.ErrorIs(t, e.UpdateDraft("x"), ErrNotEditing)
	assert.ErrorIs(t, e.Commit(), ErrNotEditing)
	assert.ErrorIs(t, e.Cancel(), ErrNotEditing)
}

func TestEditEndsWhenRowDeleted(t *testing.T) {
	store := newPeopleStore(t)
	e := NewEditSession(store)
	_, err := e.Begin("3", "name")
	require.NoError(t, err)

	store.Remove("3")
	_, active := e.Active()
	assert.False(t, active)

	_, err = e.Begin("4", "name")
	require.NoError(t, err)
	e.Forget("1", "4")
	assert.False(t, e.IsEditing("4", "name"))
}

func TestEditCommitAfterRowRemovedFromStore(t *testing.T) {
	store := newPeopleStore(t)
	e := NewEditSession(store)
	_, err := e.Begin("2", "name")
	require.NoError(t, err)
	require.NoError(t, e.UpdateDraft("Anna"))

	require.Equal(t, 1, store.Remove("2"))
	assert.ErrorIs(t, e.Commit(), ErrNotEditing)
	assert.ErrorIs(t, e.UpdateDraft("x"), ErrNotEditing)
	assert.ErrorIs(t, e.Cancel(), ErrNotEditing)
	_, active := e.Active()
	assert.False(t, active)
}
