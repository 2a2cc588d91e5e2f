package datatable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// peopleColumns returns a column set covering every column type.
func peopleColumns() []Column {
	return []Column{
		{Key: "name", Label: "Name", Sortable: true, Editable: true, Type: TypeText},
		{Key: "age", Label: "Age", Sortable: true, Editable: true, Type: TypeNumber},
		{Key: "email", Label: "Email", Editable: true, Type: TypeEmail},
		{Key: "status", Label: "Status", Sortable: true, Editable: true, Type: TypeSelect, Options: []string{"active", "inactive"}},
		{Key: "note", Label: "Note"},
	}
}

// samplePeople returns five rows with duplicate ages to exercise stable sorting.
func samplePeople() []Row {
	return []Row{
		NewRow("1", map[string]interface{}{"name": "Bob", "age": 30, "email": "bob@example.com", "status": "active"}),
		NewRow("2", map[string]interface{}{"name": "Ann", "age": 25, "email": "ann@example.com", "status": "inactive"}),
		NewRow("3", map[string]interface{}{"name": "Cid", "age": 30, "email": "cid@example.org", "status": "active"}),
		NewRow("4", map[string]interface{}{"name": "Dee", "age": 41, "email": "dee@example.com", "status": "inactive"}),
		NewRow("5", map[string]interface{}{"name": "Eve", "age": 25, "email": "eve@example.org", "status": "active"}),
	}
}

func newPeopleStore(t *testing.T) *RecordStore {
	t.Helper()
	store, err := NewRecordStore(peopleColumns()...)
	require.NoError(t, err)
	for _, r := range samplePeople() {
		require.NoError(t, store.Add(r))
	}
	return store
}

// numberedStore returns a store of n rows with ids 1..n and a single "n" column.
func numberedStore(t *testing.T, n int) *RecordStore {
	t.Helper()
	store, err := NewRecordStore(Column{Key: "n", Sortable: true, Type: TypeNumber})
	require.NoError(t, err)
	for i := 1; i <= n; i++ {
		require.NoError(t, store.Add(NewRow(IntID(int64(i)), map[string]interface{}{"n": i})))
	}
	return store
}

func rowIDs(rows []Row) []RowID {
	out := make([]RowID, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}
