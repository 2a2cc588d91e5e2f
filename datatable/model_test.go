package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPeopleModel(t *testing.T, per int) *TableModel {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ItemsPerPage = per
	return NewTableModel(newPeopleStore(t), cfg)
}

func TestTableModelScenario(t *testing.T) {
	store, err := NewRecordStore(
		Column{Key: "name", Sortable: true},
		Column{Key: "age", Sortable: true, Editable: true, Type: TypeNumber},
	)
	require.NoError(t, err)
	require.NoError(t, store.Add(NewRow(IntID(1), map[string]interface{}{"name": "Bob", "age": 30})))
	require.NoError(t, store.Add(NewRow(IntID(2), map[string]interface{}{"name": "Ann", "age": 25})))

	m := NewTableModel(store, DefaultConfig())

	sorted := m.GetView("", SortState{Key: "age", Direction: SortAscending}, PaginationState{CurrentPage: 1, ItemsPerPage: 10})
	assert.Equal(t, []RowID{"2", "1"}, rowIDs(sorted.Items))

	found := m.GetView("ann", SortState{}, PaginationState{CurrentPage: 1, ItemsPerPage: 10})
	assert.Equal(t, []RowID{"2"}, rowIDs(found.Items))
	assert.Equal(t, 1, found.TotalItems())

	paged := m.GetView("", SortState{}, PaginationState{CurrentPage: 1, ItemsPerPage: 1})
	assert.Equal(t, []RowID{"1"}, rowIDs(paged.Items))
	assert.Equal(t, 2, paged.PageCount)
}

func TestTableModelView(t *testing.T) {
	m := newPeopleModel(t, 2)

	v := m.View()
	assert.Equal(t, []RowID{"1", "2"}, rowIDs(v.Items))
	assert.Equal(t, 3, v.PageCount)
	assert.Equal(t, 5, v.TotalItems())

	m.SetPage(3)
	assert.Equal(t, []RowID{"5"}, m.VisibleIDs())

	m.SetPage(99)
	assert.Equal(t, 3, m.Pagination().CurrentPage)
	m.SetPage(-1)
	assert.Equal(t, 1, m.Pagination().CurrentPage)
}

func TestTableModelQueryClampsPage(t *testing.T) {
	m := newPeopleModel(t, 2)
	m.SetPage(3)

	m.SetQuery("example.org")
	assert.Equal(t, 1, m.Pagination().CurrentPage)
	assert.Equal(t, []RowID{"3", "5"}, m.VisibleIDs())
	assert.Equal(t, 2, m.FilteredRowCount())
	assert.Equal(t, 5, m.OriginalRowCount())
	assert.Equal(t, "example.org", m.Query())
}

func TestTableModelSetItemsPerPage(t *testing.T) {
	m := newPeopleModel(t, 2)
	m.SetPage(2) // rows 3 and 4

	m.SetItemsPerPage(3)
	assert.Equal(t, 1, m.Pagination().CurrentPage)
	assert.Equal(t, []RowID{"1", "2", "3"}, m.VisibleIDs())

	m.SetItemsPerPage(1)
	assert.Equal(t, 1, m.Pagination().CurrentPage)

	m.SetPage(4)
	m.SetItemsPerPage(2)
	assert.Equal(t, 2, m.Pagination().CurrentPage)

	m.SetItemsPerPage(0)
	assert.Equal(t, 2, m.Pagination().ItemsPerPage)
}

func TestTableModelSortCycles(t *testing.T) {
	three := newPeopleModel(t, 10)
	three.SetSort("age")
	assert.Equal(t, []RowID{"2", "5", "1", "3", "4"}, three.VisibleIDs())
	three.SetSort("age")
	assert.Equal(t, []RowID{"4", "1", "3", "2", "5"}, three.VisibleIDs())
	three.SetSort("age")
	assert.False(t, three.SortState().IsSorted())
	assert.Equal(t, []RowID{"1", "2", "3", "4", "5"}, three.VisibleIDs())

	cfg := DefaultConfig()
	cfg.SortCycle = SortCycleTwoState
	two := NewTableModel(newPeopleStore(t), cfg)
	two.SetSort("name")
	two.SetSort("name")
	two.SetSort("name")
	assert.Equal(t, SortState{Key: "name", Direction: SortAscending}, two.SortState())
}

func TestTableModelIgnoresUnsortableColumns(t *testing.T) {
	m := newPeopleModel(t, 10)
	m.SetSort("note")
	m.SetSort("height")
	assert.False(t, m.SortState().IsSorted())

	m.SetSortState(SortState{Key: "email", Direction: SortAscending})
	assert.False(t, m.SortState().IsSorted())

	m.SetSortState(SortState{Key: "name", Direction: SortDescending})
	assert.Equal(t, []RowID{"5", "4", "3", "1", "2"}, m.VisibleIDs())
}

func TestTableModelSelectionPersistsAcrossQuery(t *testing.T) {
	m := newPeopleModel(t, 10)
	m.ToggleRowSelection("4")

	m.SetQuery("example.org")
	assert.NotContains(t, m.VisibleIDs(), RowID("4"))
	assert.True(t, m.IsSelected("4"))
	assert.False(t, m.IsSomeVisibleSelected())

	m.SetQuery("")
	assert.True(t, m.IsSelected("4"))
	assert.True(t, m.IsSomeVisibleSelected())
}

func TestTableModelToggleSelectAllVisible(t *testing.T) {
	m := newPeopleModel(t, 2)
	m.ToggleRowSelection("5")

	m.ToggleSelectAllVisible()
	assert.Equal(t, []RowID{"1", "2", "5"}, m.SelectedIDs())
	assert.True(t, m.IsAllVisibleSelected())
	assert.False(t, m.IsSomeVisibleSelected())

	m.ToggleSelectAllVisible()
	assert.Equal(t, []RowID{"5"}, m.SelectedIDs())

	m.ClearSelection()
	assert.Zero(t, m.SelectedCount())
}

func TestTableModelDeleteSelected(t *testing.T) {
	m := newPeopleModel(t, 2)
	m.SetPage(3)
	m.ToggleRowSelection("5")
	m.ToggleRowSelection("4")

	ok, err := m.BeginEdit("4", "name")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 2, m.DeleteSelected())
	assert.Equal(t, 3, m.OriginalRowCount())
	assert.Zero(t, m.SelectedCount())
	_, editing := m.Editing()
	assert.False(t, editing)

	// Page 3 no longer exists.
	assert.Equal(t, 2, m.Pagination().CurrentPage)
	assert.Equal(t, []RowID{"3"}, m.VisibleIDs())

	assert.Zero(t, m.DeleteSelected())
}

func TestTableModelEditFlow(t *testing.T) {
	m := newPeopleModel(t, 10)

	ok, err := m.BeginEdit("2", "age")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, m.IsEditing("2", "age"))

	require.NoError(t, m.UpdateDraft("x"))
	assert.ErrorIs(t, m.CommitEdit(), ErrInvalidValue)
	assert.True(t, m.IsEditing("2", "age"))

	require.NoError(t, m.UpdateDraft("26"))
	require.NoError(t, m.CommitEdit())
	row, _ := m.Store().Get("2")
	assert.Equal(t, NumberValue(26), row.Get("age"))

	_, err = m.BeginEdit("2", "name")
	require.NoError(t, err)
	require.NoError(t, m.CancelEdit())
	assert.ErrorIs(t, m.CancelEdit(), ErrNotEditing)
}

func TestTableModelEditLeavingFilterClampsPage(t *testing.T) {
	m := newPeopleModel(t, 1)
	m.SetQuery("example.org")
	m.SetPage(2)
	assert.Equal(t, []RowID{"5"}, m.VisibleIDs())

	_, err := m.BeginEdit("5", "email")
	require.NoError(t, err)
	require.NoError(t, m.UpdateDraft("eve@example.com"))
	require.NoError(t, m.CommitEdit())

	assert.Equal(t, 1, m.Pagination().CurrentPage)
	assert.Equal(t, []RowID{"3"}, m.VisibleIDs())
}

func TestTableModelPredicate(t *testing.T) {
	m := newPeopleModel(t, 10)
	m.SetPredicate(funcFilter(func(r Row) (bool, error) {
		return r.Get("status").Formatted == "active", nil
	}))
	assert.Equal(t, []RowID{"1", "3", "5"}, m.VisibleIDs())

	m.SetQuery("example.org")
	assert.Equal(t, []RowID{"3", "5"}, m.VisibleIDs())

	m.SetPredicate(nil)
	assert.Equal(t, []RowID{"3", "5"}, m.VisibleIDs())
}

func TestTableModelExportIgnoresPagination(t *testing.T) {
	m := newPeopleModel(t, 1)
	m.SetQuery("inactive")
	m.SetSort("age")
	m.SetSort("age")

	want := "Name,Age,Email,Status,Note\n" +
		"Dee,41,dee@example.com,inactive,\n" +
		"Ann,25,ann@example.com,inactive,"
	assert.Equal(t, want, m.ExportCSV())
}

func TestTableModelPageButtons(t *testing.T) {
	m := NewTableModel(numberedStore(t, 100), Config{ItemsPerPage: 10, PageWindow: 3})
	m.SetPage(5)

	buttons := m.PageButtons()
	assert.Equal(t, []int{0, 4, 5, 6, 0}, pageNumbers(buttons))
}
