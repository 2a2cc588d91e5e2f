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

package datatable

// Config holds the per-table behaviour of a TableModel.
type Config struct {
	// ItemsPerPage is the initial page size.
	ItemsPerPage int
	// SortCycle selects how repeated SetSort calls on a column cycle.
	SortCycle SortCycle
	// PageWindow is the maximum number of page buttons.
	PageWindow int
}

// DefaultConfig returns the default table configuration.
func DefaultConfig() Config {
	return Config{
		ItemsPerPage: DefaultItemsPerPage,
		SortCycle:    SortCycleThreeState,
		PageWindow:   DefaultPageWindow,
	}
}

// TableModel is one table session: the record store plus the query, sort,
// page, selection and edit state a rendering layer reads and drives.
// Views are recomputed from the store on every call.
type TableModel struct {
	config Config
	store  *RecordStore

	query     string
	predicate Filter
	sort      SortState
	page      PaginationState

	selection *SelectionSet
	edit      *EditSession
}

// NewTableModel creates a model over store.
func NewTableModel(store *RecordStore, config Config) *TableModel {
	if config.ItemsPerPage < 1 {
		config.ItemsPerPage = DefaultItemsPerPage
	}
	if config.PageWindow < 1 {
		config.PageWindow = DefaultPageWindow
	}
	m := &TableModel{
		config:    config,
		store:     store,
		page:      PaginationState{CurrentPage: 1, ItemsPerPage: config.ItemsPerPage},
		selection: NewSelectionSet(store),
		edit:      NewEditSession(store),
	}
	m.refresh()
	return m
}

// Store returns the underlying record store.
func (m *TableModel) Store() *RecordStore {
	return m.store
}

// Config returns the model configuration.
func (m *TableModel) Config() Config {
	return m.config
}

// Columns returns the column definitions.
func (m *TableModel) Columns() []Column {
	return m.store.Columns()
}

// GetView computes the page for an explicit query, sort and pagination state
// without changing the model.
func (m *TableModel) GetView(query string, sort SortState, state PaginationState) Page {
	return Paginate(SortRows(m.filtered(query), sort), state)
}

// View returns the current page.
func (m *TableModel) View() Page {
	m.refresh()
	return m.GetView(m.query, m.sort, m.page)
}

// ExportRows returns the columns and the filtered, sorted rows of the view,
// ignoring pagination.
func (m *TableModel) ExportRows() ([]Column, []Row) {
	return m.store.Columns(), m.sorted()
}

// ExportCSV renders the filtered, sorted rows as CSV.
func (m *TableModel) ExportCSV() string {
	return ToCSV(m.ExportRows())
}

// Query returns the current search text.
func (m *TableModel) Query() string {
	return m.query
}

// Predicate returns the structured filter, if any.
func (m *TableModel) Predicate() Filter {
	return m.predicate
}

// SortState returns the current sort.
func (m *TableModel) SortState() SortState {
	return m.sort
}

// Pagination returns the current pagination state.
func (m *TableModel) Pagination() PaginationState {
	m.refresh()
	return m.page
}

// PageButtons returns the pager buttons for the current page.
func (m *TableModel) PageButtons() []PageButton {
	m.refresh()
	return PageButtons(m.page.CurrentPage, m.page.PageCount(), m.config.PageWindow)
}

// OriginalRowCount returns the number of rows in the store.
func (m *TableModel) OriginalRowCount() int {
	return m.store.Len()
}

// FilteredRowCount returns the number of rows passing the current filters.
func (m *TableModel) FilteredRowCount() int {
	return len(m.filtered(m.query))
}

// VisibleIDs returns the ids of the rows on the current page.
func (m *TableModel) VisibleIDs() []RowID {
	return m.View().IDs()
}

// SetQuery sets the free-text search.
func (m *TableModel) SetQuery(query string) {
	m.query = query
	m.refresh()
}

// SetPredicate sets a structured filter applied together with the search
// text. nil removes it.
func (m *TableModel) SetPredicate(f Filter) {
	m.predicate = f
	m.refresh()
}

// SetSort advances the sort on key according to the configured cycle.
// Unknown and non-sortable columns are ignored.
func (m *TableModel) SetSort(key string) {
	col, ok := m.store.Column(key)
	if !ok || !col.Sortable {
		return
	}
	m.sort = m.sort.Toggle(key, m.config.SortCycle)
}

// SetSortState replaces the sort. A state on an unknown or non-sortable
// column clears the sort.
func (m *TableModel) SetSortState(s SortState) {
	s = NewSortState(s.Key, s.Direction)
	if s.IsSorted() {
		if col, ok := m.store.Column(s.Key); !ok || !col.Sortable {
			s = SortState{}
		}
	}
	m.sort = s
}

// SetPage moves to page n, clamped to the available pages.
func (m *TableModel) SetPage(n int) {
	m.page.CurrentPage = n
	m.refresh()
}

// SetItemsPerPage changes the page size, keeping the first row of the
// current page in view. Values below 1 are ignored.
func (m *TableModel) SetItemsPerPage(n int) {
	if n < 1 {
		return
	}
	m.refresh()
	m.page = m.page.WithItemsPerPage(n)
}

// ToggleRowSelection flips the selection of one row.
func (m *TableModel) ToggleRowSelection(id RowID) {
	m.selection.Toggle(id)
}

// ToggleSelectAllVisible selects the rows of the current page, or deselects
// them when they are all selected already.
func (m *TableModel) ToggleSelectAllVisible() {
	m.selection.SelectAllVisible(m.VisibleIDs())
}

// ClearSelection deselects every row.
func (m *TableModel) ClearSelection() {
	m.selection.Clear()
}

// IsSelected reports whether a row is selected.
func (m *TableModel) IsSelected(id RowID) bool {
	return m.selection.IsSelected(id)
}

// IsAllVisibleSelected reports whether every row of the current page is selected.
func (m *TableModel) IsAllVisibleSelected() bool {
	return m.selection.IsAllVisibleSelected(m.VisibleIDs())
}

// IsSomeVisibleSelected reports whether some but not all rows of the current
// page are selected.
func (m *TableModel) IsSomeVisibleSelected() bool {
	return m.selection.IsSomeVisibleSelected(m.VisibleIDs())
}

// SelectedIDs returns the selected row ids.
func (m *TableModel) SelectedIDs() []RowID {
	return m.selection.IDs()
}

// SelectedCount returns the number of selected rows.
func (m *TableModel) SelectedCount() int {
	return m.selection.Len()
}

// DeleteSelected removes the selected rows from the store, ending an edit on
// any of them. It returns the number of rows deleted.
func (m *TableModel) DeleteSelected() int {
	ids := m.selection.IDs()
	n := m.store.Remove(ids...)
	m.selection.Remove(ids...)
	m.edit.Forget(ids...)
	m.refresh()
	return n
}

// BeginEdit starts editing a cell. It returns false when the column is not
// editable.
func (m *TableModel) BeginEdit(id RowID, key string) (bool, error) {
	return m.edit.Begin(id, key)
}

// UpdateDraft stores raw input for the cell being edited.
func (m *TableModel) UpdateDraft(value string) error {
	return m.edit.UpdateDraft(value)
}

// CommitEdit validates and writes the draft. On an *InvalidValueError the
// cell stays in edit.
func (m *TableModel) CommitEdit() error {
	if err := m.edit.Commit(); err != nil {
		return err
	}
	m.refresh()
	return nil
}

// CancelEdit discards the draft.
func (m *TableModel) CancelEdit() error {
	return m.edit.Cancel()
}

// Editing returns the cell being edited.
func (m *TableModel) Editing() (EditingCell, bool) {
	return m.edit.Active()
}

// IsEditing reports whether the given cell is being edited.
func (m *TableModel) IsEditing(id RowID, key string) bool {
	return m.edit.IsEditing(id, key)
}

// filtered applies the search text and the predicate to the store rows.
// A failing predicate is ignored.
func (m *TableModel) filtered(query string) []Row {
	rows := FilterRows(m.store.All(), query)
	if m.predicate == nil {
		return rows
	}
	out, err := ApplyFilter(rows, m.predicate)
	if err != nil {
		return rows
	}
	return out
}

func (m *TableModel) sorted() []Row {
	return SortRows(m.filtered(m.query), m.sort)
}

// refresh re-clamps the page against the current filtered row count.
func (m *TableModel) refresh() {
	m.page = m.page.WithTotal(len(m.filtered(m.query)))
}
