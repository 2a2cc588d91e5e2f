package datatable

import (
	"maps"
	"slices"
)

// SelectionSet tracks selected row ids independently of filter, sort and
// page. Ids whose rows have left the store are dropped whenever the set is
// read.
type SelectionSet struct {
	ids  map[RowID]struct{}
	rows RowChecker
}

// NewSelectionSet creates an empty selection. rows is consulted to prune ids
// of deleted rows; nil disables pruning.
func NewSelectionSet(rows RowChecker) *SelectionSet {
	return &SelectionSet{
		ids:  make(map[RowID]struct{}),
		rows: rows,
	}
}

// Toggle selects id if it is not selected and deselects it otherwise.
func (s *SelectionSet) Toggle(id RowID) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// SelectAllVisible deselects exactly the visible ids when all of them are
// already selected, and otherwise adds them to the selection. Ids outside
// visible are never touched.
func (s *SelectionSet) SelectAllVisible(visible []RowID) {
	if len(visible) == 0 {
		return
	}
	if s.IsAllVisibleSelected(visible) {
		for _, id := range visible {
			delete(s.ids, id)
		}
		return
	}
	for _, id := range visible {
		s.ids[id] = struct{}{}
	}
}

// Clear deselects everything.
func (s *SelectionSet) Clear() {
	clear(s.ids)
}

// Remove deselects the given ids.
func (s *SelectionSet) Remove(ids ...RowID) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// IsSelected reports whether id is selected.
func (s *SelectionSet) IsSelected(id RowID) bool {
	s.prune()
	_, ok := s.ids[id]
	return ok
}

// IsAllVisibleSelected reports whether visible is non-empty and every id in
// it is selected.
func (s *SelectionSet) IsAllVisibleSelected(visible []RowID) bool {
	n, total := s.countVisible(visible)
	return total > 0 && n == total
}

// IsSomeVisibleSelected reports whether some, but not all, visible ids are
// selected. It drives the indeterminate state of a select-all checkbox.
func (s *SelectionSet) IsSomeVisibleSelected(visible []RowID) bool {
	n, total := s.countVisible(visible)
	return n > 0 && n < total
}

// IDs returns the selected ids in ascending order.
func (s *SelectionSet) IDs() []RowID {
	s.prune()
	return slices.Sorted(maps.Keys(s.ids))
}

// Len returns the number of selected ids.
func (s *SelectionSet) Len() int {
	s.prune()
	return len(s.ids)
}

// countVisible returns how many distinct visible ids are selected, and how
// many distinct visible ids there are.
func (s *SelectionSet) countVisible(visible []RowID) (int, int) {
	s.prune()
	seen := make(map[RowID]struct{}, len(visible))
	n := 0
	for _, id := range visible {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := s.ids[id]; ok {
			n++
		}
	}
	return n, len(seen)
}

func (s *SelectionSet) prune() {
	if s.rows == nil {
		return
	}
	for id := range s.ids {
		if !s.rows.Has(id) {
			delete(s.ids, id)
		}
	}
}
