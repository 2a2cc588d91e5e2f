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

import "fmt"

// RowChecker reports whether a row id is still present.
type RowChecker interface {
	Has(id RowID) bool
}

// RecordStore holds the authoritative rows and columns of one table.
// Every view is derived from it on demand.
type RecordStore struct {
	columns  []Column
	colIndex map[string]int

	rows    []Row
	pos     map[RowID]int
	retired map[RowID]struct{}
}

// NewRecordStore creates an empty store for the given columns.
// Column keys must be unique; an empty label defaults to the key.
func NewRecordStore(columns ...Column) (*RecordStore, error) {
	s := &RecordStore{
		columns:  make([]Column, 0, len(columns)),
		colIndex: make(map[string]int, len(columns)),
		pos:      make(map[RowID]int),
		retired:  make(map[RowID]struct{}),
	}
	for _, c := range columns {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.colIndex[c.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrInvalidColumn, c.Key)
		}
		if c.Label == "" {
			c.Label = c.Key
		}
		c.Options = append([]string(nil), c.Options...)
		s.colIndex[c.Key] = len(s.columns)
		s.columns = append(s.columns, c)
	}
	return s, nil
}

// Columns returns the column definitions in declared order.
func (s *RecordStore) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Column returns the column with the given key.
func (s *RecordStore) Column(key string) (Column, bool) {
	i, ok := s.colIndex[key]
	if !ok {
		return Column{}, false
	}
	return s.columns[i], true
}

// Add appends a row. Values must be keyed by declared columns and the id must
// never have been used in this store before.
func (s *RecordStore) Add(row Row) error {
	if row.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRowID)
	}
	if s.Has(row.ID) {
		return fmt.Errorf("%w: %q", ErrDuplicateRow, row.ID)
	}
	if _, gone := s.retired[row.ID]; gone {
		return fmt.Errorf("%w: %q was deleted", ErrDuplicateRow, row.ID)
	}
	values := make(map[string]Value, len(row.Values))
	for k, v := range row.Values {
		if _, ok := s.colIndex[k]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, k)
		}
		values[k] = v
	}
	s.pos[row.ID] = len(s.rows)
	s.rows = append(s.rows, Row{ID: row.ID, Values: values})
	return nil
}

// Remove deletes the rows with the given ids. Unknown ids are ignored.
// It returns the number of rows removed.
func (s *RecordStore) Remove(ids ...RowID) int {
	if len(ids) == 0 {
		return 0
	}
	drop := make(map[RowID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := s.rows[:0]
	removed := 0
	for _, r := range s.rows {
		if _, ok := drop[r.ID]; ok {
			s.retired[r.ID] = struct{}{}
			delete(s.pos, r.ID)
			removed++
			continue
		}
		s.pos[r.ID] = len(kept)
		kept = append(kept, r)
	}
	for i := len(kept); i < len(s.rows); i++ {
		s.rows[i] = Row{}
	}
	s.rows = kept
	return removed
}

// Update stores value under key for the row id. The value is stored as given.
func (s *RecordStore) Update(id RowID, key string, value Value) error {
	if _, ok := s.colIndex[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownRow, id)
	}
	// Replace rather than mutate so rows handed out earlier stay unchanged.
	s.rows[i] = s.rows[i].with(key, value)
	return nil
}

// All returns the rows in insertion order.
func (s *RecordStore) All() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Get returns the row with the given id.
func (s *RecordStore) Get(id RowID) (Row, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Row{}, false
	}
	return s.rows[i], true
}

// Has reports whether a row with the given id is present.
func (s *RecordStore) Has(id RowID) bool {
	return s.indexOf(id) >= 0
}

// Len returns the number of rows.
func (s *RecordStore) Len() int {
	return len(s.rows)
}

func (s *RecordStore) indexOf(id RowID) int {
	i, ok := s.pos[id]
	if !ok {
		return -1
	}
	return i
}
