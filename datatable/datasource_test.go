package datatable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySource struct {
	columns []Column
	rows    []Row
}

func (s *memorySource) Columns() []Column  { return s.columns }
func (s *memorySource) RowCount() int      { return len(s.rows) }
func (s *memorySource) Metadata() Metadata { return Metadata{} }

func (s *memorySource) Row(i int) (Row, error) {
	if i < 0 || i >= len(s.rows) {
		return Row{}, ErrUnknownRow
	}
	return s.rows[i], nil
}

func TestLoadStore(t *testing.T) {
	src := &memorySource{columns: peopleColumns(), rows: samplePeople()}

	store, err := LoadStore(src, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 5, store.Len())
	assert.Len(t, store.Columns(), 5)
}

func TestLoadStoreProjectionAndLimit(t *testing.T) {
	src := &memorySource{columns: peopleColumns(), rows: samplePeople()}

	store, err := LoadStore(src, LoadOptions{Columns: []string{"age", "name"}, Limit: 2})
	require.NoError(t, err)

	keys := []string{}
	for _, c := range store.Columns() {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{"name", "age"}, keys)
	assert.Equal(t, []RowID{"1", "2"}, rowIDs(store.All()))

	row, _ := store.Get("1")
	assert.True(t, row.Get("email").IsNull)
	assert.Equal(t, "Bob", row.Get("name").Formatted)
}

func TestLoadStoreErrors(t *testing.T) {
	_, err := LoadStore(nil, LoadOptions{})
	assert.ErrorIs(t, err, ErrNoDataSource)

	src := &memorySource{columns: peopleColumns(), rows: samplePeople()}
	_, err = LoadStore(src, LoadOptions{Columns: []string{"height"}})
	assert.ErrorIs(t, err, ErrUnknownColumn)

	dup := &memorySource{columns: peopleColumns(), rows: append(samplePeople(), samplePeople()[0])}
	_, err = LoadStore(dup, LoadOptions{})
	assert.ErrorIs(t, err, ErrDuplicateRow)
}
