package datatable

import "fmt"

// DataSource provides read-only access to externally created rows.
// Adapters for CSV, JSON records and Arrow tables implement it.
type DataSource interface {
	// Columns returns the column definitions in display order.
	Columns() []Column

	// RowCount returns the total number of rows in the data source.
	RowCount() int

	// Row returns the row at the given position.
	// Returns ErrUnknownRow if row is out of range.
	Row(row int) (Row, error)

	// Metadata returns optional metadata about the data source.
	// Returns an empty Metadata map if no metadata is available.
	Metadata() Metadata
}

// LoadOptions restricts what LoadStore copies out of a DataSource.
type LoadOptions struct {
	// Columns keeps only the named column keys, in source order. Empty keeps all.
	Columns []string
	// Limit caps the number of rows loaded. Zero or negative loads all rows.
	Limit int
}

// LoadStore builds a RecordStore from the rows of src.
func LoadStore(src DataSource, opts LoadOptions) (*RecordStore, error) {
	if src == nil {
		return nil, ErrNoDataSource
	}

	columns := src.Columns()
	if len(opts.Columns) > 0 {
		keep := make(map[string]bool, len(opts.Columns))
		for _, k := range opts.Columns {
			keep[k] = true
		}
		selected := make([]Column, 0, len(opts.Columns))
		for _, c := range columns {
			if keep[c.Key] {
				selected = append(selected, c)
			}
		}
		if len(selected) == 0 {
			return nil, fmt.Errorf("%w: no matching columns found", ErrUnknownColumn)
		}
		columns = selected
	}

	store, err := NewRecordStore(columns...)
	if err != nil {
		return nil, err
	}

	n := src.RowCount()
	if opts.Limit > 0 && opts.Limit < n {
		n = opts.Limit
	}
	for i := 0; i < n; i++ {
		row, err := src.Row(i)
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", i, err)
		}
		projected := Row{ID: row.ID, Values: make(map[string]Value, len(columns))}
		for _, c := range columns {
			if v, ok := row.Values[c.Key]; ok {
				projected.Values[c.Key] = v
			}
		}
		if err := store.Add(projected); err != nil {
			return nil, fmt.Errorf("load row %d: %w", i, err)
		}
	}
	return store, nil
}
