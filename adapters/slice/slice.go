// Package slice adapts in-memory records, such as decoded JSON objects, to a
// datatable.DataSource.
package slice

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/magpierre/datagrid/datatable"
)

// Config controls how records become rows.
type Config struct {
	// IDColumn names the field holding row ids. Records without it get
	// generated ids.
	IDColumn string
	// Columns fixes the column order. Empty uses the sorted union of all
	// record keys with the id column first.
	Columns []string
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{IDColumn: "id"}
}

// DataSource serves rows built from a slice of records.
type DataSource struct {
	columns  []datatable.Column
	rows     []datatable.Row
	metadata datatable.Metadata
}

// NewFromMaps builds a DataSource from records using DefaultConfig.
func NewFromMaps(records []map[string]interface{}) (*DataSource, error) {
	return NewFromMapsWithConfig(records, DefaultConfig())
}

// NewFromMapsWithConfig builds a DataSource from records.
func NewFromMapsWithConfig(records []map[string]interface{}, config Config) (*DataSource, error) {
	if len(records) == 0 {
		return nil, datatable.ErrEmptyData
	}

	keys := config.Columns
	if len(keys) == 0 {
		keys = recordKeys(records, config.IDColumn)
	}

	ds := &DataSource{
		rows:     make([]datatable.Row, len(records)),
		metadata: datatable.Metadata{"format": "records"},
	}
	columnValues := make([][]datatable.Value, len(keys))
	for i, rec := range records {
		row := datatable.Row{Values: make(map[string]datatable.Value, len(keys))}
		for j, key := range keys {
			v, err := toValue(rec[key])
			if err != nil {
				return nil, fmt.Errorf("record %d field %q: %w", i, key, err)
			}
			row.Values[key] = v
			columnValues[j] = append(columnValues[j], v)
		}
		if id, ok := rec[config.IDColumn]; ok && config.IDColumn != "" && id != nil {
			v, err := toValue(id)
			if err != nil {
				return nil, fmt.Errorf("record %d id: %w", i, err)
			}
			row.ID = datatable.ValueID(v)
		} else {
			row.ID = datatable.GenerateRowID()
		}
		ds.rows[i] = row
	}

	ds.columns = make([]datatable.Column, len(keys))
	for j, key := range keys {
		ds.columns[j] = datatable.Column{
			Key:      key,
			Label:    key,
			Sortable: true,
			Editable: key != config.IDColumn,
			Type:     datatable.InferType(columnValues[j]),
		}
	}
	return ds, nil
}

// NewFromJSON decodes a JSON array of objects, or a single object, from r.
func NewFromJSON(r io.Reader, config Config) (*DataSource, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON: %w", err)
	}

	var data []map[string]interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		var single map[string]interface{}
		if err := json.Unmarshal(content, &single); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
		data = []map[string]interface{}{single}
	}
	ds, err := NewFromMapsWithConfig(data, config)
	if err != nil {
		return nil, err
	}
	ds.metadata["format"] = "json"
	return ds, nil
}

// NewFromJSONFile decodes the JSON file at path.
func NewFromJSONFile(path string, config Config) (*DataSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	ds, err := NewFromJSON(f, config)
	if err != nil {
		return nil, err
	}
	ds.metadata["source"] = path
	return ds, nil
}

// Columns implements datatable.DataSource.
func (ds *DataSource) Columns() []datatable.Column { return ds.columns }

// RowCount implements datatable.DataSource.
func (ds *DataSource) RowCount() int { return len(ds.rows) }

// ColumnCount returns the number of columns.
func (ds *DataSource) ColumnCount() int { return len(ds.columns) }

// Metadata implements datatable.DataSource.
func (ds *DataSource) Metadata() datatable.Metadata { return ds.metadata }

// Row implements datatable.DataSource.
func (ds *DataSource) Row(row int) (datatable.Row, error) {
	if row < 0 || row >= len(ds.rows) {
		return datatable.Row{}, fmt.Errorf("%w: row %d out of range", datatable.ErrUnknownRow, row)
	}
	return ds.rows[row], nil
}

func recordKeys(records []map[string]interface{}, idColumn string) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		switch {
		case a == idColumn:
			return -1
		case b == idColumn:
			return 1
		}
		return strings.Compare(a, b)
	})
	return keys
}

// toValue converts a decoded field. Nested objects and arrays are kept as
// their JSON text.
func toValue(v interface{}) (datatable.Value, error) {
	switch v := v.(type) {
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return datatable.Value{}, err
		}
		return datatable.TextValue(string(b)), nil
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return datatable.NumberValue(f), nil
		}
		return datatable.TextValue(v.String()), nil
	}
	return datatable.NewValue(v), nil
}
