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

// Package export writes rows of a datatable view as CSV, JSON or Parquet.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/magpierre/datagrid/datatable"
)

// Format represents the supported export formats
type Format int

const (
	FormatParquet Format = iota
	FormatCSV
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatParquet:
		return "parquet"
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	return "." + f.String()
}

// ParseFormat returns the format named s, ignoring case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "parquet":
		return FormatParquet, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%w: unknown format %q", datatable.ErrExportFailed, s)
}

// FormatForPath picks the format from the extension of path.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Write exports rows to w in the given format.
func Write(w io.Writer, format Format, columns []datatable.Column, rows []datatable.Row) error {
	switch format {
	case FormatCSV:
		if err := datatable.WriteCSV(w, columns, rows); err != nil {
			return fmt.Errorf("%w: %w", datatable.ErrExportFailed, err)
		}
		return nil
	case FormatJSON:
		return WriteJSON(w, columns, rows)
	case FormatParquet:
		return WriteParquet(w, columns, rows)
	}
	return fmt.Errorf("%w: unknown format %s", datatable.ErrExportFailed, format)
}

// ToFile exports rows to a new file at path.
func ToFile(path string, format Format, columns []datatable.Column, rows []datatable.Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create %s file: %w", datatable.ErrExportFailed, format, err)
	}
	if err := Write(file, format, columns, rows); err != nil {
		file.Close()
		return err
	}
	// The Parquet writer closes the file itself.
	if err := file.Close(); err != nil && format != FormatParquet {
		return fmt.Errorf("%w: %w", datatable.ErrExportFailed, err)
	}
	return nil
}

// WriteParquet writes rows as a Snappy-compressed Parquet file.
func WriteParquet(w io.Writer, columns []datatable.Column, rows []datatable.Row) error {
	table, err := ToArrowTable(memory.NewGoAllocator(), columns, rows)
	if err != nil {
		return err
	}
	defer table.Release()

	props := parquet.NewWriterProperties(parquet.WithCompression(compress.Codecs.Snappy))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())

	writer, err := pqarrow.NewFileWriter(table.Schema(), w, props, arrowProps)
	if err != nil {
		return fmt.Errorf("%w: failed to create parquet writer: %w", datatable.ErrExportFailed, err)
	}
	if err := writer.WriteTable(table, max(table.NumRows(), 1)); err != nil {
		writer.Close()
		return fmt.Errorf("%w: failed to write table to parquet: %w", datatable.ErrExportFailed, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("%w: failed to close parquet writer: %w", datatable.ErrExportFailed, err)
	}
	return nil
}

// WriteJSON writes rows as an indented JSON array of objects keyed by column
// key. Numbers stay numbers and nulls become null.
func WriteJSON(w io.Writer, columns []datatable.Column, rows []datatable.Row) error {
	records := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]interface{}, len(columns))
		for _, col := range columns {
			v := row.Get(col.Key)
			if v.IsNull {
				record[col.Key] = nil
			} else {
				record[col.Key] = v.Raw
			}
		}
		records = append(records, record)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(records); err != nil {
		return fmt.Errorf("%w: failed to encode JSON: %w", datatable.ErrExportFailed, err)
	}
	return nil
}

// ToArrowTable builds a single-chunk Arrow table from rows. A column whose
// non-null values are all numbers becomes float64; every other column is a
// string column.
func ToArrowTable(mem memory.Allocator, columns []datatable.Column, rows []datatable.Row) (arrow.Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no columns", datatable.ErrExportFailed)
	}

	fields := make([]arrow.Field, len(columns))
	for i, col := range columns {
		typ := arrow.DataType(arrow.BinaryTypes.String)
		if numericColumn(col.Key, rows) {
			typ = arrow.PrimitiveTypes.Float64
		}
		fields[i] = arrow.Field{Name: col.Label, Type: typ, Nullable: true}
		if fields[i].Name == "" {
			fields[i].Name = col.Key
		}
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for i, col := range columns {
		switch fb := b.Field(i).(type) {
		case *array.Float64Builder:
			for _, row := range rows {
				if f, ok := row.Get(col.Key).Float(); ok {
					fb.Append(f)
				} else {
					fb.AppendNull()
				}
			}
		case *array.StringBuilder:
			for _, row := range rows {
				if v := row.Get(col.Key); v.IsNull {
					fb.AppendNull()
				} else {
					fb.Append(v.Formatted)
				}
			}
		}
	}

	rec := b.NewRecord()
	defer rec.Release()
	return array.NewTableFromRecords(schema, []arrow.Record{rec}), nil
}

func numericColumn(key string, rows []datatable.Row) bool {
	found := false
	for _, row := range rows {
		v := row.Get(key)
		if v.IsNull {
			continue
		}
		if !v.IsNumber() {
			return false
		}
		found = true
	}
	return found
}
