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

// Package arrow reads Apache Arrow tables and Parquet files into a
// datatable.DataSource.
package arrow

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/file"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/magpierre/datagrid/datatable"
)

// DefaultIDColumn is the field used for row ids when present.
const DefaultIDColumn = "id"

// DataSource holds the rows of an Arrow table converted to datatable values.
type DataSource struct {
	columns  []datatable.Column
	rows     []datatable.Row
	metadata datatable.Metadata
}

// NewFromArrowTable converts every row of table. The table is not retained.
func NewFromArrowTable(table arrow.Table) (*DataSource, error) {
	if table == nil {
		return nil, datatable.ErrNoDataSource
	}

	schema := table.Schema()
	numCols := len(schema.Fields())
	if numCols == 0 {
		return nil, datatable.ErrEmptyData
	}

	idCol := -1
	columns := make([]datatable.Column, numCols)
	for i, field := range schema.Fields() {
		columns[i] = datatable.Column{Key: field.Name, Label: field.Name, Sortable: true, Editable: true}
		if idCol < 0 && strings.EqualFold(field.Name, DefaultIDColumn) {
			idCol = i
			columns[i].Editable = false
		}
	}

	ds := &DataSource{
		rows: make([]datatable.Row, 0, table.NumRows()),
		metadata: datatable.Metadata{
			"format": "arrow",
			"schema": schema.String(),
		},
	}
	columnValues := make([][]datatable.Value, numCols)

	tr := array.NewTableReader(table, 1024)
	defer tr.Release()
	for tr.Next() {
		rec := tr.Record()
		for r := 0; r < int(rec.NumRows()); r++ {
			row := datatable.Row{Values: make(map[string]datatable.Value, numCols)}
			for c := 0; c < numCols; c++ {
				v := cellValue(rec.Column(c), r)
				row.Values[columns[c].Key] = v
				columnValues[c] = append(columnValues[c], v)
			}
			if idCol >= 0 && !row.Values[columns[idCol].Key].IsNull {
				row.ID = datatable.ValueID(row.Values[columns[idCol].Key])
			} else {
				row.ID = datatable.GenerateRowID()
			}
			ds.rows = append(ds.rows, row)
		}
	}
	if err := tr.Err(); err != nil {
		return nil, fmt.Errorf("failed to read arrow table: %w", err)
	}

	for i := range columns {
		if isNumeric(schema.Field(i).Type) {
			columns[i].Type = datatable.TypeNumber
		} else {
			columns[i].Type = datatable.InferType(columnValues[i])
		}
	}
	ds.columns = columns
	return ds, nil
}

// NewFromParquetFile reads the Parquet file at path.
func NewFromParquetFile(ctx context.Context, path string) (*DataSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer f.Close()

	pf, err := file.NewParquetReader(f, file.WithReadProps(&parquet.ReaderProperties{}))
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer pf.Close()

	mem := memory.NewGoAllocator()
	arrowReader, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{}, mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	table, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	defer table.Release()

	ds, err := NewFromArrowTable(table)
	if err != nil {
		return nil, err
	}
	ds.metadata["format"] = "parquet"
	ds.metadata["source"] = path
	ds.metadata["row_groups"] = pf.NumRowGroups()
	return ds, nil
}

// Columns implements datatable.DataSource.
func (ds *DataSource) Columns() []datatable.Column {
	return ds.columns
}

// RowCount implements datatable.DataSource.
func (ds *DataSource) RowCount() int {
	return len(ds.rows)
}

// ColumnCount returns the number of columns.
func (ds *DataSource) ColumnCount() int {
	return len(ds.columns)
}

// Row implements datatable.DataSource.
func (ds *DataSource) Row(row int) (datatable.Row, error) {
	if row < 0 || row >= len(ds.rows) {
		return datatable.Row{}, fmt.Errorf("%w: row %d out of range", datatable.ErrUnknownRow, row)
	}
	return ds.rows[row], nil
}

// Metadata implements datatable.DataSource.
func (ds *DataSource) Metadata() datatable.Metadata {
	return ds.metadata
}

func isNumeric(dt arrow.DataType) bool {
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64,
		arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64:
		return true
	}
	return false
}

// cellValue converts position pos of col. Numeric types become numbers;
// everything else is kept as Arrow's string rendering.
func cellValue(col arrow.Array, pos int) datatable.Value {
	if col.IsNull(pos) {
		return datatable.NullValue()
	}

	switch a := col.(type) {
	case *array.Int8:
		return datatable.NumberValue(float64(a.Value(pos)))
	case *array.Int16:
		return datatable.NumberValue(float64(a.Value(pos)))
	case *array.Int32:
		return datatable.NumberValue(float64(a.Value(pos)))
	case *array.Int64:
		return datatable.NumberValue(float64(a.Value(pos)))
	case *array.Uint8:
		return datatable.NumberValue(float64(a.Value(pos)))
	case *array.Uint16:
		return datatable.NumberValue(float64(a.Value(pos)))
	case *array.Uint32:
		return datatable.NumberValue(float64(a.Value(pos)))
	case *array.Uint64:
		return datatable.NumberValue(float64(a.Value(pos)))
	case *array.Float16:
		return datatable.NumberValue(float64(a.Value(pos).Float32()))
	case *array.Float32:
		return datatable.NumberValue(float64(a.Value(pos)))
	case *array.Float64:
		return datatable.NumberValue(a.Value(pos))
	case *array.String:
		return datatable.TextValue(a.Value(pos))
	case *array.LargeString:
		return datatable.TextValue(a.Value(pos))
	}
	return datatable.TextValue(col.ValueStr(pos))
}
