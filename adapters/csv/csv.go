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

// Package csv reads delimited text files into a datatable.DataSource.
package csv

import (
	"bufio"
	"bytes"
	encsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/magpierre/datagrid/datatable"
)

// Config controls how a CSV file is read.
type Config struct {
	// HasHeaders treats the first record as column names.
	HasHeaders bool
	// TrimSpace trims leading and trailing whitespace from every field.
	TrimSpace bool
	// Delimiter separates fields. Zero detects it from the first line.
	Delimiter rune
	// IDColumn names the column holding row ids, matched case-insensitively.
	// Rows get generated ids when it is empty or absent from the file.
	IDColumn string
	// InferTypes turns all-numeric columns into number columns.
	InferTypes bool
}

// DefaultConfig returns the default CSV configuration.
func DefaultConfig() Config {
	return Config{
		HasHeaders: true,
		TrimSpace:  true,
		Delimiter:  ',',
		IDColumn:   "id",
		InferTypes: true,
	}
}

// DataSource is a fully read CSV file.
type DataSource struct {
	columns  []datatable.Column
	rows     []datatable.Row
	metadata datatable.Metadata
}

// NewFromFile reads the CSV file at path.
func NewFromFile(path string, config Config) (*DataSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	ds, err := NewFromReader(f, config)
	if err != nil {
		return nil, err
	}
	ds.metadata["source"] = path
	return ds, nil
}

// NewFromReader reads CSV data from r.
func NewFromReader(r io.Reader, config Config) (*DataSource, error) {
	br := bufio.NewReader(r)
	if config.Delimiter == 0 {
		first, err := br.Peek(4096)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _, _ := bytes.Cut(first, []byte("\n"))
		config.Delimiter = DetectSeparator(string(line))
	}

	reader := encsv.NewReader(br)
	reader.Comma = config.Delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = config.TrimSpace

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, datatable.ErrEmptyData
	}

	var header []string
	if config.HasHeaders {
		header, records = records[0], records[1:]
	}
	width := len(header)
	for _, rec := range records {
		width = max(width, len(rec))
	}
	keys := columnKeys(header, width, config.TrimSpace)

	idCol := -1
	if config.IDColumn != "" {
		for i, k := range keys {
			if strings.EqualFold(k, config.IDColumn) {
				idCol = i
				break
			}
		}
	}

	numeric := make([]bool, width)
	for i := range numeric {
		numeric[i] = config.InferTypes && isNumericColumn(records, i, config.TrimSpace)
	}

	ds := &DataSource{
		rows: make([]datatable.Row, 0, len(records)),
		metadata: datatable.Metadata{
			"format":    "csv",
			"delimiter": SeparatorName(config.Delimiter),
		},
	}
	columnValues := make([][]datatable.Value, width)
	for _, rec := range records {
		row := datatable.Row{Values: make(map[string]datatable.Value, width)}
		for i, key := range keys {
			v := cellValue(field(rec, i, config.TrimSpace), numeric[i])
			row.Values[key] = v
			columnValues[i] = append(columnValues[i], v)
		}
		if idCol >= 0 && !row.Values[keys[idCol]].IsNull {
			row.ID = datatable.ValueID(row.Values[keys[idCol]])
		} else {
			row.ID = datatable.GenerateRowID()
		}
		ds.rows = append(ds.rows, row)
	}

	ds.columns = make([]datatable.Column, width)
	for i, key := range keys {
		col := datatable.Column{Key: key, Label: key, Sortable: true, Editable: i != idCol}
		if config.InferTypes {
			col.Type = datatable.InferType(columnValues[i])
		}
		ds.columns[i] = col
	}
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

// DetectSeparator picks the most frequent of comma, semicolon, tab and pipe in
// line. It falls back to comma.
func DetectSeparator(line string) rune {
	maxCount := 0
	detected := ','
	for _, sep := range []rune{',', ';', '\t', '|'} {
		if count := strings.Count(line, string(sep)); count > maxCount {
			maxCount = count
			detected = sep
		}
	}
	return detected
}

// SeparatorName returns a human-readable name for the separator.
func SeparatorName(sep rune) string {
	switch sep {
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	case '\t':
		return "tab"
	case '|':
		return "pipe"
	default:
		return string(sep)
	}
}

// columnKeys names every column, filling blanks and disambiguating repeats.
func columnKeys(header []string, width int, trim bool) []string {
	keys := make([]string, width)
	used := make(map[string]bool, width)
	for i := range keys {
		base := field(header, i, trim)
		if base == "" {
			base = "column_" + strconv.Itoa(i+1)
		}
		key := base
		for n := 2; used[key]; n++ {
			key = base + "_" + strconv.Itoa(n)
		}
		used[key] = true
		keys[i] = key
	}
	return keys
}

func field(rec []string, i int, trim bool) string {
	if i >= len(rec) {
		return ""
	}
	if trim {
		return strings.TrimSpace(rec[i])
	}
	return rec[i]
}

func isNumericColumn(records [][]string, i int, trim bool) bool {
	found := false
	for _, rec := range records {
		s := strings.TrimSpace(field(rec, i, trim))
		if s == "" {
			continue
		}
		if _, ok := parseNumber(s); !ok {
			return false
		}
		found = true
	}
	return found
}

func cellValue(s string, numeric bool) datatable.Value {
	if s == "" {
		return datatable.NullValue()
	}
	if numeric {
		if f, ok := parseNumber(s); ok {
			return datatable.NumberValue(f)
		}
	}
	return datatable.TextValue(s)
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
