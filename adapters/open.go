// Package adapters opens data files with the adapter matching their type.
package adapters

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	arrowadapter "github.com/magpierre/datagrid/adapters/arrow"
	csvadapter "github.com/magpierre/datagrid/adapters/csv"
	sliceadapter "github.com/magpierre/datagrid/adapters/slice"
	"github.com/magpierre/datagrid/datatable"
)

// FileType represents the type of data file
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeCSV
	FileTypeParquet
	FileTypeJSON
)

// String returns the string representation of a FileType.
func (ft FileType) String() string {
	switch ft {
	case FileTypeCSV:
		return "CSV"
	case FileTypeParquet:
		return "Parquet"
	case FileTypeJSON:
		return "JSON"
	default:
		return "unknown"
	}
}

// Extensions lists the file extensions Open understands.
var Extensions = []string{".csv", ".tsv", ".parquet", ".json"}

// DetectFileType determines the type of file based on its extension.
func DetectFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FileTypeCSV
	case ".parquet":
		return FileTypeParquet
	case ".json":
		return FileTypeJSON
	default:
		return FileTypeUnknown
	}
}

// Open reads the file at path with the adapter for its type. CSV delimiters
// are detected from the first line.
func Open(ctx context.Context, path string) (datatable.DataSource, error) {
	switch ft := DetectFileType(path); ft {
	case FileTypeCSV:
		config := csvadapter.DefaultConfig()
		config.Delimiter = 0
		ds, err := csvadapter.NewFromFile(path, config)
		if err != nil {
			return nil, fmt.Errorf("failed to load CSV file: %w", err)
		}
		return ds, nil
	case FileTypeParquet:
		ds, err := arrowadapter.NewFromParquetFile(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to load Parquet file: %w", err)
		}
		return ds, nil
	case FileTypeJSON:
		ds, err := sliceadapter.NewFromJSONFile(path, sliceadapter.DefaultConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to load JSON file: %w", err)
		}
		return ds, nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", filepath.Base(path))
	}
}

// Load opens path and copies it into a RecordStore.
func Load(ctx context.Context, path string, opts datatable.LoadOptions) (*datatable.RecordStore, datatable.DataSource, error) {
	src, err := Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	store, err := datatable.LoadStore(src, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load %s: %w", filepath.Base(path), err)
	}
	return store, src, nil
}
