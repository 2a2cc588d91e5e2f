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

package windows

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/magpierre/datagrid/adapters"
	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/internal/filter"
)

const loadTimeoutSeconds = 120

// loadedTable is the result of reading a data file off the UI thread.
type loadedTable struct {
	model  *datatable.TableModel
	source datatable.DataSource
	name   string
}

// loadTable reads filePath and builds a model from it, applying options.
func loadTable(filePath string, options *QueryOptions, config datatable.Config) (*loadedTable, error) {
	ctx, cancel := createTimeoutContext(loadTimeoutSeconds)
	defer cancel()

	src, err := adapters.Open(ctx, filePath)
	if err != nil {
		return nil, err
	}
	return buildTable(src, filePath, options, config)
}

// buildTable copies src into a new model, applying options.
func buildTable(src datatable.DataSource, filePath string, options *QueryOptions, config datatable.Config) (*loadedTable, error) {
	store, err := datatable.LoadStore(src, options.loadOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filepath.Base(filePath), err)
	}

	model := datatable.NewTableModel(store, config)
	if options != nil && options.Predicate != "" {
		f, err := filter.Parse(model.Columns(), options.Predicate)
		if err != nil {
			return nil, fmt.Errorf("invalid predicate: %w", err)
		}
		model.SetPredicate(f)
	}
	return &loadedTable{model: model, source: src, name: filepath.Base(filePath)}, nil
}

// loadSummary describes a freshly loaded file for the status bar.
func loadSummary(lt *loadedTable) string {
	text := fmt.Sprintf("Loaded %s: %s (%d rows, %d columns",
		adapters.DetectFileType(lt.name), lt.name, lt.model.OriginalRowCount(), len(lt.model.Columns()))
	if sep, ok := lt.source.Metadata()["delimiter"]; ok {
		text += fmt.Sprintf(", separator: %v", sep)
	}
	if n := lt.source.RowCount(); n != lt.model.OriginalRowCount() {
		text += fmt.Sprintf(", limited from %d", n)
	}
	return text + ")"
}

// LoadDataFile loads a data file in the background and opens it in a tab.
func (t *MainWindow) LoadDataFile(filePath string, options *QueryOptions) {
	t.SetStatus("Loading " + filepath.Base(filePath) + "...")
	go func() {
		lt, err := loadTable(filePath, options, t.config)
		fyne.Do(func() { t.displayTable(filePath, lt, err) })
	}()
}

// LoadDataFileWithOptions reads the file's columns, asks for load options and
// then opens the table.
func (t *MainWindow) LoadDataFileWithOptions(filePath string) {
	t.SetStatus("Reading columns of " + filepath.Base(filePath) + "...")
	go func() {
		ctx, cancel := createTimeoutContext(loadTimeoutSeconds)
		defer cancel()

		src, err := adapters.Open(ctx, filePath)
		fyne.Do(func() {
			if err != nil {
				t.displayTable(filePath, nil, err)
				return
			}
			t.SetStatus("Ready")
			NewQueryOptionsDialog(t.w, src.Columns(), func(options *QueryOptions) {
				lt, err := buildTable(src, filePath, options, t.config)
				t.displayTable(filePath, lt, err)
			}).Show()
		})
	}()
}

func (t *MainWindow) displayTable(filePath string, lt *loadedTable, err error) {
	if err != nil {
		log.Printf("Error loading file %s: %v", filePath, err)
		t.SetStatus("Error loading file: " + err.Error())
		dialog.ShowError(err, t.w)
		return
	}
	t.dataBrowser.Show(lt.model, lt.name, filePath)
	t.addRecent(filePath)
	t.SetStatus(loadSummary(lt))
}
