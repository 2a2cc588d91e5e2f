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

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/export"
)

// Data holds information about a table tab.
type Data struct {
	grid      *DataGrid
	tab       *container.TabItem
	tableName string
	source    string
}

// DataBrowser manages one tab per loaded table.
type DataBrowser struct {
	w              fyne.Window
	docTabs        *container.DocTabs
	tabDataMap     map[*container.TabItem]*Data
	statusCallback func(string)
}

// NewDataBrowser attaches a browser to docTabs.
func NewDataBrowser(w fyne.Window, docTabs *container.DocTabs, statusCallback func(string)) *DataBrowser {
	t := &DataBrowser{
		w:              w,
		docTabs:        docTabs,
		tabDataMap:     make(map[*container.TabItem]*Data),
		statusCallback: statusCallback,
	}

	t.docTabs.CloseIntercept = func(ti *container.TabItem) {
		delete(t.tabDataMap, ti)
		t.docTabs.Remove(ti)

		if t.docTabs.Selected() != nil {
			t.updateStatusForTab(t.docTabs.Selected())
		} else if t.statusCallback != nil {
			t.statusCallback("Ready")
		}
	}
	t.docTabs.OnSelected = func(ti *container.TabItem) {
		t.updateStatusForTab(ti)
	}
	return t
}

// updateStatusForTab updates the status bar with information about the given tab.
func (t *DataBrowser) updateStatusForTab(ti *container.TabItem) {
	if ti == nil || t.statusCallback == nil {
		return
	}
	if data, exists := t.tabDataMap[ti]; exists {
		t.statusCallback(statusText(data.tableName, data.grid.Model()))
	}
}

// Show opens model in a tab named tableName, replacing a tab of the same name.
func (t *DataBrowser) Show(model *datatable.TableModel, tableName, source string) {
	data := &Data{tableName: tableName, source: source}
	data.grid = NewDataGrid(model, t.w, func() {
		if data.tab != nil && t.docTabs.Selected() == data.tab {
			t.updateStatusForTab(data.tab)
		}
	})

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentCopyIcon(), func() {
			fyne.CurrentApp().Clipboard().SetContent(model.ExportCSV())
			if t.statusCallback != nil {
				t.statusCallback(fmt.Sprintf("Copied %d rows as CSV", model.FilteredRowCount()))
			}
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			t.exportData(data, export.FormatCSV)
		}),
		widget.NewToolbarAction(theme.FileTextIcon(), func() {
			t.exportData(data, export.FormatJSON)
		}),
		widget.NewToolbarAction(theme.StorageIcon(), func() {
			t.exportData(data, export.FormatParquet)
		}),
	)
	content := container.NewBorder(toolbar, nil, nil, nil, data.grid.Content())

	for _, tab := range t.docTabs.Items {
		if tab.Text == tableName {
			delete(t.tabDataMap, tab)
			tab.Content = content
			data.tab = tab
			t.tabDataMap[tab] = data
			t.docTabs.Refresh()
			t.docTabs.Select(tab)
			t.updateStatusForTab(tab)
			return
		}
	}

	data.tab = container.NewTabItem(tableName, content)
	t.tabDataMap[data.tab] = data
	t.docTabs.Append(data.tab)
	t.docTabs.Select(data.tab)
	t.updateStatusForTab(data.tab)
}

// exportData writes the filtered and sorted rows of a tab, ignoring the
// current page, to a file picked by the user.
func (t *DataBrowser) exportData(data *Data, format export.Format) {
	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if writer == nil {
			// User cancelled
			return
		}
		defer writer.Close()

		columns, rows := data.grid.Model().ExportRows()
		if err := export.Write(writer, format, columns, rows); err != nil {
			log.Printf("Export %s: %v", writer.URI(), err)
			dialog.ShowError(fmt.Errorf("export failed: %w", err), t.w)
			return
		}
		dialog.ShowInformation("Export Successful",
			fmt.Sprintf("Exported %d rows to:\n%s", len(rows), writer.URI().Path()), t.w)
	}, t.w)

	saveDialog.SetFilter(storage.NewExtensionFileFilter([]string{format.Extension()}))
	saveDialog.SetFileName(cleanFilename(data.tableName) + format.Extension())
	saveDialog.Show()
}
