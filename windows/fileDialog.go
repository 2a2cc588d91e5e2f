package windows

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/datagrid/adapters"
)

// dirEntry is one line of the file browser.
type dirEntry struct {
	name  string
	isDir bool
}

// listDataDir lists the visible subdirectories of dir followed by the files
// the adapters can open, each group in name order.
func listDataDir(dir string) ([]dirEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var dirs, files []dirEntry
	for _, e := range entries {
		switch {
		case strings.HasPrefix(e.Name(), "."):
		case e.IsDir():
			dirs = append(dirs, dirEntry{name: e.Name(), isDir: true})
		case isDataFile(e.Name()):
			files = append(files, dirEntry{name: e.Name()})
		}
	}
	byName := func(a, b dirEntry) int { return strings.Compare(strings.ToLower(a.name), strings.ToLower(b.name)) }
	slices.SortFunc(dirs, byName)
	slices.SortFunc(files, byName)
	return append(dirs, files...), nil
}

// DataFileDialog browses the file system for CSV, JSON and Parquet files.
type DataFileDialog struct {
	dialog   dialog.Dialog
	window   fyne.Window
	callback func(string)

	homeDir string
	dir     string
	entries []dirEntry

	list      *widget.List
	pathLabel *widget.Label
}

// NewDataFileDialog starts browsing in dir, or the home directory when dir
// is empty. callback receives the chosen file path.
func NewDataFileDialog(w fyne.Window, dir string, callback func(string)) *DataFileDialog {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if dir == "" {
		dir = home
	}
	return &DataFileDialog{window: w, callback: callback, homeDir: home, dir: dir}
}

func (d *DataFileDialog) Show() {
	d.pathLabel = widget.NewLabel(d.dir)
	d.pathLabel.Truncation = fyne.TextTruncateEllipsis
	d.pathLabel.TextStyle = fyne.TextStyle{Bold: true}

	d.list = widget.NewList(
		func() int { return len(d.entries) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.DocumentIcon()), widget.NewLabel("template"))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			row := obj.(*fyne.Container)
			e := d.entries[id]
			if e.isDir {
				row.Objects[0].(*widget.Icon).SetResource(theme.FolderIcon())
			} else {
				row.Objects[0].(*widget.Icon).SetResource(fileIcon(e.name))
			}
			row.Objects[1].(*widget.Label).SetText(e.name)
		},
	)
	d.list.OnSelected = d.open

	nav := container.NewHBox(
		widget.NewButtonWithIcon("Home", theme.HomeIcon(), func() { d.chdir(d.homeDir) }),
		widget.NewButtonWithIcon("Up", theme.NavigateBackIcon(), func() { d.chdir(filepath.Dir(d.dir)) }),
		widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() { d.chdir(d.dir) }),
	)
	filterInfo := widget.NewLabel("Showing directories and " + strings.Join(adapters.Extensions, ", ") + " files")
	filterInfo.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewBorder(
		container.NewVBox(
			container.NewBorder(nil, nil, nav, nil, d.pathLabel),
			widget.NewSeparator(),
			filterInfo,
		),
		nil, nil, nil,
		d.list,
	)

	d.dialog = dialog.NewCustom("Open Data File", "Close", content, d.window)
	d.dialog.Resize(fyne.NewSize(800, 600))
	d.chdir(d.dir)
	d.dialog.Show()
}

// open enters a directory or hands a file to the callback.
func (d *DataFileDialog) open(id widget.ListItemID) {
	d.list.UnselectAll()
	if id < 0 || id >= len(d.entries) {
		return
	}
	e := d.entries[id]
	path := filepath.Join(d.dir, e.name)
	if e.isDir {
		d.chdir(path)
		return
	}
	d.dialog.Hide()
	if d.callback != nil {
		d.callback(path)
	}
}

func (d *DataFileDialog) chdir(dir string) {
	entries, err := listDataDir(dir)
	if err != nil {
		dialog.ShowError(err, d.window)
		return
	}
	d.dir, d.entries = dir, entries
	d.pathLabel.SetText(dir)
	d.list.Refresh()
}

// isDataFile reports whether name has an extension the adapters can open.
func isDataFile(name string) bool {
	return slices.Contains(adapters.Extensions, strings.ToLower(filepath.Ext(name)))
}

func fileIcon(name string) fyne.Resource {
	switch adapters.DetectFileType(name) {
	case adapters.FileTypeCSV:
		return theme.FileTextIcon()
	case adapters.FileTypeParquet:
		return theme.StorageIcon()
	}
	return theme.DocumentIcon()
}
