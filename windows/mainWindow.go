// Package windows is the desktop front end: it loads data files into
// datatable models and renders them with fyne.
package windows

import (
	"path/filepath"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/datagrid/adapters"
	"github.com/magpierre/datagrid/datatable"
)

const maxRecentFiles = 10

type MainWindow struct {
	a                        fyne.App
	w                        fyne.Window
	top, left, right, bottom fyne.CanvasObject
	config                   datatable.Config
	recent                   []string
	recentBindingList        binding.StringList
	docTabs                  *container.DocTabs
	dataBrowser              *DataBrowser
	statusBar                *widget.Label
}

// CreateMainWindow builds the main window and runs the app until it quits.
// Files in paths are opened on start.
func CreateMainWindow(config datatable.Config, paths ...string) *MainWindow {
	var v MainWindow
	v.config = config
	v.NewMainWindow(paths...)
	return &v
}

// OpenFile asks for a data file and loads it.
func (t *MainWindow) OpenFile(withOptions bool) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.w)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if withOptions {
			t.LoadDataFileWithOptions(path)
		} else {
			t.LoadDataFile(path, nil)
		}
	}, t.w)
	fd.SetFilter(storage.NewExtensionFileFilter(adapters.Extensions))
	fd.Show()
}

// BrowseFiles opens the in-app file browser, starting next to the most
// recently opened file.
func (t *MainWindow) BrowseFiles() {
	dir := ""
	if len(t.recent) > 0 {
		dir = filepath.Dir(t.recent[0])
	}
	NewDataFileDialog(t.w, dir, func(path string) {
		t.LoadDataFile(path, nil)
	}).Show()
}

// SetStatus updates the status bar message
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

// addRecent moves path to the top of the recent files list.
func (t *MainWindow) addRecent(path string) {
	t.recent = slices.DeleteFunc(t.recent, func(p string) bool { return p == path })
	t.recent = slices.Insert(t.recent, 0, path)
	if len(t.recent) > maxRecentFiles {
		t.recent = t.recent[:maxRecentFiles]
	}
	names := make([]string, len(t.recent))
	for i, p := range t.recent {
		names[i] = filepath.Base(p)
	}
	t.recentBindingList.Set(names)
}

func (t *MainWindow) NewMainWindow(paths ...string) {
	t.a = app.NewWithID("io.github.magpierre.datagrid")
	t.a.Settings().SetTheme(&CustomTheme{})
	t.w = t.a.NewWindow("Data Grid")
	t.w.Resize(fyne.NewSize(1000, 700))

	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}
	t.bottom = container.NewHBox(t.statusBar)

	t.recentBindingList = binding.NewStringList()
	recentWidget := widget.NewListWithData(t.recentBindingList, func() fyne.CanvasObject {
		return widget.NewLabel("template")
	}, func(di binding.DataItem, co fyne.CanvasObject) {
		co.(*widget.Label).Bind(di.(binding.String))
	})
	recentWidget.OnSelected = func(id widget.ListItemID) {
		if id >= 0 && id < len(t.recent) {
			t.LoadDataFile(t.recent[id], nil)
		}
		recentWidget.UnselectAll()
	}
	t.left = container.NewGridWrap(fyne.NewSize(180, 600), widget.NewCard("", "Recent files", recentWidget))
	t.left.Hide()
	t.right = container.NewVBox()

	t.docTabs = container.NewDocTabs()
	t.dataBrowser = NewDataBrowser(t.w, t.docTabs, t.SetStatus)

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.MenuIcon(), func() {
			if !t.left.Visible() {
				t.left.Show()
			} else {
				t.left.Hide()
			}
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() { t.OpenFile(false) }),
		widget.NewToolbarAction(theme.SettingsIcon(), func() { t.OpenFile(true) }),
		widget.NewToolbarAction(theme.SearchIcon(), t.BrowseFiles),
		widget.NewToolbarSpacer(),
	)
	t.top = toolbar

	c := container.NewBorder(t.top, t.bottom, t.left, t.right, t.docTabs)
	t.w.SetContent(c)

	for _, p := range paths {
		t.LoadDataFile(p, nil)
	}
	t.w.ShowAndRun()
}
