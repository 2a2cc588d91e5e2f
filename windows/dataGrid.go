package windows

import (
	"errors"
	"fmt"
	"image/color"
	"log"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/internal/filter"
)

const (
	selectColumnWidth = 48
	dataColumnWidth   = 150
)

var pageSizes = []string{"5", "10", "25", "50", "100"}

// DataGrid renders a TableModel: a search box, a predicate box, sortable
// headers, a selection column, the current page and a pager. Every user
// action becomes a model command followed by a redraw from the model's view.
type DataGrid struct {
	model    *datatable.TableModel
	window   fyne.Window
	onChange func()

	page datatable.Page

	search     *widget.Entry
	where      *widget.Entry
	table      *widget.Table
	pager      *fyne.Container
	perPage    *widget.Select
	rangeLabel *widget.Label
	deleteBtn  *widget.Button
	content    fyne.CanvasObject
}

// NewDataGrid builds the grid for model. onChange runs after every redraw.
func NewDataGrid(model *datatable.TableModel, w fyne.Window, onChange func()) *DataGrid {
	g := &DataGrid{model: model, window: w, onChange: onChange}

	g.search = widget.NewEntry()
	g.search.SetPlaceHolder("Search all columns...")
	g.search.OnChanged = func(s string) {
		g.model.SetQuery(s)
		g.refresh()
	}

	g.where = widget.NewEntry()
	g.where.SetPlaceHolder("Filter, e.g. age >= 30 AND status = 'active'")
	g.where.OnSubmitted = g.applyPredicate

	g.table = widget.NewTable(g.size, g.createCell, g.updateCell)
	g.table.ShowHeaderRow = true
	g.table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("", nil)
	}
	g.table.UpdateHeader = g.updateHeader
	g.table.OnSelected = g.cellTapped

	g.table.SetColumnWidth(0, selectColumnWidth)
	for i := range g.model.Columns() {
		g.table.SetColumnWidth(i+1, dataColumnWidth)
	}

	g.perPage = widget.NewSelect(pageSizes, func(s string) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return
		}
		g.model.SetItemsPerPage(n)
		g.refresh()
	})
	g.perPage.Selected = strconv.Itoa(model.Pagination().ItemsPerPage)

	g.rangeLabel = widget.NewLabel("")
	g.pager = container.NewHBox()

	g.deleteBtn = widget.NewButtonWithIcon("Delete selected", theme.DeleteIcon(), g.confirmDelete)
	g.deleteBtn.Importance = widget.DangerImportance

	clearBtn := widget.NewButton("Clear selection", func() {
		g.model.ClearSelection()
		g.refresh()
	})

	filters := container.NewBorder(nil, nil, widget.NewLabel("Search:"), nil,
		container.NewGridWithColumns(2, g.search, g.where))
	actions := container.NewHBox(g.deleteBtn, clearBtn)
	footer := container.NewBorder(nil, nil, g.rangeLabel,
		container.NewHBox(widget.NewLabel("Rows per page:"), g.perPage), container.NewCenter(g.pager))

	g.content = container.NewBorder(container.NewVBox(filters, actions), footer, nil, nil, g.table)
	g.refresh()
	return g
}

// Content returns the canvas object to place in a window or tab.
func (g *DataGrid) Content() fyne.CanvasObject {
	return g.content
}

// Model returns the model the grid renders.
func (g *DataGrid) Model() *datatable.TableModel {
	return g.model
}

// refresh pulls a new view from the model and redraws everything.
func (g *DataGrid) refresh() {
	g.page = g.model.View()

	g.rangeLabel.SetText(rangeText(g.page, g.model.OriginalRowCount()))
	g.rebuildPager()

	if n := g.model.SelectedCount(); n > 0 {
		g.deleteBtn.SetText(fmt.Sprintf("Delete selected (%d)", n))
		g.deleteBtn.Enable()
	} else {
		g.deleteBtn.SetText("Delete selected")
		g.deleteBtn.Disable()
	}

	g.table.Refresh()
	if g.onChange != nil {
		g.onChange()
	}
}

func (g *DataGrid) rebuildPager() {
	g.pager.RemoveAll()
	state := g.page.State

	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		g.model.SetPage(state.CurrentPage - 1)
		g.refresh()
	})
	if state.CurrentPage <= 1 {
		prev.Disable()
	}
	g.pager.Add(prev)

	for _, b := range g.model.PageButtons() {
		if b.Ellipsis {
			g.pager.Add(widget.NewLabel("…"))
			continue
		}
		n := b.Page
		btn := widget.NewButton(strconv.Itoa(n), func() {
			g.model.SetPage(n)
			g.refresh()
		})
		if b.Current {
			btn.Importance = widget.HighImportance
		}
		g.pager.Add(btn)
	}

	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		g.model.SetPage(state.CurrentPage + 1)
		g.refresh()
	})
	if state.CurrentPage >= g.page.PageCount {
		next.Disable()
	}
	g.pager.Add(next)
}

func (g *DataGrid) size() (int, int) {
	return len(g.page.Items), len(g.model.Columns()) + 1
}

func (g *DataGrid) createCell() fyne.CanvasObject {
	bg := canvas.NewRectangle(color.Transparent)
	label := widget.NewLabel("")
	label.Truncation = fyne.TextTruncateEllipsis
	return container.NewStack(bg, label)
}

func (g *DataGrid) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	if id.Row < 0 || id.Row >= len(g.page.Items) {
		return
	}
	row := g.page.Items[id.Row]
	cell := obj.(*fyne.Container)
	bg := cell.Objects[0].(*canvas.Rectangle)
	label := cell.Objects[1].(*widget.Label)

	switch {
	case g.model.IsSelected(row.ID):
		bg.FillColor = themeColor(colorNameRowSelected)
	case id.Row%2 == 1:
		bg.FillColor = themeColor(colorNameRowStripe)
	default:
		bg.FillColor = color.Transparent
	}
	bg.Refresh()

	if id.Col == 0 {
		label.SetText(rowGlyph(g.model.IsSelected(row.ID)))
		return
	}
	col := g.model.Columns()[id.Col-1]
	label.TextStyle = fyne.TextStyle{Italic: g.model.IsEditing(row.ID, col.Key)}
	label.SetText(row.Get(col.Key).Formatted)
}

func (g *DataGrid) updateHeader(id widget.TableCellID, obj fyne.CanvasObject) {
	btn := obj.(*widget.Button)
	if id.Col == 0 {
		btn.SetText(selectAllGlyph(g.model.IsAllVisibleSelected(), g.model.IsSomeVisibleSelected()))
		btn.OnTapped = func() {
			g.model.ToggleSelectAllVisible()
			g.refresh()
		}
		if len(g.page.Items) == 0 {
			btn.Disable()
		} else {
			btn.Enable()
		}
		return
	}
	if id.Col-1 >= len(g.model.Columns()) {
		return
	}

	col := g.model.Columns()[id.Col-1]
	btn.SetText(headerText(col, g.model.SortState()))
	btn.Importance = widget.LowImportance
	btn.OnTapped = func() {
		g.model.SetSort(col.Key)
		g.refresh()
	}
	if col.Sortable {
		btn.Enable()
	} else {
		btn.Disable()
	}
}

func (g *DataGrid) cellTapped(id widget.TableCellID) {
	g.table.Unselect(id)
	if id.Row < 0 || id.Row >= len(g.page.Items) {
		return
	}
	row := g.page.Items[id.Row]

	if id.Col == 0 {
		g.model.ToggleRowSelection(row.ID)
		g.refresh()
		return
	}

	col := g.model.Columns()[id.Col-1]
	ok, err := g.model.BeginEdit(row.ID, col.Key)
	if err != nil {
		log.Printf("Begin edit %s/%s: %v", row.ID, col.Key, err)
		return
	}
	if !ok {
		return
	}
	g.table.Refresh()
	g.showEditor(col)
}

// showEditor edits the model's current cell. A rejected value keeps the
// session open and the dialog comes back with the draft.
func (g *DataGrid) showEditor(col datatable.Column) {
	cell, ok := g.model.Editing()
	if !ok {
		return
	}

	var input fyne.CanvasObject
	if col.Type == datatable.TypeSelect {
		sel := widget.NewSelect(col.Options, func(s string) {
			_ = g.model.UpdateDraft(s)
		})
		sel.Selected = cell.Draft
		input = sel
	} else {
		entry := widget.NewEntry()
		entry.SetText(cell.Draft)
		entry.OnChanged = func(s string) {
			_ = g.model.UpdateDraft(s)
		}
		input = entry
	}

	content := container.NewVBox(widget.NewLabel(fmt.Sprintf("Row %s", cell.RowID)), input)
	d := dialog.NewCustomConfirm("Edit "+col.Label, "Save", "Cancel", content, func(save bool) {
		if !save {
			_ = g.model.CancelEdit()
			g.refresh()
			return
		}
		if err := g.model.CommitEdit(); err != nil {
			var invalid *datatable.InvalidValueError
			if errors.As(err, &invalid) {
				dialog.ShowError(invalid, g.window)
				g.showEditor(col)
				return
			}
			log.Printf("Commit edit: %v", err)
		}
		g.refresh()
	}, g.window)
	d.Resize(fyne.NewSize(360, 180))
	d.Show()
}

func (g *DataGrid) applyPredicate(expr string) {
	f, err := filter.Parse(g.model.Columns(), expr)
	if err != nil {
		dialog.ShowError(err, g.window)
		return
	}
	g.model.SetPredicate(f)
	g.refresh()
}

func (g *DataGrid) confirmDelete() {
	n := g.model.SelectedCount()
	if n == 0 {
		return
	}
	dialog.ShowConfirm("Delete rows", fmt.Sprintf("Delete %d selected row(s)?", n), func(ok bool) {
		if !ok {
			return
		}
		removed := g.model.DeleteSelected()
		log.Printf("Deleted %d rows", removed)
		g.refresh()
	}, g.window)
}
