package windows

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/internal/filter"
)

// QueryOptions holds the query configuration for table data loading
type QueryOptions struct {
	SelectedColumns []string
	Predicate       string
	Limit           int
}

// loadOptions converts the dialog result for datatable.LoadStore. A nil
// receiver loads everything.
func (o *QueryOptions) loadOptions() datatable.LoadOptions {
	if o == nil {
		return datatable.LoadOptions{}
	}
	return datatable.LoadOptions{Columns: o.SelectedColumns, Limit: o.Limit}
}

// parseLimit reads the row limit field. Empty means no limit.
func parseLimit(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(text)
	if err != nil || limit <= 0 {
		return 0, fmt.Errorf("invalid limit: must be a positive number")
	}
	return limit, nil
}

// QueryOptionsDialog creates a dialog for configuring query options
type QueryOptionsDialog struct {
	dialog         dialog.Dialog
	window         fyne.Window
	columns        []datatable.Column
	columnChecks   []*widget.Check
	predicateEntry *widget.Entry
	limitEntry     *widget.Entry
	callback       func(*QueryOptions)
}

// NewQueryOptionsDialog creates a new query options dialog
func NewQueryOptionsDialog(w fyne.Window, columns []datatable.Column, callback func(*QueryOptions)) *QueryOptionsDialog {
	qod := &QueryOptionsDialog{
		window:   w,
		columns:  columns,
		callback: callback,
	}
	qod.createDialog()
	return qod
}

func (qod *QueryOptionsDialog) createDialog() {
	columnSelectLabel := widget.NewLabel("Select Columns:")
	columnSelectLabel.TextStyle = fyne.TextStyle{Bold: true}

	columnCheckboxes := container.NewVBox()

	selectAllBtn := widget.NewButton("Select All", func() {
		for _, check := range qod.columnChecks {
			check.SetChecked(true)
		}
	})
	deselectAllBtn := widget.NewButton("Deselect All", func() {
		for _, check := range qod.columnChecks {
			check.SetChecked(false)
		}
	})
	selectButtons := container.NewHBox(selectAllBtn, deselectAllBtn)

	for _, col := range qod.columns {
		check := widget.NewCheck(fmt.Sprintf("%s (%s)", col.Label, col.Type), nil)
		check.SetChecked(true)
		qod.columnChecks = append(qod.columnChecks, check)
		columnCheckboxes.Add(check)
	}

	columnScroll := container.NewVScroll(columnCheckboxes)
	columnScroll.SetMinSize(fyne.NewSize(400, 200))

	predicateLabel := widget.NewLabel("Filter Predicate:")
	predicateLabel.TextStyle = fyne.TextStyle{Bold: true}

	qod.predicateEntry = widget.NewMultiLineEntry()
	qod.predicateEntry.SetPlaceHolder("e.g., age > 25 AND status = 'active'")
	qod.predicateEntry.SetMinRowsVisible(3)

	predicateHelp := widget.NewLabel("Operators: = != > < >= <= ~ (contains), combined with AND / OR.")
	predicateHelp.TextStyle = fyne.TextStyle{Italic: true}

	limitLabel := widget.NewLabel("Row Limit:")
	limitLabel.TextStyle = fyne.TextStyle{Bold: true}

	qod.limitEntry = widget.NewEntry()
	qod.limitEntry.SetPlaceHolder("Leave empty for all rows, or enter a number (e.g., 1000)")

	content := container.NewVBox(
		columnSelectLabel,
		selectButtons,
		columnScroll,
		widget.NewSeparator(),
		predicateLabel,
		qod.predicateEntry,
		predicateHelp,
		widget.NewSeparator(),
		limitLabel,
		qod.limitEntry,
	)

	qod.dialog = dialog.NewCustomConfirm(
		"Load Options",
		"Load Data",
		"Cancel",
		content,
		func(confirmed bool) {
			if confirmed {
				qod.handleConfirm()
			}
		},
		qod.window,
	)
	qod.dialog.Resize(fyne.NewSize(500, 600))
}

func (qod *QueryOptionsDialog) handleConfirm() {
	options := &QueryOptions{}

	// Keep source order.
	var selected []datatable.Column
	for i, check := range qod.columnChecks {
		if check.Checked {
			options.SelectedColumns = append(options.SelectedColumns, qod.columns[i].Key)
			selected = append(selected, qod.columns[i])
		}
	}
	if len(options.SelectedColumns) == 0 {
		dialog.ShowError(fmt.Errorf("please select at least one column"), qod.window)
		return
	}

	options.Predicate = strings.TrimSpace(qod.predicateEntry.Text)
	if _, err := filter.Parse(selected, options.Predicate); err != nil {
		dialog.ShowError(err, qod.window)
		return
	}

	limit, err := parseLimit(qod.limitEntry.Text)
	if err != nil {
		dialog.ShowError(err, qod.window)
		return
	}
	options.Limit = limit

	if qod.callback != nil {
		qod.callback(options)
	}
}

func (qod *QueryOptionsDialog) Show() {
	qod.dialog.Show()
}
