// Command gridctl loads a data file into a table model and prints or exports
// one view of it.
//
// Usage examples:
//
// # Second page of people older than 30, sorted by name
// gridctl -where "age > 30" -sort name -page 2 people.csv
//
// # Free-text search, exported as Parquet
// gridctl -q example.org -export parquet -o hits.parquet people.json
//
// # Edit a cell and delete two rows before printing
// gridctl -set 2:age=26 -delete 4,5 people.csv
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/magpierre/datagrid/adapters"
	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/export"
	"github.com/magpierre/datagrid/internal/filter"
)

var errUsage = errors.New("usage: gridctl [options] <file.csv|file.json|file.parquet>")

// cellEdit is one -set argument: row:column=value.
type cellEdit struct {
	row   datatable.RowID
	key   string
	value string
}

type editFlags []cellEdit

func (e *editFlags) String() string {
	parts := make([]string, len(*e))
	for i, c := range *e {
		parts[i] = fmt.Sprintf("%s:%s=%s", c.row, c.key, c.value)
	}
	return strings.Join(parts, ",")
}

func (e *editFlags) Set(s string) error {
	target, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected row:column=value, got %q", s)
	}
	row, key, ok := strings.Cut(target, ":")
	if !ok || row == "" || key == "" {
		return fmt.Errorf("expected row:column=value, got %q", s)
	}
	*e = append(*e, cellEdit{row: datatable.RowID(row), key: key, value: value})
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var (
		query, where, sortKey string
		desc, showIDs         bool
		page, perPage, limit  int
		columns, deletes      string
		format, output        string
		edits                 editFlags
	)

	fs := flag.NewFlagSet("gridctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&query, "q", "", "Free-text search over every field")
	fs.StringVar(&where, "where", "", "Filter expression, e.g. \"age >= 30 AND status = 'active'\"")
	fs.StringVar(&sortKey, "sort", "", "Column key to sort by")
	fs.BoolVar(&desc, "desc", false, "Sort descending")
	fs.BoolVar(&showIDs, "ids", false, "Print row ids in the first column")
	fs.IntVar(&page, "page", 1, "Page to print")
	fs.IntVar(&perPage, "per-page", datatable.DefaultItemsPerPage, "Rows per page")
	fs.StringVar(&columns, "columns", "", "Comma-separated column keys to load")
	fs.IntVar(&limit, "limit", 0, "Load at most this many rows (0 = all)")
	fs.StringVar(&deletes, "delete", "", "Comma-separated row ids to delete")
	fs.Var(&edits, "set", "Edit a cell: row:column=value (repeatable)")
	fs.StringVar(&format, "export", "", "Export the filtered, sorted rows as csv, json or parquet instead of printing a page")
	fs.StringVar(&output, "o", "", "Export destination (default stdout; required for parquet)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}

	store, _, err := adapters.Load(context.Background(), fs.Arg(0), datatable.LoadOptions{
		Columns: splitList(columns),
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	config := datatable.DefaultConfig()
	config.ItemsPerPage = perPage
	model := datatable.NewTableModel(store, config)

	for _, e := range edits {
		if err := applyEdit(model, e); err != nil {
			return err
		}
	}

	if ids := splitList(deletes); len(ids) > 0 {
		for _, id := range ids {
			if !store.Has(datatable.RowID(id)) {
				return fmt.Errorf("%w: %s", datatable.ErrUnknownRow, id)
			}
			model.ToggleRowSelection(datatable.RowID(id))
		}
		n := model.DeleteSelected()
		color.New(color.FgYellow).Fprintf(stderr, "Deleted %d rows\n", n)
	}

	model.SetQuery(query)
	f, err := filter.Parse(model.Columns(), where)
	if err != nil {
		return err
	}
	model.SetPredicate(f)

	if sortKey != "" {
		col, ok := store.Column(sortKey)
		if !ok {
			return fmt.Errorf("%w: %s", datatable.ErrUnknownColumn, sortKey)
		}
		if !col.Sortable {
			return fmt.Errorf("column %s is not sortable", sortKey)
		}
		dir := datatable.SortAscending
		if desc {
			dir = datatable.SortDescending
		}
		model.SetSortState(datatable.NewSortState(sortKey, dir))
	}
	model.SetPage(page)

	if format != "" {
		return exportView(model, format, output, stdout)
	}
	return printPage(stdout, model, showIDs)
}

func applyEdit(model *datatable.TableModel, e cellEdit) error {
	ok, err := model.BeginEdit(e.row, e.key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("column %s is not editable", e.key)
	}
	if err := model.UpdateDraft(e.value); err != nil {
		return err
	}
	if err := model.CommitEdit(); err != nil {
		_ = model.CancelEdit()
		return err
	}
	return nil
}

func exportView(model *datatable.TableModel, name, output string, stdout io.Writer) error {
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}
	columns, rows := model.ExportRows()
	if output == "" || output == "-" {
		if format == export.FormatParquet {
			return fmt.Errorf("parquet export needs -o")
		}
		return export.Write(stdout, format, columns, rows)
	}
	return export.ToFile(output, format, columns, rows)
}

// printPage writes the current page as an aligned table with a bold header
// and a one-line footer.
func printPage(w io.Writer, model *datatable.TableModel, showIDs bool) error {
	view := model.View()
	columns := model.Columns()

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	header := make([]string, 0, len(columns)+1)
	if showIDs {
		header = append(header, "ROW")
	}
	for _, c := range columns {
		header = append(header, headerLabel(c, model.SortState()))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range view.Items {
		cells := make([]string, 0, len(columns)+1)
		if showIDs {
			cells = append(cells, string(row.ID))
		}
		for _, c := range columns {
			cells = append(cells, row.Get(c.Key).Formatted)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	first, rest, _ := strings.Cut(buf.String(), "\n")
	color.New(color.Bold).Fprintln(w, first)
	fmt.Fprint(w, rest)

	footer := color.New(color.FgCyan)
	if view.TotalItems() == 0 {
		footer.Fprintf(w, "No matching rows (%d total)\n", model.OriginalRowCount())
		return nil
	}
	footer.Fprintf(w, "Showing %d-%d of %d | page %d/%d\n",
		view.FirstItem(), view.LastItem(), view.TotalItems(), view.State.CurrentPage, view.PageCount)
	return nil
}

func headerLabel(c datatable.Column, sort datatable.SortState) string {
	if sort.Key != c.Key {
		return c.Label
	}
	if sort.Direction == datatable.SortDescending {
		return c.Label + " v"
	}
	return c.Label + " ^"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
