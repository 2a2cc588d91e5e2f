// Command datagrid is a desktop browser for CSV, JSON and Parquet files.
//
//	datagrid [-per-page 25] [-two-state] [file ...]
package main

import (
	"flag"

	"github.com/magpierre/datagrid/datatable"
	"github.com/magpierre/datagrid/windows"
)

func main() {
	config := datatable.DefaultConfig()

	var twoState bool
	flag.IntVar(&config.ItemsPerPage, "per-page", config.ItemsPerPage, "Rows per page")
	flag.IntVar(&config.PageWindow, "page-window", config.PageWindow, "Page buttons shown around the current page")
	flag.BoolVar(&twoState, "two-state", false, "Header clicks toggle ascending/descending only, never unsorted")
	flag.Parse()

	if twoState {
		config.SortCycle = datatable.SortCycleTwoState
	}
	windows.CreateMainWindow(config, flag.Args()...)
}
