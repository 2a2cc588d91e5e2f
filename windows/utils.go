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
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/magpierre/datagrid/datatable"
)

// createTimeoutContext creates a context with a configurable timeout for file loading
// timeoutSeconds specifies the timeout duration in seconds (default: 60 seconds if <= 0)
func createTimeoutContext(timeoutSeconds int) (context.Context, context.CancelFunc) {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 60
	}
	return context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
}

// cleanFilename turns a tab name into a file name: spaces become underscores
// and anything outside letters, digits, '_' and '-' is dropped.
func cleanFilename(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r == ' ':
			sb.WriteByte('_')
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-':
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return "export"
	}
	return sb.String()
}

// headerText renders a column header with its sort indicator.
func headerText(col datatable.Column, sort datatable.SortState) string {
	if sort.Key != col.Key {
		return col.Label
	}
	switch sort.Direction {
	case datatable.SortAscending:
		return col.Label + " ↑"
	case datatable.SortDescending:
		return col.Label + " ↓"
	}
	return col.Label
}

// selectAllGlyph renders the header checkbox: all, some or none of the
// visible rows selected.
func selectAllGlyph(all, some bool) string {
	switch {
	case all:
		return "[x]"
	case some:
		return "[-]"
	}
	return "[ ]"
}

func rowGlyph(selected bool) string {
	if selected {
		return "[x]"
	}
	return "[ ]"
}

// rangeText summarises the visible page, e.g. "Showing 11–20 of 42".
func rangeText(page datatable.Page, original int) string {
	if page.TotalItems() == 0 {
		if original == 0 {
			return "No rows"
		}
		return fmt.Sprintf("No matching rows (%d total)", original)
	}
	text := fmt.Sprintf("Showing %d–%d of %d", page.FirstItem(), page.LastItem(), page.TotalItems())
	if page.TotalItems() != original {
		text += fmt.Sprintf(" (filtered from %d)", original)
	}
	return text
}

// statusText describes a loaded table for the status bar.
func statusText(name string, model *datatable.TableModel) string {
	text := fmt.Sprintf("Table %s (%d columns x %d rows)", name, len(model.Columns()), model.OriginalRowCount())
	if n := model.FilteredRowCount(); n != model.OriginalRowCount() {
		text = fmt.Sprintf("Table %s (%d columns x %d/%d rows)", name, len(model.Columns()), n, model.OriginalRowCount())
	}
	if s := model.SortState(); s.IsSorted() {
		label := s.Key
		if c, ok := model.Store().Column(s.Key); ok {
			label = c.Label
		}
		direction := "↑"
		if s.Direction == datatable.SortDescending {
			direction = "↓"
		}
		text += fmt.Sprintf(" | Sorted: %s %s", label, direction)
	}
	if n := model.SelectedCount(); n > 0 {
		text += fmt.Sprintf(" | %d selected", n)
	}
	return text
}
